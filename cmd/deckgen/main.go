// Command deckgen composes slide decks from a topic and optional research text.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		newPrinter(os.Stderr, os.Stderr, false).Error("%v", err)
		os.Exit(1)
	}
}
