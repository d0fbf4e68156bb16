package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

const olympics = "USA: 126 total medals\nChina: 91 total medals\n40 gold, 44 silver, 42 bronze\n10,500 athletes from 206 countries"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestComposeMarkdown(t *testing.T) {
	out, _, err := run(t, "compose", "--topic", "Paris Olympics 2024", "--slides", "6", "--research", olympics)
	require.NoError(t, err)

	assert.Contains(t, out, "# Paris Olympics 2024\n")
	assert.Contains(t, out, "## 3. Total Medals")
	assert.Contains(t, out, "| Athletes | 10,500 |")
	assert.Equal(t, 6, strings.Count(out, "\n## "))
}

func TestComposeRejectsSlideCount(t *testing.T) {
	for _, n := range []string{"0", "21"} {
		_, _, err := run(t, "compose", "--topic", "t", "--slides", n)
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput, "slides=%s", n)
	}
}

func TestComposeRejectsFormat(t *testing.T) {
	_, _, err := run(t, "compose", "--topic", "t", "--format", "pptx")
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestComposeDegradesWhenResearchFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.md")
	out, errOut, err := run(t, "compose", "--topic", "Solar", "--slides", "3", "--research-file", missing)
	require.NoError(t, err)

	assert.Contains(t, errOut, "[WARN] research unavailable")
	assert.Contains(t, out, "Key concept 3 related to Solar")
}

func TestComposeWritesIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	research := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(research, []byte(olympics), 0o644))

	_, errOut, err := run(t, "compose", "--topic", "Paris Olympics", "--slides", "5",
		"--research-file", research, "--format", "html", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "[OK] wrote 5 slides")

	matches, err := filepath.Glob(filepath.Join(dir, "Paris_Olympics_*.html"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
}

func TestArchiveListShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "decks.db")

	out, _, err := run(t, "compose", "--db", db, "--topic", "Paris Olympics", "--slides", "6",
		"--research", olympics, "--format", "json")
	require.NoError(t, err)

	var composed deck.Deck
	require.NoError(t, json.Unmarshal([]byte(out), &composed))
	require.NotEmpty(t, composed.ID)

	out, _, err = run(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, composed.ID)
	assert.Contains(t, out, "Paris Olympics")
	assert.Contains(t, out, "full")

	out, _, err = run(t, "show", composed.ID, "--db", db, "--format", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "## 4. Medal Breakdown")

	_, _, err = run(t, "show", "unknown", "--db", db)
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestListRequiresDB(t *testing.T) {
	_, _, err := run(t, "list")
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}
