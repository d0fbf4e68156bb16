package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

// maxPageBytes caps how much of a page is read.
const maxPageBytes = 2 << 20

// Web fetches a page and uses its visible text as research.
type Web struct {
	URL        string
	HTTPClient *http.Client
}

// Research implements Provider.
func (w Web) Research(ctx context.Context, topic string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}
	resp, err := w.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalerr.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s: status %d", internalerr.ErrProviderUnavailable, w.URL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalerr.ErrProviderUnavailable, err)
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		return string(body), nil
	}
	return PageText(string(body)), nil
}

func (w Web) httpClient() *http.Client {
	if w.HTTPClient != nil {
		return w.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// PageText extracts the visible text of an HTML page, one block element per
// line. Script, style and navigation content is skipped.
func PageText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := strings.Join(strings.Fields(cur.String()), " "); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Head, atom.Nav, atom.Footer:
				return
			}
		}
		if n.Type == html.TextNode {
			cur.WriteString(n.Data)
			cur.WriteByte(' ')
		}
		block := n.Type == html.ElementNode && isBlock(n.DataAtom)
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(doc)
	flush()

	return strings.Join(lines, "\n")
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Tr, atom.Br, atom.Section, atom.Article,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Table, atom.Blockquote, atom.Pre:
		return true
	}
	return false
}
