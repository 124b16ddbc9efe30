package services

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/codyseavey/archimago/internal/models"
)

// Elements that start a new line in rendered text. Table cells do not, so a
// row renders as "2Lightning Bolt".
var blockElements = map[atom.Atom]bool{
	atom.Table:   true,
	atom.Caption: true,
	atom.Thead:   true,
	atom.Tbody:   true,
	atom.Tfoot:   true,
	atom.Tr:      true,
	atom.Div:     true,
	atom.P:       true,
	atom.Br:      true,
	atom.Li:      true,
	atom.Ul:      true,
	atom.Ol:      true,
	atom.H1:      true,
	atom.H2:      true,
	atom.H3:      true,
	atom.H4:      true,
	atom.H5:      true,
	atom.H6:      true,
}

// ExtractTables returns the rendered text of each outermost table in an HTML
// document, one line per row or block.
func ExtractTables(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables []string
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			if text := renderText(n); text != "" {
				tables = append(tables, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	return tables, nil
}

// renderText flattens a node to text the way a browser lays it out: block
// elements break lines, runs of whitespace collapse to one space, blank lines
// are dropped.
func renderText(n *html.Node) string {
	var lines []string
	var cur strings.Builder

	flush := func() {
		if line := strings.TrimSpace(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(collapseSpace(n.Data))
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
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
	walk(n)
	flush()

	return strings.Join(lines, "\n")
}

func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// nextData is the part of a card page's __NEXT_DATA__ payload that carries
// FAQ entries.
type nextData struct {
	Props struct {
		PageProps struct {
			TrpcState struct {
				JSON struct {
					Queries []struct {
						State struct {
							Data *struct {
								FAQs []models.FAQ `json:"faqs"`
							} `json:"data"`
						} `json:"state"`
					} `json:"queries"`
				} `json:"json"`
			} `json:"trpcState"`
		} `json:"pageProps"`
	} `json:"props"`
}

// ExtractFAQ reads the FAQ entries embedded in a curiosa.io card page. A page
// without card data yields ErrCardNotFound.
func ExtractFAQ(r io.Reader) ([]models.FAQ, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	script := findByID(doc, "__NEXT_DATA__")
	if script == nil || script.FirstChild == nil {
		return nil, fmt.Errorf("%w: page has no data", ErrCardNotFound)
	}

	var data nextData
	if err := json.Unmarshal([]byte(script.FirstChild.Data), &data); err != nil {
		return nil, fmt.Errorf("failed to decode page data: %w", err)
	}

	queries := data.Props.PageProps.TrpcState.JSON.Queries
	if len(queries) == 0 || queries[0].State.Data == nil {
		return nil, ErrCardNotFound
	}

	faqs := queries[0].State.Data.FAQs
	if faqs == nil {
		faqs = []models.FAQ{}
	}
	return faqs, nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
