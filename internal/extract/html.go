package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var alertClassRe = regexp.MustCompile(`(?i)\b(alert|note|tip|warning|caution)\b`)

// HTMLExtractor converts an HTML page into an ordered Block sequence.
type HTMLExtractor struct{}

// Extract parses the page and walks the article body. It prefers an
// <article> or <main> container and falls back to <body> when the page
// has no obvious article region.
func (e *HTMLExtractor) Extract(source string, content []byte) (*Document, error) {
	root, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, err
	}

	body := findContainer(root)
	if body == nil {
		body = root
	}

	doc := &Document{Source: source}
	walkBlocks(body, doc, false)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// findContainer locates the most specific content container present.
func findContainer(root *html.Node) *html.Node {
	for _, a := range []atom.Atom{atom.Article, atom.Main, atom.Body} {
		if n := findAtom(root, a); n != nil {
			return n
		}
	}
	return nil
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}

func walkBlocks(n *html.Node, doc *Document, inOrderedList bool) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Nav, atom.Header, atom.Footer:
			return

		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			level := int(n.Data[1] - '0')
			if text := nodeText(n); text != "" {
				doc.Blocks = append(doc.Blocks, Block{Kind: KindHeading, Level: level, Text: text})
			}
			return

		case atom.P:
			if text := nodeText(n); text != "" {
				doc.Blocks = append(doc.Blocks, Block{Kind: KindParagraph, Text: text})
			}
			return

		case atom.Ol:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walkBlocks(c, doc, true)
			}
			return

		case atom.Ul:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walkBlocks(c, doc, false)
			}
			return

		case atom.Li:
			if text := nodeText(n); text != "" {
				doc.Blocks = append(doc.Blocks, Block{Kind: KindListItem, Ordered: inOrderedList, Text: text})
			}
			return

		case atom.Pre, atom.Code:
			if text := nodeText(n); text != "" {
				doc.Blocks = append(doc.Blocks, Block{Kind: KindCode, Text: text})
			}
			return

		case atom.Img:
			doc.Blocks = append(doc.Blocks, Block{Kind: KindImage, Text: attr(n, "alt"), URL: attr(n, "src")})
			return

		case atom.Div, atom.Aside:
			if alertClassRe.MatchString(attr(n, "class")) {
				doc.AlertCount++
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBlocks(c, doc, inOrderedList)
	}
}

var newlineRe = regexp.MustCompile(`[\n\r\t]+`)

// nodeText flattens the text content of a node. Newlines and tabs are
// folded to single spaces; space runs are left alone so the spacing
// style rule can still see them.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			visit(gc)
		}
	}
	visit(n)
	return strings.TrimSpace(newlineRe.ReplaceAllString(sb.String(), " "))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
