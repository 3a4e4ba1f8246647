package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor converts a markdown document into Blocks.
type MarkdownExtractor struct{}

// Extract parses the markdown AST and maps headings, paragraphs, list
// items, fenced/indented code and images onto the Block model.
func (e *MarkdownExtractor) Extract(source string, content []byte) (*Document, error) {
	md := goldmark.New()
	reader := text.NewReader(content)
	root := md.Parser().Parse(reader)

	doc := &Document{Source: source}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			doc.Blocks = append(doc.Blocks, Block{
				Kind:   KindHeading,
				Level:  node.Level,
				Text:   string(node.Text(content)),
				Offset: nodeOffset(node),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			// Paragraphs inside list items are reported as list items.
			if insideListItem(node) {
				return ast.WalkContinue, nil
			}
			// An image-only paragraph is an image block, not prose.
			if imageOnly(node) {
				return ast.WalkContinue, nil
			}
			doc.Blocks = append(doc.Blocks, Block{
				Kind:   KindParagraph,
				Text:   linesText(node, content),
				Offset: nodeOffset(node),
			})
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			ordered := false
			if parent, ok := node.Parent().(*ast.List); ok {
				ordered = parent.IsOrdered()
			}
			doc.Blocks = append(doc.Blocks, Block{
				Kind:    KindListItem,
				Ordered: ordered,
				Text:    itemText(node, content),
				Offset:  nodeOffset(node),
			})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			doc.Blocks = append(doc.Blocks, Block{
				Kind:   KindCode,
				Text:   linesText(node, content),
				Offset: nodeOffset(node),
			})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			doc.Blocks = append(doc.Blocks, Block{
				Kind:   KindCode,
				Text:   linesText(node, content),
				Offset: nodeOffset(node),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Image:
			doc.Blocks = append(doc.Blocks, Block{
				Kind: KindImage,
				Text: string(node.Text(content)),
				URL:  string(node.Destination),
			})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// imageOnly reports whether a paragraph wraps a single image and
// nothing else.
func imageOnly(n ast.Node) bool {
	child := n.FirstChild()
	if child == nil || child != n.LastChild() {
		return false
	}
	_, ok := child.(*ast.Image)
	return ok
}

func insideListItem(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			return true
		}
	}
	return false
}

// linesText joins the source lines covered by a block node.
func linesText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimRight(string(seg.Value(source)), "\n"))
	}
	return strings.TrimSpace(sb.String())
}

// itemText collects the text of a list item's child blocks.
func itemText(n ast.Node, source []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := linesText(c, source); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func nodeOffset(n ast.Node) int {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start
	}
	return 0
}
