package extract

import (
	"fmt"
	"strings"
)

// RenderMarkdown serializes a document back to markdown. The reviser
// uses this to emit its edited output; round-tripping the exact source
// formatting is not a goal, block content and order are.
func RenderMarkdown(doc *Document) string {
	var sb strings.Builder
	ordinal := 0

	for i, b := range doc.Blocks {
		switch b.Kind {
		case KindHeading:
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(strings.Repeat("#", b.Level))
			sb.WriteByte(' ')
			sb.WriteString(b.Text)
			sb.WriteString("\n\n")
			ordinal = 0

		case KindParagraph:
			sb.WriteString(b.Text)
			sb.WriteString("\n\n")
			ordinal = 0

		case KindListItem:
			if b.Ordered {
				ordinal++
				fmt.Fprintf(&sb, "%d. %s\n", ordinal, b.Text)
			} else {
				fmt.Fprintf(&sb, "- %s\n", b.Text)
			}
			if next := i + 1; next >= len(doc.Blocks) || doc.Blocks[next].Kind != KindListItem {
				sb.WriteByte('\n')
				ordinal = 0
			}

		case KindCode:
			sb.WriteString("```\n")
			sb.WriteString(b.Text)
			sb.WriteString("\n```\n\n")
			ordinal = 0

		case KindImage:
			fmt.Fprintf(&sb, "![%s](%s)\n\n", b.Text, b.URL)
			ordinal = 0
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// ForSource picks the extractor matching the input: markdown for .md
// paths and markdown-looking bodies, HTML otherwise.
func ForSource(source string, content []byte) Extractor {
	lower := strings.ToLower(source)
	if strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown") {
		return &MarkdownExtractor{}
	}
	head := strings.TrimSpace(string(content))
	if strings.HasPrefix(head, "<!DOCTYPE") || strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") || strings.HasPrefix(head, "<") {
		return &HTMLExtractor{}
	}
	return &MarkdownExtractor{}
}

// Extractor turns raw markup into a Document.
type Extractor interface {
	Extract(source string, content []byte) (*Document, error)
}
