package extract

import (
	"errors"
	"strings"
)

// ErrEmptyDocument is returned when extraction finds no analyzable content.
var ErrEmptyDocument = errors.New("document has no analyzable content")

// BlockKind identifies the structural role of a block
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindListItem
	KindCode
	KindImage
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "list-item"
	case KindCode:
		return "code"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is one structural unit of the source document.
// Blocks appear in the same order as in the source markup.
type Block struct {
	Kind BlockKind
	// Level is the heading level (1-6); zero for non-headings.
	Level int
	// Ordered marks list items that belong to a numbered list.
	Ordered bool
	Text    string
	// URL holds the image source for image blocks.
	URL string
	// Offset is the byte offset of the block in the raw markup.
	Offset int
}

// Document is an immutable snapshot of one extracted article.
// The engine never mutates it; the reviser works on a copy.
type Document struct {
	Source string
	Blocks []Block
	// AlertCount is the number of note/tip/warning containers seen
	// during extraction. Alerts carry no text blocks of their own.
	AlertCount int
}

// Text joins all non-code block text into one body string.
// Code blocks are excluded so prose metrics aren't skewed by syntax.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		if b.Kind == KindCode || b.Kind == KindImage {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// Headings returns the heading blocks in document order.
func (d *Document) Headings() []Block {
	var hs []Block
	for _, b := range d.Blocks {
		if b.Kind == KindHeading {
			hs = append(hs, b)
		}
	}
	return hs
}

// Count returns the number of blocks of the given kind.
func (d *Document) Count(kind BlockKind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// Clone returns a deep copy the reviser can edit freely.
func (d *Document) Clone() *Document {
	blocks := make([]Block, len(d.Blocks))
	copy(blocks, d.Blocks)
	return &Document{
		Source:     d.Source,
		Blocks:     blocks,
		AlertCount: d.AlertCount,
	}
}

// Validate reports ErrEmptyDocument when there is nothing to analyze.
func (d *Document) Validate() error {
	if d == nil || len(d.Blocks) == 0 || strings.TrimSpace(d.Text()) == "" {
		return ErrEmptyDocument
	}
	return nil
}
