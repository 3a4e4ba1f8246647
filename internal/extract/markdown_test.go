package extract

import (
	"errors"
	"testing"
)

const sampleMarkdown = `# Getting Started

This is the intro paragraph.

## Install The Tool

1. Download the installer.
2. Run it.

- Check the version
- Read the docs

` + "```" + `
make install
` + "```" + `

![diagram](images/flow.png)
`

func TestMarkdownExtract(t *testing.T) {
	doc, err := (&MarkdownExtractor{}).Extract("guide.md", []byte(sampleMarkdown))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := []struct {
		kind    BlockKind
		text    string
		level   int
		ordered bool
	}{
		{kind: KindHeading, text: "Getting Started", level: 1},
		{kind: KindParagraph, text: "This is the intro paragraph."},
		{kind: KindHeading, text: "Install The Tool", level: 2},
		{kind: KindListItem, text: "Download the installer.", ordered: true},
		{kind: KindListItem, text: "Run it.", ordered: true},
		{kind: KindListItem, text: "Check the version"},
		{kind: KindListItem, text: "Read the docs"},
		{kind: KindCode, text: "make install"},
		{kind: KindImage, text: "diagram"},
	}

	if len(doc.Blocks) != len(expected) {
		t.Fatalf("got %d blocks, want %d: %+v", len(doc.Blocks), len(expected), doc.Blocks)
	}
	for i, want := range expected {
		b := doc.Blocks[i]
		if b.Kind != want.kind {
			t.Errorf("block %d kind = %s, want %s", i, b.Kind, want.kind)
		}
		if b.Text != want.text {
			t.Errorf("block %d text = %q, want %q", i, b.Text, want.text)
		}
		if b.Level != want.level {
			t.Errorf("block %d level = %d, want %d", i, b.Level, want.level)
		}
		if b.Ordered != want.ordered {
			t.Errorf("block %d ordered = %v, want %v", i, b.Ordered, want.ordered)
		}
	}

	if got := doc.Blocks[8].URL; got != "images/flow.png" {
		t.Errorf("image URL = %q, want %q", got, "images/flow.png")
	}
}

func TestMarkdownExtractEmpty(t *testing.T) {
	_, err := (&MarkdownExtractor{}).Extract("empty.md", []byte("   \n\n"))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestDocumentTextExcludesCode(t *testing.T) {
	doc := &Document{Blocks: []Block{
		{Kind: KindParagraph, Text: "prose here"},
		{Kind: KindCode, Text: "func main() {}"},
		{Kind: KindImage, Text: "alt text", URL: "x.png"},
		{Kind: KindListItem, Text: "an item"},
	}}

	want := "prose here an item"
	if got := doc.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	doc := &Document{Source: "a", Blocks: []Block{{Kind: KindParagraph, Text: "original"}}}
	clone := doc.Clone()
	clone.Blocks[0].Text = "edited"

	if doc.Blocks[0].Text != "original" {
		t.Errorf("editing the clone changed the source document")
	}
}
