package extract

import (
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>ignored</title><style>p { color: red }</style></head>
<body>
<nav><p>skip this menu</p></nav>
<article>
  <h1>Connect Your Account</h1>
  <p>This page explains  the setup.</p>
  <div class="alert alert-warning"><p>Be careful here.</p></div>
  <h2>Steps</h2>
  <ol>
    <li>Open the settings page.</li>
    <li>Click connect.</li>
  </ol>
  <pre>token=abc123</pre>
  <img src="/img/settings.png" alt="settings screen">
</article>
<footer><p>copyright</p></footer>
</body>
</html>`

func TestHTMLExtract(t *testing.T) {
	doc, err := (&HTMLExtractor{}).Extract("https://example.com/docs", []byte(samplePage))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := []struct {
		kind    BlockKind
		text    string
		level   int
		ordered bool
	}{
		{kind: KindHeading, text: "Connect Your Account", level: 1},
		{kind: KindParagraph, text: "This page explains  the setup."},
		{kind: KindParagraph, text: "Be careful here."},
		{kind: KindHeading, text: "Steps", level: 2},
		{kind: KindListItem, text: "Open the settings page.", ordered: true},
		{kind: KindListItem, text: "Click connect.", ordered: true},
		{kind: KindCode, text: "token=abc123"},
		{kind: KindImage, text: "settings screen"},
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

	if doc.AlertCount != 1 {
		t.Errorf("AlertCount = %d, want 1", doc.AlertCount)
	}
	if doc.Blocks[7].URL != "/img/settings.png" {
		t.Errorf("image URL = %q, want %q", doc.Blocks[7].URL, "/img/settings.png")
	}
}

func TestHTMLExtractFallsBackToBody(t *testing.T) {
	page := `<html><body><p>Just a body paragraph.</p></body></html>`
	doc, err := (&HTMLExtractor{}).Extract("page.html", []byte(page))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Text != "Just a body paragraph." {
		t.Errorf("unexpected blocks: %+v", doc.Blocks)
	}
}

func TestForSource(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		content  string
		wantHTML bool
	}{
		{name: "markdown extension", source: "guide.md", content: "<p>x</p>", wantHTML: false},
		{name: "html content", source: "https://example.com/a", content: "<!DOCTYPE html><html></html>", wantHTML: true},
		{name: "plain text defaults to markdown", source: "notes.txt", content: "# heading", wantHTML: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := ForSource(tt.source, []byte(tt.content))
			_, isHTML := ex.(*HTMLExtractor)
			if isHTML != tt.wantHTML {
				t.Errorf("ForSource(%q) html = %v, want %v", tt.source, isHTML, tt.wantHTML)
			}
		})
	}
}
