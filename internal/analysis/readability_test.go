package analysis

import (
	"strings"
	"testing"

	"github.com/docvet/docvet/internal/extract"
)

func paragraphDoc(texts ...string) *extract.Document {
	doc := &extract.Document{Source: "test"}
	for _, t := range texts {
		doc.Blocks = append(doc.Blocks, extract.Block{Kind: extract.KindParagraph, Text: t})
	}
	return doc
}

func findBySubkind(findings []Finding, subkind string) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Subkind == subkind {
			out = append(out, f)
		}
	}
	return out
}

func TestAnalyzeReadabilitySimpleText(t *testing.T) {
	doc := paragraphDoc("The cat sat on the mat. The dog ran fast. We like short words. They are easy to read.")
	result := AnalyzeReadability(doc)

	if result.Assessment.FleschReadingEase < 90 {
		t.Errorf("Flesch = %.1f, want at least 90 for trivial text", result.Assessment.FleschReadingEase)
	}
	if result.Assessment.ReadabilityLevel != "Very Easy" {
		t.Errorf("level = %q, want Very Easy", result.Assessment.ReadabilityLevel)
	}
	if hits := findBySubkind(result.Findings, "low_readability"); len(hits) != 0 {
		t.Errorf("unexpected low_readability finding for simple text: %+v", hits)
	}
	if !strings.Contains(result.Explanation, "Flesch score:") {
		t.Errorf("explanation %q should embed the Flesch score", result.Explanation)
	}
}

func TestAnalyzeReadabilityDenseText(t *testing.T) {
	doc := paragraphDoc(strings.Repeat(
		"Organizational infrastructure necessitates comprehensive architectural documentation methodologies incorporating multidimensional environmental considerations. ", 3))
	result := AnalyzeReadability(doc)

	hits := findBySubkind(result.Findings, "low_readability")
	if len(hits) != 1 {
		t.Fatalf("expected one low_readability finding, got %d", len(hits))
	}
	if hits[0].Severity != High {
		t.Errorf("severity = %s, want high for Flesch below 50", hits[0].Severity)
	}
	if result.Assessment.ReadabilityLevel != "Very Difficult" {
		t.Errorf("level = %q, want Very Difficult", result.Assessment.ReadabilityLevel)
	}
}

func TestAnalyzeReadabilityDegenerateDocument(t *testing.T) {
	doc := &extract.Document{Source: "test", Blocks: []extract.Block{
		{Kind: extract.KindCode, Text: "only code here"},
	}}
	result := AnalyzeReadability(doc)

	if result.Assessment.FleschReadingEase != 0 {
		t.Errorf("Flesch = %.1f, want 0 for degenerate text", result.Assessment.FleschReadingEase)
	}
	hits := findBySubkind(result.Findings, "insufficient_content")
	if len(hits) != 1 || hits[0].Severity != Low {
		t.Errorf("expected one low insufficient_content finding, got %+v", result.Findings)
	}
}

func TestAnalyzeReadabilityLongSentences(t *testing.T) {
	// One 26-word sentence pushes the average over the threshold.
	doc := paragraphDoc("The quick brown fox jumps over the lazy dog while the busy farmer watches from the old barn and the birds fly over the green field.")
	result := AnalyzeReadability(doc)

	hits := findBySubkind(result.Findings, "long_sentences")
	if len(hits) != 1 {
		t.Fatalf("expected long_sentences finding, got %+v", result.Findings)
	}
	if hits[0].Severity != Medium {
		t.Errorf("severity = %s, want medium", hits[0].Severity)
	}
}

func TestAnalyzeReadabilityTechnicalTerms(t *testing.T) {
	doc := paragraphDoc("The api uses json over http or https with oauth and a token. " +
		"Each webhook endpoint takes a payload with a uuid. " +
		"The sdk wraps the rest integration and the database query.")
	result := AnalyzeReadability(doc)

	if result.Assessment.TechnicalTermsCount <= 10 {
		t.Fatalf("TechnicalTermsCount = %d, want more than 10", result.Assessment.TechnicalTermsCount)
	}
	if hits := findBySubkind(result.Findings, "technical_terms"); len(hits) != 1 {
		t.Errorf("expected technical_terms finding, got %+v", result.Findings)
	}
}

func TestComplexSentenceFindings(t *testing.T) {
	long := "This sentence keeps going with many small words so that it passes the complexity threshold because it simply never stops adding words to the clause until well past thirty words total."
	doc := paragraphDoc(long + " Short one.")
	result := AnalyzeReadability(doc)

	hits := findBySubkind(result.Findings, "complex_sentence")
	if len(hits) != 1 {
		t.Fatalf("expected one complex_sentence finding, got %+v", result.Findings)
	}
	f := hits[0]
	if f.Fix != FixRewrite {
		t.Errorf("fix = %s, want rewrite", f.Fix)
	}
	if len(f.Evidence) != 1 {
		t.Fatalf("expected one evidence span, got %+v", f.Evidence)
	}
	ev := f.Evidence[0]
	if ev.Block != 0 || ev.Start != 0 || ev.End != len(long) {
		t.Errorf("evidence = %+v, want span of the long sentence", ev)
	}
}
