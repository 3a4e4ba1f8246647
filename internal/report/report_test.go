package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/docvet/docvet/internal/analysis"
	"github.com/docvet/docvet/internal/extract"
)

// goldenDoc is tuned so the body scores in the Flesch 50-60 band:
// the readability finding is medium, yet the overall recommendation
// must still be high priority.
func goldenDoc() *extract.Document {
	return &extract.Document{
		Source: "https://example.com/docs/connect",
		Blocks: []extract.Block{
			{Kind: extract.KindHeading, Level: 1, Text: "Connect Your Account"},
			{Kind: extract.KindParagraph, Text: "The deployment process requires several manual steps and careful attention during the initial setup phase. You must review each simple box and then click the green save link at once."},
			{Kind: extract.KindHeading, Level: 3, Text: "Advanced Options"},
			{Kind: extract.KindParagraph, Text: "You cannot change this setting later. The initial deployment takes a few more minutes to complete."},
		},
	}
}

func TestBuildGoldenDocument(t *testing.T) {
	rep, err := Build(goldenDoc())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	flesch := rep.Readability.Assessment.FleschReadingEase
	if flesch < 50 || flesch >= 60 {
		t.Fatalf("Flesch = %.2f, want within [50, 60)", flesch)
	}
	if rep.Readability.Assessment.ReadabilityLevel != "Fairly Difficult" {
		t.Errorf("level = %q, want Fairly Difficult", rep.Readability.Assessment.ReadabilityLevel)
	}

	lowReadability := bySubkind(rep.Readability.Findings, "low_readability")
	if len(lowReadability) != 1 || lowReadability[0].Severity != analysis.Medium {
		t.Errorf("expected one medium low_readability finding, got %+v", rep.Readability.Findings)
	}

	if rep.Structure.Assessment.HeadingHierarchy.IsValid {
		t.Error("H1 to H3 jump should invalidate the hierarchy")
	}
	wantIssue := "Heading hierarchy jumps from H1 to H3. Use sequential heading levels."
	if rep.Structure.Assessment.HeadingHierarchy.Issue != wantIssue {
		t.Errorf("issue = %q, want %q", rep.Structure.Assessment.HeadingHierarchy.Issue, wantIssue)
	}

	if got := rep.StyleGuidelines.Assessment.MicrosoftStyle.MissingContractions.Count; got != 1 {
		t.Errorf("MissingContractions.Count = %d, want 1", got)
	}
	if got := rep.StyleGuidelines.Assessment.MicrosoftStyle.TitleCapitalization.Count; got != 2 {
		t.Errorf("TitleCapitalization.Count = %d, want 2", got)
	}

	want := []string{
		"HIGH PRIORITY: Improve readability by simplifying language and sentence structure.",
		"HIGH PRIORITY: Fill content gaps: add practical examples, visuals, or prerequisite guidance.",
		"MEDIUM PRIORITY: Improve article structure with sequential headings and shorter paragraphs.",
		"MEDIUM PRIORITY: Address style guide violations for clearer, friendlier writing.",
	}
	if len(rep.OverallRecommendations) != len(want) {
		t.Fatalf("recommendations = %v, want %v", rep.OverallRecommendations, want)
	}
	for i := range want {
		if rep.OverallRecommendations[i] != want[i] {
			t.Errorf("recommendation %d = %q, want %q", i, rep.OverallRecommendations[i], want[i])
		}
	}
}

func TestBuildEmptyDocument(t *testing.T) {
	doc := &extract.Document{Source: "x"}
	rep, err := Build(doc)
	if !errors.Is(err, extract.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if rep.Error == "" {
		t.Error("report should carry the error message")
	}
	if rep.Readability != nil || rep.Structure != nil {
		t.Error("error reports must omit the category sections")
	}
	if rep.Findings() != nil {
		t.Error("error reports have no findings")
	}
}

func TestReportJSONSchema(t *testing.T) {
	rep, err := Build(goldenDoc())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rep); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{"url", "analysis_timestamp", "readability", "structure", "completeness", "style_guidelines", "overall_recommendations"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	if _, ok := decoded["error"]; ok {
		t.Error("error key should be omitted on success")
	}

	readability, ok := decoded["readability"].(map[string]any)
	if !ok {
		t.Fatal("readability section missing")
	}
	assessment, ok := readability["assessment"].(map[string]any)
	if !ok {
		t.Fatal("readability assessment missing")
	}
	for _, key := range []string{"flesch_reading_ease", "gunning_fog_index", "average_sentence_length", "readability_level", "technical_terms_count"} {
		if _, ok := assessment[key]; !ok {
			t.Errorf("missing readability assessment key %q", key)
		}
	}

	structure := decoded["structure"].(map[string]any)["assessment"].(map[string]any)
	hierarchy, ok := structure["heading_hierarchy"].(map[string]any)
	if !ok {
		t.Fatal("heading_hierarchy missing")
	}
	if valid, _ := hierarchy["is_valid"].(bool); valid {
		t.Error("is_valid should be false for the golden document")
	}

	style := decoded["style_guidelines"].(map[string]any)["assessment"].(map[string]any)
	ms, ok := style["microsoft_style"].(map[string]any)
	if !ok {
		t.Fatal("microsoft_style missing")
	}
	for _, rule := range []string{
		"missing_contractions", "title_capitalization", "verbose_phrases", "spacing_issues",
		"oxford_comma", "weak_constructions", "passive_voice", "jargon_usage", "unnecessary_punctuation",
	} {
		entry, ok := ms[rule].(map[string]any)
		if !ok {
			t.Errorf("microsoft_style missing rule %q", rule)
			continue
		}
		for _, key := range []string{"count", "examples", "message"} {
			if _, ok := entry[key]; !ok {
				t.Errorf("rule %q missing key %q", rule, key)
			}
		}
	}
}

func TestRecommendationsMediumFloor(t *testing.T) {
	// A short, clean document: low-severity leftovers must not produce
	// recommendation lines.
	doc := &extract.Document{
		Source: "clean",
		Blocks: []extract.Block{
			{Kind: extract.KindHeading, Level: 1, Text: "Quick start"},
			{Kind: extract.KindHeading, Level: 2, Text: "Prerequisites"},
			{Kind: extract.KindParagraph, Text: "You need an account, for example a free one. Another sample helps too."},
			{Kind: extract.KindHeading, Level: 2, Text: "Steps"},
			{Kind: extract.KindListItem, Ordered: true, Text: "Open the app and pick a common use case."},
			{Kind: extract.KindListItem, Ordered: true, Text: "Click save."},
			{Kind: extract.KindCode, Text: "app run"},
			{Kind: extract.KindImage, Text: "screen", URL: "s.png"},
		},
	}

	rep, err := Build(doc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, line := range rep.OverallRecommendations {
		if !strings.HasPrefix(line, "HIGH PRIORITY: ") && !strings.HasPrefix(line, "MEDIUM PRIORITY: ") {
			t.Errorf("recommendation without priority prefix: %q", line)
		}
		if strings.Contains(line, "readability") && rep.Readability.Assessment.FleschReadingEase >= 60 {
			t.Errorf("readability recommendation despite easy text: %q", line)
		}
	}
}

func TestBuildReportsAnalyzerSteps(t *testing.T) {
	var started []string
	var done int

	_, err := Build(goldenDoc(), WithProgress(
		func(name string) { started = append(started, name) },
		func() { done++ },
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"readability", "structure", "completeness", "style"}
	if len(started) != len(want) {
		t.Fatalf("started steps = %v, want %v", started, want)
	}
	for i, name := range want {
		if started[i] != name {
			t.Errorf("step %d = %q, want %q", i, started[i], name)
		}
	}
	if done != len(want) {
		t.Errorf("done callbacks = %d, want %d", done, len(want))
	}
}

func bySubkind(findings []analysis.Finding, subkind string) []analysis.Finding {
	var out []analysis.Finding
	for _, f := range findings {
		if f.Subkind == subkind {
			out = append(out, f)
		}
	}
	return out
}
