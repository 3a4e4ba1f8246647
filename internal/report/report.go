// Package report aggregates the four analyzer outputs into the
// canonical report shape and renders it as JSON or styled text.
package report

import (
	"time"

	"github.com/docvet/docvet/internal/analysis"
	"github.com/docvet/docvet/internal/extract"
)

// fleschRecommendationFloor is the Flesch score below which the
// readability recommendation is always high priority.
const fleschRecommendationFloor = 60

// Section is one category's slice of the report: the typed assessment,
// an optional explanation, and the human suggestions derived from the
// category's findings.
type Section[A any] struct {
	Assessment  A        `json:"assessment"`
	Explanation string   `json:"explanation,omitempty"`
	Suggestions []string `json:"suggestions"`

	// Findings drive the reviser; the JSON schema carries their
	// messages as suggestions instead.
	Findings []analysis.Finding `json:"-"`
}

// Report is the full analysis result. When Error is set the category
// sections are absent entirely.
type Report struct {
	Source     string `json:"url"`
	AnalyzedAt string `json:"analysis_timestamp"`
	Error      string `json:"error,omitempty"`

	Readability     *Section[analysis.ReadabilityAssessment]  `json:"readability,omitempty"`
	Structure       *Section[analysis.StructureAssessment]    `json:"structure,omitempty"`
	Completeness    *Section[analysis.CompletenessAssessment] `json:"completeness,omitempty"`
	StyleGuidelines *Section[analysis.StyleAssessment]        `json:"style_guidelines,omitempty"`

	OverallRecommendations []string `json:"overall_recommendations,omitempty"`
}

// BuildOption customizes a Build run.
type BuildOption func(*buildConfig)

type buildConfig struct {
	stepStart func(name string)
	stepDone  func()
}

// WithProgress reports each analyzer as a named step, for interactive
// progress display.
func WithProgress(start func(name string), done func()) BuildOption {
	return func(c *buildConfig) {
		c.stepStart = start
		c.stepDone = done
	}
}

// Build runs all four analyzers over the document, deduplicates their
// findings, and derives the overall recommendations. An empty document
// aborts with a report carrying only the error field.
func Build(doc *extract.Document, opts ...BuildOption) (*Report, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rep := &Report{
		AnalyzedAt: time.Now().Format(time.RFC3339),
	}
	if doc != nil {
		rep.Source = doc.Source
	}

	if err := doc.Validate(); err != nil {
		rep.Error = err.Error()
		return rep, err
	}

	step := func(name string, run func()) {
		if cfg.stepStart != nil {
			cfg.stepStart(name)
		}
		run()
		if cfg.stepDone != nil {
			cfg.stepDone()
		}
	}

	var (
		readability  analysis.ReadabilityResult
		structure    analysis.StructureResult
		completeness analysis.CompletenessResult
		style        analysis.StyleResult
	)
	step("readability", func() { readability = analysis.AnalyzeReadability(doc) })
	step("structure", func() { structure = analysis.AnalyzeStructure(doc) })
	step("completeness", func() { completeness = analysis.AnalyzeCompleteness(doc) })
	step("style", func() { style = analysis.AnalyzeStyle(doc) })

	rep.Readability = newSection(readability.Assessment, readability.Explanation, readability.Findings)
	rep.Structure = newSection(structure.Assessment, "", structure.Findings)
	rep.Completeness = newSection(completeness.Assessment, "", completeness.Findings)
	rep.StyleGuidelines = newSection(style.Assessment, "", style.Findings)

	rep.OverallRecommendations = recommendations(rep)
	return rep, nil
}

// Errored builds a report carrying only the failure, for sources that
// could not be fetched or extracted.
func Errored(source string, err error) *Report {
	return &Report{
		Source:     source,
		AnalyzedAt: time.Now().Format(time.RFC3339),
		Error:      err.Error(),
	}
}

func newSection[A any](assessment A, explanation string, findings []analysis.Finding) *Section[A] {
	findings = analysis.Dedupe(findings)
	suggestions := make([]string, 0, len(findings))
	for _, f := range findings {
		suggestions = append(suggestions, f.Message)
	}
	return &Section[A]{
		Assessment:  assessment,
		Explanation: explanation,
		Suggestions: suggestions,
		Findings:    findings,
	}
}

// Findings returns every deduplicated finding across all categories,
// in category order.
func (r *Report) Findings() []analysis.Finding {
	if r.Error != "" {
		return nil
	}
	var all []analysis.Finding
	all = append(all, r.Readability.Findings...)
	all = append(all, r.Completeness.Findings...)
	all = append(all, r.Structure.Findings...)
	all = append(all, r.StyleGuidelines.Findings...)
	return all
}

// recommendationText is the one-line advice per category.
var recommendationText = map[analysis.Category]string{
	analysis.Readability:  "Improve readability by simplifying language and sentence structure.",
	analysis.Completeness: "Fill content gaps: add practical examples, visuals, or prerequisite guidance.",
	analysis.Structure:    "Improve article structure with sequential headings and shorter paragraphs.",
	analysis.Style:        "Address style guide violations for clearer, friendlier writing.",
}

// recommendations emits at most one line per category at or above the
// Medium floor: high-priority lines first, then medium, ties broken by
// the fixed category order. The readability line is high priority
// whenever the Flesch score is below 60, matching the score-based
// policy rather than the per-finding severities.
func recommendations(r *Report) []string {
	type rec struct {
		category analysis.Category
		severity analysis.Severity
	}
	var recs []rec

	addCategory := func(cat analysis.Category, findings []analysis.Finding) {
		sev, ok := analysis.MaxSeverity(findings)
		if !ok || sev < analysis.Medium {
			return
		}
		recs = append(recs, rec{cat, sev})
	}

	readabilityFindings := r.Readability.Findings
	if r.Readability.Assessment.FleschReadingEase < fleschRecommendationFloor &&
		r.Readability.Assessment.FleschReadingEase > 0 {
		recs = append(recs, rec{analysis.Readability, analysis.High})
	} else {
		addCategory(analysis.Readability, readabilityFindings)
	}
	addCategory(analysis.Completeness, r.Completeness.Findings)
	addCategory(analysis.Structure, r.Structure.Findings)
	addCategory(analysis.Style, r.StyleGuidelines.Findings)

	var lines []string
	for _, want := range []analysis.Severity{analysis.High, analysis.Medium} {
		for _, rc := range recs {
			if rc.severity != want {
				continue
			}
			prefix := "MEDIUM PRIORITY: "
			if want == analysis.High {
				prefix = "HIGH PRIORITY: "
			}
			lines = append(lines, prefix+recommendationText[rc.category])
		}
	}
	return lines
}
