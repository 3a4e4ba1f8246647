package analysis

import (
	"regexp"
	"strings"

	"github.com/docvet/docvet/internal/extract"
)

var stepPatternRe = regexp.MustCompile(`(?i)\bstep \d+`)

// CompletenessAssessment is the completeness section of the report.
type CompletenessAssessment struct {
	CodeExamplesCount int  `json:"code_examples_count"`
	ImagesCount       int  `json:"images_count"`
	ExampleMentions   int  `json:"example_mentions"`
	HasStepByStep     bool `json:"has_step_by_step"`
	AlertsCount       int  `json:"alerts_count"`
}

// CompletenessResult bundles the assessment with its findings.
type CompletenessResult struct {
	Assessment CompletenessAssessment
	Findings   []Finding
}

// AnalyzeCompleteness looks for the signals a complete article carries:
// examples, visuals, step-by-step instructions and prerequisites.
// Completeness gaps need new content, so none of these findings ever
// carries a fix.
func AnalyzeCompleteness(doc *extract.Document) CompletenessResult {
	text := doc.Text()
	lower := strings.ToLower(text)

	assessment := CompletenessAssessment{
		CodeExamplesCount: doc.Count(extract.KindCode),
		ImagesCount:       doc.Count(extract.KindImage),
		ExampleMentions:   countExampleMentions(lower),
		HasStepByStep:     hasStepByStep(doc, text),
		AlertsCount:       doc.AlertCount,
	}

	var findings []Finding

	if assessment.ExampleMentions < 2 && assessment.CodeExamplesCount < 1 {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_examples",
			Severity: High,
			Message:  "The article lacks concrete examples. Add practical examples showing real scenarios.",
		})
	}

	if assessment.ImagesCount == 0 {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_images",
			Severity: Medium,
			Message:  "No images or screenshots found. Visual aids help illustrate the UI, workflow, or results.",
		})
	}

	if !assessment.HasStepByStep {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_steps",
			Severity: Medium,
			Message:  "No step-by-step instructions found. Numbered steps make procedures easier to follow.",
		})
	}

	if !mentionsAny(doc, lower, PrerequisiteKeywords) {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_prerequisites",
			Severity: Medium,
			Message:  "The article doesn't state prerequisites. Add a \"Prerequisites\" or \"Before you begin\" section.",
		})
	}

	if !containsAny(lower, UseCaseKeywords) {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_use_cases",
			Severity: Low,
			Message:  "Consider a \"Common use cases\" section so readers know when to apply this feature.",
		})
	}

	findings = append(findings, exampleGapFindings(doc, lower)...)

	return CompletenessResult{Assessment: assessment, Findings: findings}
}

func countExampleMentions(lower string) int {
	n := 0
	for _, indicator := range ExampleIndicators {
		n += strings.Count(lower, indicator)
	}
	return n
}

func hasStepByStep(doc *extract.Document, text string) bool {
	for _, b := range doc.Blocks {
		if b.Kind == extract.KindListItem && b.Ordered {
			return true
		}
	}
	return stepPatternRe.MatchString(text)
}

// mentionsAny matches keywords in headings first, then anywhere in the
// body text.
func mentionsAny(doc *extract.Document, lowerBody string, keywords []string) bool {
	for _, h := range doc.Headings() {
		lower := strings.ToLower(h.Text)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return containsAny(lowerBody, keywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// exampleGapFindings flags features discussed without matching
// examples: configuration prose with no config snippet, API talk with
// little code.
func exampleGapFindings(doc *extract.Document, lower string) []Finding {
	var findings []Finding

	if strings.Contains(lower, "configure") && !hasConfigExample(doc) {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_config_example",
			Severity: Low,
			Message:  "Configuration is discussed without a configuration example. Show actual values a reader would use.",
		})
	}

	if (strings.Contains(lower, "api") || strings.Contains(lower, "integration")) && doc.Count(extract.KindCode) < 2 {
		findings = append(findings, Finding{
			Category: Completeness,
			Subkind:  "missing_api_example",
			Severity: Low,
			Message:  "An API or integration is mentioned but code examples are sparse. Add examples with sample data.",
		})
	}

	return findings
}

func hasConfigExample(doc *extract.Document) bool {
	for _, b := range doc.Blocks {
		if b.Kind == extract.KindCode && strings.Contains(strings.ToLower(b.Text), "config") {
			return true
		}
	}
	return false
}
