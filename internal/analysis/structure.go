package analysis

import (
	"fmt"
	"strings"

	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/textmetrics"
)

// longParagraphWords is the word count above which a paragraph is
// flagged for splitting.
const longParagraphWords = 150

// HeadingHierarchy reports whether heading levels descend one step at
// a time.
type HeadingHierarchy struct {
	IsValid bool   `json:"is_valid"`
	Issue   string `json:"issue,omitempty"`
}

// StructureAssessment is the structure section of the report.
type StructureAssessment struct {
	HeadingsCount          int              `json:"headings_count"`
	ParagraphsCount        int              `json:"paragraphs_count"`
	ListsCount             int              `json:"lists_count"`
	CodeBlocksCount        int              `json:"code_blocks_count"`
	ImagesCount            int              `json:"images_count"`
	AverageParagraphLength float64          `json:"average_paragraph_length"`
	HeadingHierarchy       HeadingHierarchy `json:"heading_hierarchy"`
}

// StructureResult bundles the assessment with its findings.
type StructureResult struct {
	Assessment StructureAssessment
	Findings   []Finding
}

// AnalyzeStructure validates heading hierarchy and paragraph sizing
// over the ordered block sequence.
func AnalyzeStructure(doc *extract.Document) StructureResult {
	headings := doc.Headings()

	assessment := StructureAssessment{
		HeadingsCount:    len(headings),
		ParagraphsCount:  doc.Count(extract.KindParagraph),
		ListsCount:       countListRuns(doc),
		CodeBlocksCount:  doc.Count(extract.KindCode),
		ImagesCount:      doc.Count(extract.KindImage),
		HeadingHierarchy: checkHierarchy(headings),
	}

	var findings []Finding

	if !assessment.HeadingHierarchy.IsValid {
		findings = append(findings, Finding{
			Category: Structure,
			Subkind:  "heading_hierarchy_gap",
			Severity: Medium,
			Message:  assessment.HeadingHierarchy.Issue,
		})
	}

	if assessment.HeadingsCount < 3 && assessment.ParagraphsCount > 3 {
		findings = append(findings, Finding{
			Category: Structure,
			Subkind:  "few_headings",
			Severity: Medium,
			Message:  "The article has few headings. Add subheadings so readers can skim.",
		})
	}

	totalWords, paragraphs := 0, 0
	for i, b := range doc.Blocks {
		if b.Kind != extract.KindParagraph {
			continue
		}
		wc := textmetrics.WordCount(b.Text)
		totalWords += wc
		paragraphs++

		if wc > longParagraphWords {
			findings = append(findings, Finding{
				Category: Structure,
				Subkind:  "long_paragraph",
				Severity: Medium,
				Message:  fmt.Sprintf("Paragraph has %d words. Break it up into smaller chunks (aim for 50-75 words).", wc),
				Evidence: []Evidence{{Block: i, Start: 0, End: len(b.Text)}},
				Fix:      FixSplitParagraph,
			})
		}
	}
	if paragraphs > 0 {
		assessment.AverageParagraphLength = float64(totalWords) / float64(paragraphs)
	}

	if assessment.ListsCount == 0 && assessment.ParagraphsCount > 5 {
		findings = append(findings, Finding{
			Category: Structure,
			Subkind:  "no_lists",
			Severity: Low,
			Message:  "No lists found. Bullet points or numbered lists present steps and options more clearly.",
		})
	}

	findings = append(findings, flowFindings(headings)...)

	return StructureResult{Assessment: assessment, Findings: findings}
}

// checkHierarchy verifies that heading levels never deepen by more
// than one step. [1,3] is a gap; [1,2,2,3] is fine.
func checkHierarchy(headings []extract.Block) HeadingHierarchy {
	if len(headings) == 0 {
		return HeadingHierarchy{IsValid: true}
	}

	prev := headings[0].Level
	for _, h := range headings[1:] {
		if h.Level > prev+1 {
			return HeadingHierarchy{
				IsValid: false,
				Issue:   fmt.Sprintf("Heading hierarchy jumps from H%d to H%d. Use sequential heading levels.", prev, h.Level),
			}
		}
		prev = h.Level
	}
	return HeadingHierarchy{IsValid: true}
}

// flowFindings checks the heading sequence for a setup-before-usage
// flow and a closing summary section. The summary check matches the
// final heading's text, not its position, since trailing paragraphs
// after the last heading are normal.
func flowFindings(headings []extract.Block) []Finding {
	var findings []Finding
	if len(headings) == 0 {
		return nil
	}

	var hasSetup, hasUsage bool
	for _, h := range headings {
		lower := strings.ToLower(h.Text)
		if strings.Contains(lower, "setup") || strings.Contains(lower, "configur") || strings.Contains(lower, "install") {
			hasSetup = true
		}
		if strings.Contains(lower, "use") || strings.Contains(lower, "using") {
			hasUsage = true
		}
	}
	if hasUsage && !hasSetup {
		findings = append(findings, Finding{
			Category: Structure,
			Subkind:  "missing_setup_section",
			Severity: Low,
			Message:  "Consider adding a Setup or Configuration section before explaining usage.",
		})
	}

	last := strings.ToLower(headings[len(headings)-1].Text)
	hasSummary := false
	for _, kw := range SummaryHeadingKeywords {
		if strings.Contains(last, kw) {
			hasSummary = true
			break
		}
	}
	if len(headings) > 3 && !hasSummary {
		findings = append(findings, Finding{
			Category: Structure,
			Subkind:  "missing_summary_section",
			Severity: Low,
			Message:  "Consider a closing Summary or Next Steps section to conclude the article.",
		})
	}

	return findings
}

// countListRuns counts contiguous runs of list items, which maps to
// the number of source lists.
func countListRuns(doc *extract.Document) int {
	runs := 0
	inList := false
	for _, b := range doc.Blocks {
		if b.Kind == extract.KindListItem {
			if !inList {
				runs++
				inList = true
			}
		} else {
			inList = false
		}
	}
	return runs
}
