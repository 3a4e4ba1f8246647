package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/textmetrics"
)

// complexSentenceWords is the word count above which a sentence is
// reported as too complex.
const complexSentenceWords = 30

// maxComplexSentences caps how many complex sentences make the report.
const maxComplexSentences = 3

// ReadabilityAssessment is the readability section of the report.
type ReadabilityAssessment struct {
	FleschReadingEase     float64 `json:"flesch_reading_ease"`
	GunningFogIndex       float64 `json:"gunning_fog_index"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	ReadabilityLevel      string  `json:"readability_level"`
	TechnicalTermsCount   int     `json:"technical_terms_count"`
}

// ReadabilityResult bundles the assessment with its findings.
type ReadabilityResult struct {
	Assessment  ReadabilityAssessment
	Explanation string
	Findings    []Finding
}

var levelExplanations = map[string]string{
	"Very Easy":        "The content is very easy to read and suits readers of any technical background.",
	"Easy":             "The content is easy to read with language most readers will find accessible.",
	"Standard":         "The content has average readability. Non-technical readers may need to re-read some sections.",
	"Fairly Difficult": "The content is somewhat difficult to read. Consider simplifying language and sentence structure.",
	"Difficult":        "The content is difficult to read and may be too technical for many readers.",
	"Very Difficult":   "The content is very difficult to read and likely too complex for non-technical readers.",
}

// AnalyzeReadability scores the document body with Flesch and Fog and
// flags the sentences that drag those scores down.
func AnalyzeReadability(doc *extract.Document) ReadabilityResult {
	text := doc.Text()

	if textmetrics.WordCount(text) == 0 || textmetrics.SentenceCount(text) == 0 {
		// Degenerate text: zeroed metrics, informational finding,
		// never a division failure.
		return ReadabilityResult{
			Assessment: ReadabilityAssessment{ReadabilityLevel: textmetrics.LevelFor(0)},
			Findings: []Finding{{
				Category: Readability,
				Subkind:  "insufficient_content",
				Severity: Low,
				Message:  "Not enough text to compute readability metrics.",
			}},
		}
	}

	flesch := textmetrics.FleschReadingEase(text)
	level := textmetrics.LevelFor(flesch)

	assessment := ReadabilityAssessment{
		FleschReadingEase:     flesch,
		GunningFogIndex:       textmetrics.GunningFog(text),
		AverageSentenceLength: textmetrics.AverageSentenceLength(text),
		ReadabilityLevel:      level,
		TechnicalTermsCount:   countTechnicalTerms(text),
	}

	var findings []Finding

	switch {
	case flesch < 50:
		findings = append(findings, Finding{
			Category: Readability,
			Subkind:  "low_readability",
			Severity: High,
			Message:  fmt.Sprintf("Low readability score (Flesch: %.1f). Simplify sentences and use more common words.", flesch),
		})
	case flesch < 60:
		findings = append(findings, Finding{
			Category: Readability,
			Subkind:  "low_readability",
			Severity: Medium,
			Message:  fmt.Sprintf("Below-average readability score (Flesch: %.1f). Shorter sentences would help.", flesch),
		})
	}

	if assessment.AverageSentenceLength > 20 {
		findings = append(findings, Finding{
			Category: Readability,
			Subkind:  "long_sentences",
			Severity: Medium,
			Message: fmt.Sprintf("Average sentence length is %.1f words. Aim for 15-20 words per sentence.",
				assessment.AverageSentenceLength),
		})
	}

	if assessment.TechnicalTermsCount > 10 {
		findings = append(findings, Finding{
			Category: Readability,
			Subkind:  "technical_terms",
			Severity: Medium,
			Message: fmt.Sprintf("Found %d technical terms that may confuse non-technical readers. Consider a glossary.",
				assessment.TechnicalTermsCount),
		})
	}

	findings = append(findings, complexSentenceFindings(doc)...)

	return ReadabilityResult{
		Assessment:  assessment,
		Explanation: fmt.Sprintf("%s (Flesch score: %.1f)", levelExplanations[level], flesch),
		Findings:    findings,
	}
}

// complexSentenceFindings flags the longest sentences above the word
// threshold, capped so one dense document can't flood the report.
func complexSentenceFindings(doc *extract.Document) []Finding {
	type candidate struct {
		block    int
		start    int
		end      int
		words    int
		sentence string
	}
	var candidates []candidate

	for i, b := range doc.Blocks {
		if b.Kind != extract.KindParagraph && b.Kind != extract.KindListItem {
			continue
		}
		offset := 0
		for _, s := range textmetrics.Sentences(b.Text) {
			start := strings.Index(b.Text[offset:], s)
			if start >= 0 {
				start += offset
				offset = start + len(s)
			}
			if wc := textmetrics.WordCount(s); wc > complexSentenceWords {
				candidates = append(candidates, candidate{
					block:    i,
					start:    start,
					end:      start + len(s),
					words:    wc,
					sentence: s,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].words > candidates[j].words
	})
	if len(candidates) > maxComplexSentences {
		candidates = candidates[:maxComplexSentences]
	}

	findings := make([]Finding, 0, len(candidates))
	for _, c := range candidates {
		findings = append(findings, Finding{
			Category: Readability,
			Subkind:  "complex_sentence",
			Severity: Low,
			Message:  fmt.Sprintf("Sentence with %d words should be simplified: %q", c.words, truncate(c.sentence, 100)),
			Evidence: []Evidence{{Block: c.block, Start: c.start, End: c.end}},
			Fix:      FixRewrite,
		})
	}
	return findings
}

func countTechnicalTerms(text string) int {
	present := make(map[string]bool)
	for _, w := range textmetrics.Words(strings.ToLower(text)) {
		present[w] = true
	}
	n := 0
	for _, term := range TechnicalTerms {
		if present[term] {
			n++
		}
	}
	return n
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
