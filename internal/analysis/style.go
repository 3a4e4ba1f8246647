package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/textmetrics"
)

// Frequency thresholds for the severity of aggregate style findings.
const (
	passiveVoiceHighPct  = 10.0
	weakConstructionHigh = 5
)

var (
	passiveRe     = regexp.MustCompile(`(?i)\b(is|are|was|were|be|been|being)\s+\w+(ed|en)\b`)
	modalHedgeRe  = regexp.MustCompile(`\b(might|may)\b`)
	youCanRe      = regexp.MustCompile(`^[Yy]ou can\b`)
	firstPersonRe = regexp.MustCompile(`(?i)\b(i|we|our|us|me)\b`)
	spaceRunRe    = regexp.MustCompile(` {2,}`)
	oxfordRe      = regexp.MustCompile(`\b(\w+), (\w+) (and|or) (\w+)\b`)
	longWordRe    = regexp.MustCompile(`\b\w{15,}\b`)
	imperativeRe  = regexp.MustCompile(`^(Click|Select|Navigate|Configure|Open|Run|Set|Choose|Enter|Create|Add|Use|Install|Copy|Paste|Save)\b`)
)

// RuleStats is the per-rule shape inside microsoft_style.
type RuleStats struct {
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
	Message  string   `json:"message"`
}

// MicrosoftStyle holds one RuleStats per style rule, in the fixed rule
// order.
type MicrosoftStyle struct {
	MissingContractions    RuleStats `json:"missing_contractions"`
	TitleCapitalization    RuleStats `json:"title_capitalization"`
	VerbosePhrases         RuleStats `json:"verbose_phrases"`
	SpacingIssues          RuleStats `json:"spacing_issues"`
	OxfordComma            RuleStats `json:"oxford_comma"`
	WeakConstructions      RuleStats `json:"weak_constructions"`
	PassiveVoice           RuleStats `json:"passive_voice"`
	JargonUsage            RuleStats `json:"jargon_usage"`
	UnnecessaryPunctuation RuleStats `json:"unnecessary_punctuation"`
}

// VoiceTone is the voice_tone part of the style assessment.
type VoiceTone struct {
	PassiveVoicePercentage float64  `json:"passive_voice_percentage"`
	PassiveExamples        []string `json:"passive_examples"`
	FirstPersonCount       int      `json:"first_person_count"`
}

// Clarity is the clarity part of the style assessment.
type Clarity struct {
	WordyPhrasesCount int `json:"wordy_phrases_count"`
	LongWordsCount    int `json:"long_words_count"`
}

// ActionOrientation is the action_orientation part of the style
// assessment.
type ActionOrientation struct {
	WeakVerbsCount   int      `json:"weak_verbs_count"`
	WeakVerbExamples []string `json:"weak_verb_examples"`
	HasClearActions  bool     `json:"has_clear_actions"`
}

// StyleAssessment is the style_guidelines section of the report.
type StyleAssessment struct {
	VoiceTone         VoiceTone         `json:"voice_tone"`
	Clarity           Clarity           `json:"clarity"`
	ActionOrientation ActionOrientation `json:"action_orientation"`
	MicrosoftStyle    MicrosoftStyle    `json:"microsoft_style"`
}

// StyleResult bundles the assessment with its findings.
type StyleResult struct {
	Assessment StyleAssessment
	Findings   []Finding
}

// AnalyzeStyle runs the Microsoft Style Guide rule table in its fixed
// order, then the voice/clarity/action signals. Every matched instance
// becomes one finding with a before/after example in its message.
func AnalyzeStyle(doc *extract.Document) StyleResult {
	var result StyleResult

	contractions := checkContractions(doc)
	titleCase := checkTitleCapitalization(doc)
	verbose := checkVerbosePhrases(doc)
	spacing := checkSpacing(doc)
	oxford := checkOxfordComma(doc)
	weak := checkWeakConstructions(doc)
	passive, voiceTone := checkPassiveVoice(doc)
	jargon := checkJargon(doc)
	punctuation := checkHeadingPunctuation(doc)

	for _, group := range [][]Finding{
		contractions, titleCase, verbose, spacing, oxford, weak, passive, jargon, punctuation,
	} {
		result.Findings = append(result.Findings, group...)
	}

	clarity := Clarity{
		WordyPhrasesCount: len(verbose),
		LongWordsCount:    len(longWordRe.FindAllString(doc.Text(), -1)),
	}
	action := analyzeActionOrientation(doc, weak)

	result.Assessment = StyleAssessment{
		VoiceTone:         voiceTone,
		Clarity:           clarity,
		ActionOrientation: action,
		MicrosoftStyle: MicrosoftStyle{
			MissingContractions:    ruleStats(contractions, "opportunities to use contractions for a friendlier tone"),
			TitleCapitalization:    ruleStats(titleCase, "headings using title case instead of sentence case"),
			VerbosePhrases:         ruleStats(verbose, "verbose phrases that can be simplified"),
			SpacingIssues:          ruleStats(spacing, "spacing issues to correct"),
			OxfordComma:            ruleStats(oxford, "lists missing the Oxford comma"),
			WeakConstructions:      ruleStats(weak, "weak writing constructions to revise"),
			PassiveVoice:           ruleStats(passive, "passive voice findings"),
			JargonUsage:            ruleStats(jargon, "technical terms that need explanation"),
			UnnecessaryPunctuation: ruleStats(punctuation, "headings with unnecessary end punctuation"),
		},
	}

	return result
}

func ruleStats(findings []Finding, noun string) RuleStats {
	examples := make([]string, 0, 5)
	for _, f := range findings {
		if len(examples) == 5 {
			break
		}
		examples = append(examples, f.Message)
	}
	return RuleStats{
		Count:    len(findings),
		Examples: examples,
		Message:  fmt.Sprintf("Found %d %s.", len(findings), noun),
	}
}

// PhraseRegexp compiles a case-insensitive whole-phrase matcher. The
// reviser uses the same matcher so detection and fixing agree exactly.
func PhraseRegexp(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// prose reports whether a block holds editable body text. Headings are
// covered by heading rules, code must never be touched.
func prose(b extract.Block) bool {
	return b.Kind == extract.KindParagraph || b.Kind == extract.KindListItem
}

func checkContractions(doc *extract.Document) []Finding {
	var findings []Finding
	for i, b := range doc.Blocks {
		if !prose(b) {
			continue
		}
		for _, c := range Contractions {
			re := PhraseRegexp(c.From)
			for _, loc := range re.FindAllStringIndex(b.Text, -1) {
				findings = append(findings, Finding{
					Category: Style,
					Subkind:  "missing_contractions",
					Severity: Medium,
					Message:  fmt.Sprintf("Use %q instead of %q: %q", c.To, c.From, truncate(b.Text[loc[0]:], 50)),
					Evidence: []Evidence{{Block: i, Start: loc[0], End: loc[1]}},
					Fix:      FixContractions,
				})
			}
		}
	}
	return findings
}

func checkTitleCapitalization(doc *extract.Document) []Finding {
	var findings []Finding
	for i, b := range doc.Blocks {
		if b.Kind != extract.KindHeading {
			continue
		}
		words := strings.Fields(b.Text)
		if len(words) <= 1 {
			continue
		}
		capitalized := 0
		for _, w := range words {
			if isAllowedAcronym(w) {
				continue
			}
			if r := []rune(w); len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z' {
				capitalized++
			}
		}
		if capitalized >= 2 {
			findings = append(findings, Finding{
				Category: Style,
				Subkind:  "title_capitalization",
				Severity: Medium,
				Message:  fmt.Sprintf("Use sentence case: %q → %q", b.Text, SentenceCase(b.Text)),
				Evidence: []Evidence{{Block: i, Start: 0, End: len(b.Text)}},
				Fix:      FixHeadingCase,
			})
		}
	}
	return findings
}

func checkVerbosePhrases(doc *extract.Document) []Finding {
	var findings []Finding
	for i, b := range doc.Blocks {
		if !prose(b) {
			continue
		}
		for _, v := range VerbosePhrases {
			re := PhraseRegexp(v.From)
			for _, loc := range re.FindAllStringIndex(b.Text, -1) {
				replacement := fmt.Sprintf("%q", v.To)
				if v.To == "" {
					replacement = "nothing (remove it)"
				}
				findings = append(findings, Finding{
					Category: Style,
					Subkind:  "verbose_phrases",
					Severity: Medium,
					Message:  fmt.Sprintf("Replace %q with %s", v.From, replacement),
					Evidence: []Evidence{{Block: i, Start: loc[0], End: loc[1]}},
					Fix:      FixVerbosePhrases,
				})
			}
		}
	}
	return findings
}

func checkSpacing(doc *extract.Document) []Finding {
	var findings []Finding
	for i, b := range doc.Blocks {
		if !prose(b) {
			continue
		}
		for _, loc := range spaceRunRe.FindAllStringIndex(b.Text, -1) {
			findings = append(findings, Finding{
				Category: Style,
				Subkind:  "spacing_issues",
				Severity: Low,
				Message:  "Collapse consecutive spaces to a single space",
				Evidence: []Evidence{{Block: i, Start: loc[0], End: loc[1]}},
				Fix:      FixSpacing,
			})
		}
	}
	return findings
}

func checkOxfordComma(doc *extract.Document) []Finding {
	var findings []Finding
	for i, b := range doc.Blocks {
		if !prose(b) {
			continue
		}
		for _, loc := range oxfordRe.FindAllStringIndex(b.Text, -1) {
			match := b.Text[loc[0]:loc[1]]
			findings = append(findings, Finding{
				Category: Style,
				Subkind:  "oxford_comma",
				Severity: Low,
				Message:  fmt.Sprintf("Add the Oxford comma: %q → %q", match, oxfordRe.ReplaceAllString(match, "$1, $2, $3 $4")),
				Evidence: []Evidence{{Block: i, Start: loc[0], End: loc[1]}},
				Fix:      FixOxfordComma,
			})
		}
	}
	return findings
}

func checkWeakConstructions(doc *extract.Document) []Finding {
	type hit struct {
		block   int
		start   int
		end     int
		example string
	}
	var hits []hit

	for i, b := range doc.Blocks {
		if !prose(b) {
			continue
		}
		offset := 0
		for _, s := range textmetrics.Sentences(b.Text) {
			start := strings.Index(b.Text[offset:], s)
			if start >= 0 {
				start += offset
				offset = start + len(s)
			}
			if loc := youCanRe.FindStringIndex(s); loc != nil {
				hits = append(hits, hit{i, start + loc[0], start + loc[1], truncate(s, 50)})
			}
			for _, loc := range modalHedgeRe.FindAllStringIndex(s, -1) {
				hits = append(hits, hit{i, start + loc[0], start + loc[1], truncate(s, 50)})
			}
		}
	}

	// Severity is frequency-based: a hedge here and there is fine,
	// a pattern of them is not.
	severity := Low
	if len(hits) > weakConstructionHigh {
		severity = High
	}

	findings := make([]Finding, 0, len(hits))
	for _, h := range hits {
		findings = append(findings, Finding{
			Category: Style,
			Subkind:  "weak_constructions",
			Severity: severity,
			Message:  fmt.Sprintf("Weak construction; start with an action verb instead: %q", h.example),
			Evidence: []Evidence{{Block: h.block, Start: h.start, End: h.end}},
			Fix:      FixRewrite,
		})
	}
	return findings
}

// checkPassiveVoice reports one aggregate finding; individual passive
// sentences are not auto-fixable, only reportable.
func checkPassiveVoice(doc *extract.Document) ([]Finding, VoiceTone) {
	text := doc.Text()
	sentences := textmetrics.Sentences(text)

	voiceTone := VoiceTone{
		FirstPersonCount: len(firstPersonRe.FindAllString(text, -1)),
	}
	if len(sentences) == 0 {
		return nil, voiceTone
	}

	passiveCount := 0
	for _, s := range sentences {
		if passiveRe.MatchString(s) {
			passiveCount++
			if len(voiceTone.PassiveExamples) < 3 {
				voiceTone.PassiveExamples = append(voiceTone.PassiveExamples, truncate(s, 50))
			}
		}
	}
	voiceTone.PassiveVoicePercentage = 100 * float64(passiveCount) / float64(len(sentences))

	if passiveCount == 0 {
		return nil, voiceTone
	}

	severity := Low
	if voiceTone.PassiveVoicePercentage > passiveVoiceHighPct {
		severity = High
	}

	return []Finding{{
		Category: Style,
		Subkind:  "passive_voice",
		Severity: severity,
		Message: fmt.Sprintf("%.1f%% of sentences use passive voice. Convert to active voice, e.g. %s",
			voiceTone.PassiveVoicePercentage, strings.Join(voiceTone.PassiveExamples, "; ")),
	}}, voiceTone
}

func checkJargon(doc *extract.Document) []Finding {
	var findings []Finding
	lowerText := strings.ToLower(doc.Text())

	for _, g := range Glossary {
		// Already defined somewhere in the document.
		if strings.Contains(lowerText, strings.ToLower(g.To)) {
			continue
		}
		re := PhraseRegexp(g.From)

		for i, b := range doc.Blocks {
			if !prose(b) {
				continue
			}
			loc := re.FindStringIndex(b.Text)
			if loc == nil {
				continue
			}
			findings = append(findings, Finding{
				Category: Style,
				Subkind:  "jargon_usage",
				Severity: Medium,
				Message:  fmt.Sprintf("Explain %q on first use as %q", b.Text[loc[0]:loc[1]], g.To),
				Evidence: []Evidence{{Block: i, Start: loc[0], End: loc[1]}},
				Fix:      FixJargonExpansion,
			})
			break // one finding per term, at its first occurrence
		}
	}
	return findings
}

func checkHeadingPunctuation(doc *extract.Document) []Finding {
	var findings []Finding
	for i, b := range doc.Blocks {
		if b.Kind != extract.KindHeading {
			continue
		}
		trimmed := strings.TrimRight(b.Text, ".!?")
		if trimmed == b.Text || trimmed == "" {
			continue
		}
		findings = append(findings, Finding{
			Category: Style,
			Subkind:  "unnecessary_punctuation",
			Severity: Low,
			Message:  fmt.Sprintf("Remove end punctuation: %q → %q", b.Text, trimmed),
			Evidence: []Evidence{{Block: i, Start: 0, End: len(b.Text)}},
			Fix:      FixHeadingPunctuation,
		})
	}
	return findings
}

func analyzeActionOrientation(doc *extract.Document, weak []Finding) ActionOrientation {
	action := ActionOrientation{WeakVerbsCount: len(weak)}
	for _, f := range weak {
		if len(action.WeakVerbExamples) == 5 {
			break
		}
		action.WeakVerbExamples = append(action.WeakVerbExamples, f.Message)
	}

	imperatives := 0
	for _, b := range doc.Blocks {
		if !prose(b) {
			continue
		}
		for _, s := range textmetrics.Sentences(b.Text) {
			if imperativeRe.MatchString(s) {
				imperatives++
			}
		}
	}
	action.HasClearActions = imperatives > 3
	return action
}

func isAllowedAcronym(word string) bool {
	clean := strings.TrimRight(word, ".,:;!?")
	for _, a := range AcronymAllowlist {
		if clean == a {
			return true
		}
	}
	return false
}

// SentenceCase lowers every word after the first, preserving the
// acronym allowlist. Shared with the reviser's heading transform.
func SentenceCase(heading string) string {
	words := strings.Fields(heading)
	if len(words) == 0 {
		return heading
	}

	out := make([]string, len(words))
	for i, w := range words {
		switch {
		case isAllowedAcronym(w):
			out[i] = w
		case i == 0:
			r := []rune(strings.ToLower(w))
			if len(r) > 0 {
				r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			}
			out[i] = string(r)
		default:
			out[i] = strings.ToLower(w)
		}
	}
	return strings.Join(out, " ")
}
