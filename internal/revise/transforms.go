// Package revise applies the deterministic text transforms that
// resolve fixable findings, tracking what was applied and what was not.
package revise

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/docvet/docvet/internal/analysis"
	"github.com/docvet/docvet/internal/textmetrics"
)

var (
	spaceRunRe = regexp.MustCompile(` {2,}`)
	oxfordRe   = regexp.MustCompile(`\b(\w+), (\w+) (and|or) (\w+)\b`)
)

// Every transform below is a pure function of its input text and is
// idempotent: running it on already-fixed text changes nothing.

// Contract replaces formal phrases with their contractions, preserving
// a leading capital.
func Contract(text string) string {
	for _, c := range analysis.Contractions {
		text = replacePhrase(text, c.From, c.To)
	}
	return text
}

// Simplify replaces verbose phrases with concise alternatives. Filler
// phrases with empty replacements are removed outright.
func Simplify(text string) string {
	for _, v := range analysis.VerbosePhrases {
		text = replacePhrase(text, v.From, v.To)
	}
	return spaceRunRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// NormalizeSpacing collapses runs of spaces to a single space.
func NormalizeSpacing(text string) string {
	return spaceRunRe.ReplaceAllString(text, " ")
}

// AddOxfordCommas inserts the serial comma into three-item lists.
func AddOxfordCommas(text string) string {
	return oxfordRe.ReplaceAllString(text, "$1, $2, $3 $4")
}

// HeadingSentenceCase rewrites a heading to sentence case, keeping
// known acronyms.
func HeadingSentenceCase(text string) string {
	return analysis.SentenceCase(text)
}

// StripHeadingPunctuation drops trailing sentence punctuation from a
// heading.
func StripHeadingPunctuation(text string) string {
	return strings.TrimRight(text, ".!?")
}

// ExpandJargon inserts the glossary expansion at a term's first use.
// Text already containing the expansion is left alone.
func ExpandJargon(text string) string {
	lower := strings.ToLower(text)
	for _, g := range analysis.Glossary {
		if strings.Contains(lower, strings.ToLower(g.To)) {
			continue
		}
		re := analysis.PhraseRegexp(g.From)
		if loc := re.FindStringIndex(text); loc != nil {
			text = text[:loc[0]] + g.To + text[loc[1]:]
			lower = strings.ToLower(text)
		}
	}
	return text
}

// SplitParagraph breaks a long paragraph into chunks at sentence
// boundaries so every chunk stays at or below maxWords. A single
// oversized sentence cannot be split and comes back as-is.
func SplitParagraph(text string, maxWords int) []string {
	if textmetrics.WordCount(text) <= maxWords {
		return []string{text}
	}

	sentences := textmetrics.Sentences(text)
	if len(sentences) < 2 {
		return []string{text}
	}

	var chunks []string
	var current []string
	words := 0
	for _, s := range sentences {
		wc := textmetrics.WordCount(s)
		if words+wc > maxWords && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, words = nil, 0
		}
		current = append(current, s)
		words += wc
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// replacePhrase substitutes every whole-phrase occurrence, preserving
// a leading capital. Empty replacements also swallow one following
// space so no double gap remains.
func replacePhrase(text, from, to string) string {
	re := analysis.PhraseRegexp(from)
	if to == "" {
		text = re.ReplaceAllString(text, "")
		return spaceRunRe.ReplaceAllString(text, " ")
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return matchCase(match, to)
	})
}

// matchCase capitalizes the replacement when the matched text started
// with a capital.
func matchCase(match, replacement string) string {
	r := []rune(match)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return replacement
	}
	out := []rune(replacement)
	if len(out) > 0 {
		out[0] = unicode.ToUpper(out[0])
	}
	return string(out)
}
