// Package textmetrics implements the readability formulas the analyzers
// score with: Flesch Reading Ease and the Gunning Fog index, plus the
// sentence, word and syllable counting they depend on.
package textmetrics

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	sentenceEndRe = regexp.MustCompile(`[.!?]+(\s|$)`)
	wordRe        = regexp.MustCompile(`[A-Za-z0-9']+`)
	vowelGroupRe  = regexp.MustCompile(`[aeiouy]+`)
)

// SentenceCount counts sentence terminators followed by whitespace or
// end of text. Text with words but no terminator counts as one sentence.
func SentenceCount(text string) int {
	n := len(sentenceEndRe.FindAllString(text, -1))
	if n == 0 && WordCount(text) > 0 {
		return 1
	}
	return n
}

// WordCount counts word tokens.
func WordCount(text string) int {
	return len(wordRe.FindAllString(text, -1))
}

// Words returns the word tokens of text.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// SyllableCount estimates syllables in a single word by counting vowel
// groups, dropping a common silent trailing e.
func SyllableCount(word string) int {
	w := strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if w == "" {
		return 0
	}

	groups := len(vowelGroupRe.FindAllString(w, -1))

	// Silent e: "code" has one spoken syllable, "be" keeps its vowel.
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && groups > 1 {
		groups--
	}

	if groups == 0 {
		return 1
	}
	return groups
}

// complexWordSuffixes are common suffixes that add a syllable without
// making a word hard; Fog excludes words that are only complex because
// of them.
var complexWordSuffixes = []string{"es", "ed", "ing"}

// IsComplexWord reports whether a word counts as complex for the Fog
// index: three or more syllables, ignoring common suffix inflation.
func IsComplexWord(word string) bool {
	if SyllableCount(word) < 3 {
		return false
	}
	lower := strings.ToLower(word)
	for _, suffix := range complexWordSuffixes {
		trimmed := strings.TrimSuffix(lower, suffix)
		if trimmed != lower && SyllableCount(trimmed) < 3 {
			return false
		}
	}
	return true
}

// FleschReadingEase scores text 0-100+; higher is easier. Degenerate
// text (no words or no sentences) scores zero.
func FleschReadingEase(text string) float64 {
	words := Words(text)
	sentences := SentenceCount(text)
	if len(words) == 0 || sentences == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += SyllableCount(w)
	}

	return 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
}

// GunningFog estimates the years of schooling needed to follow the
// text. Degenerate text scores zero.
func GunningFog(text string) float64 {
	words := Words(text)
	sentences := SentenceCount(text)
	if len(words) == 0 || sentences == 0 {
		return 0
	}

	complex := 0
	for _, w := range words {
		if IsComplexWord(w) {
			complex++
		}
	}

	return 0.4 * (float64(len(words))/float64(sentences) +
		100*float64(complex)/float64(len(words)))
}

// AverageSentenceLength is words per sentence; zero for degenerate text.
func AverageSentenceLength(text string) float64 {
	words := WordCount(text)
	sentences := SentenceCount(text)
	if words == 0 || sentences == 0 {
		return 0
	}
	return float64(words) / float64(sentences)
}

// Sentences splits text on sentence terminators, keeping the terminator
// with its sentence.
func Sentences(text string) []string {
	var out []string
	start := 0
	locs := sentenceEndRe.FindAllStringIndex(text, -1)
	for _, loc := range locs {
		s := strings.TrimSpace(text[start:loc[1]])
		if s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// LevelFor maps a Flesch score onto its difficulty label. The table is
// ordered and fixed; a higher score never maps to a harder label.
func LevelFor(flesch float64) string {
	switch {
	case flesch >= 90:
		return "Very Easy"
	case flesch >= 70:
		return "Easy"
	case flesch >= 60:
		return "Standard"
	case flesch >= 50:
		return "Fairly Difficult"
	case flesch >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}
