package textmetrics

import (
	"testing"
)

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "three terminated sentences",
			text:     "First sentence. Second sentence! Third sentence?",
			expected: 3,
		},
		{
			name:     "words but no terminator",
			text:     "a fragment without terminator",
			expected: 1,
		},
		{
			name:     "empty text",
			text:     "",
			expected: 0,
		},
		{
			name:     "ellipsis counts once",
			text:     "Wait for it... done.",
			expected: 2,
		},
		{
			name:     "terminator at end of text",
			text:     "Only one sentence.",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SentenceCount(tt.text); got != tt.expected {
				t.Errorf("SentenceCount(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "plain words", text: "one two three", expected: 3},
		{name: "contraction is one word", text: "don't stop", expected: 2},
		{name: "numbers count", text: "step 2 of 3", expected: 4},
		{name: "empty", text: "", expected: 0},
		{name: "punctuation only", text: "... !!!", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.text); got != tt.expected {
				t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSyllableCount(t *testing.T) {
	tests := []struct {
		word     string
		expected int
	}{
		{"cat", 1},
		{"hello", 2},
		{"code", 1},     // silent e
		{"be", 1},       // vowel e kept
		{"table", 2},    // -le keeps its syllable
		{"beautiful", 3},
		{"rhythm", 1}, // y is the only vowel group
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := SyllableCount(tt.word); got != tt.expected {
				t.Errorf("SyllableCount(%q) = %d, want %d", tt.word, got, tt.expected)
			}
		})
	}
}

func TestIsComplexWord(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"cat", false},
		{"hello", false},
		{"beautiful", true},
		{"created", false}, // two vowel groups
		{"configuration", true},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := IsComplexWord(tt.word); got != tt.expected {
				t.Errorf("IsComplexWord(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}

func TestFleschReadingEase(t *testing.T) {
	simple := "The cat sat. The dog ran. We like pets."
	dense := "Organizational infrastructures necessitate comprehensive architectural documentation methodologies incorporating multidimensional considerations."

	simpleScore := FleschReadingEase(simple)
	denseScore := FleschReadingEase(dense)

	if simpleScore <= denseScore {
		t.Errorf("simple text (%.1f) should outscore dense text (%.1f)", simpleScore, denseScore)
	}
	if simpleScore < 80 {
		t.Errorf("simple text scored %.1f, expected at least 80", simpleScore)
	}
	if denseScore > 0 {
		t.Errorf("dense text scored %.1f, expected at most 0", denseScore)
	}

	if got := FleschReadingEase(""); got != 0 {
		t.Errorf("FleschReadingEase(\"\") = %.1f, want 0", got)
	}
}

func TestGunningFog(t *testing.T) {
	if got := GunningFog(""); got != 0 {
		t.Errorf("GunningFog(\"\") = %.1f, want 0", got)
	}

	simple := "The cat sat. The dog ran."
	if got := GunningFog(simple); got <= 0 || got > 5 {
		t.Errorf("GunningFog(simple) = %.1f, want a small positive index", got)
	}
}

func TestAverageSentenceLength(t *testing.T) {
	text := "One two three four. Five six."
	if got := AverageSentenceLength(text); got != 3 {
		t.Errorf("AverageSentenceLength = %.1f, want 3.0", got)
	}
	if got := AverageSentenceLength(""); got != 0 {
		t.Errorf("AverageSentenceLength(\"\") = %.1f, want 0", got)
	}
}

func TestSentences(t *testing.T) {
	text := "First one. Second one! Trailing fragment"
	got := Sentences(text)
	want := []string{"First one.", "Second one!", "Trailing fragment"}

	if len(got) != len(want) {
		t.Fatalf("Sentences returned %d items, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95, "Very Easy"},
		{90, "Very Easy"},
		{75, "Easy"},
		{65, "Standard"},
		{60, "Standard"},
		{53.71, "Fairly Difficult"},
		{49.9, "Difficult"},
		{30, "Difficult"},
		{10, "Very Difficult"},
		{0, "Very Difficult"},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.expected {
			t.Errorf("LevelFor(%.2f) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}
