package hook

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	original := "The configuration value might change over time and you can adjust it."

	tests := []struct {
		name     string
		improved string
		wantErr  bool
	}{
		{
			name:     "reasonable rewrite accepted",
			improved: "Adjust the configuration value when it changes.",
			wantErr:  false,
		},
		{
			name:     "empty output rejected",
			improved: "   ",
			wantErr:  true,
		},
		{
			name:     "too short rejected",
			improved: "Ok.",
			wantErr:  true,
		},
		{
			name:     "too long rejected",
			improved: strings.Repeat("padding words everywhere ", 20),
			wantErr:  true,
		},
		{
			name:     "meta commentary rejected",
			improved: "Here is the improved text: adjust the value as needed.",
			wantErr:  true,
		},
		{
			name:     "polite preamble rejected",
			improved: "Sure, adjust the configuration value whenever it changes.",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(original, tt.improved)
			if tt.wantErr && !errors.Is(err, ErrInvalidImprovement) {
				t.Errorf("expected ErrInvalidImprovement, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "quote wrapping stripped", in: `"Adjust the value."`, expected: "Adjust the value."},
		{name: "whitespace trimmed", in: "  Adjust the value.  ", expected: "Adjust the value."},
		{name: "inner quotes kept", in: `Set it to "auto" mode.`, expected: `Set it to "auto" mode.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}
