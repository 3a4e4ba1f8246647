// Package hook is the optional external rewrite collaborator. The
// engine never depends on it for correctness: a nil Rewriter degrades
// to rule-based revision only.
package hook

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Rewriter improves a piece of text according to an instruction. The
// call may fail; callers must fall back to the original text.
type Rewriter interface {
	Improve(ctx context.Context, text, instruction string) (string, error)
}

// ErrInvalidImprovement marks a returned text that failed validation.
var ErrInvalidImprovement = errors.New("rewrite output rejected")

// Length bounds on accepted rewrites relative to the original.
const (
	maxGrowth = 3.0
	minShrink = 0.3
)

// metaMarkers are response prefixes that indicate meta-commentary
// instead of the rewritten text itself.
var metaMarkers = []string{
	"here is",
	"here's",
	"improved:",
	"improved paragraph:",
	"revised:",
	"revised version:",
	"sure,",
	"certainly",
}

// Validate checks a rewrite before the engine accepts it. It rejects
// empty output, output whose length deviates beyond the bounds, and
// output that opens with meta-commentary.
func Validate(original, improved string) error {
	improved = strings.TrimSpace(improved)
	if improved == "" {
		return fmt.Errorf("%w: empty output", ErrInvalidImprovement)
	}

	ratio := float64(len(improved)) / float64(len(original))
	if ratio > maxGrowth || ratio < minShrink {
		return fmt.Errorf("%w: length ratio %.2f outside [%.1f, %.1f]", ErrInvalidImprovement, ratio, minShrink, maxGrowth)
	}

	lower := strings.ToLower(improved)
	for _, marker := range metaMarkers {
		if strings.HasPrefix(lower, marker) {
			return fmt.Errorf("%w: meta-commentary marker %q", ErrInvalidImprovement, marker)
		}
	}

	return nil
}

// Clean strips quote wrapping from a rewrite.
func Clean(improved string) string {
	improved = strings.TrimSpace(improved)
	if len(improved) >= 2 && strings.HasPrefix(improved, `"`) && strings.HasSuffix(improved, `"`) {
		improved = strings.TrimSpace(improved[1 : len(improved)-1])
	}
	return improved
}
