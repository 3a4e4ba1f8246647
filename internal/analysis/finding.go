package analysis

import (
	"fmt"
	"strings"
)

// Category groups findings by the analyzer that produced them. The
// declaration order is the tie-break order for overall recommendations.
type Category int

const (
	Readability Category = iota
	Completeness
	Structure
	Style
)

func (c Category) String() string {
	switch c {
	case Readability:
		return "readability"
	case Completeness:
		return "completeness"
	case Structure:
		return "structure"
	case Style:
		return "style"
	default:
		return "unknown"
	}
}

// Severity ranks how urgent a finding is.
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// FixKind names the reviser transform that can resolve a finding.
// It is a closed enum so an unhandled kind is a switch-visible bug,
// not a stringly-typed surprise.
type FixKind int

const (
	FixNone FixKind = iota
	FixContractions
	FixVerbosePhrases
	FixSpacing
	FixHeadingCase
	FixHeadingPunctuation
	FixOxfordComma
	FixJargonExpansion
	FixSplitParagraph
	// FixRewrite marks findings only an external rewrite can address.
	FixRewrite
)

func (f FixKind) String() string {
	switch f {
	case FixNone:
		return "none"
	case FixContractions:
		return "contractions"
	case FixVerbosePhrases:
		return "verbose_phrases"
	case FixSpacing:
		return "spacing"
	case FixHeadingCase:
		return "heading_case"
	case FixHeadingPunctuation:
		return "heading_punctuation"
	case FixOxfordComma:
		return "oxford_comma"
	case FixJargonExpansion:
		return "jargon_expansion"
	case FixSplitParagraph:
		return "split_paragraph"
	case FixRewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// Evidence points at the text a finding is about: a block index into
// the analyzed document, and optionally a span within that block.
type Evidence struct {
	Block int
	Start int
	End   int
}

// Finding is a single detected issue. Findings are value objects:
// created by one analyzer, never mutated afterwards.
type Finding struct {
	Category Category
	// Subkind is the rule tag, e.g. "missing_contractions".
	Subkind  string
	Severity Severity
	Message  string
	Evidence []Evidence
	Fix      FixKind
}

// Key is the deduplication identity: (category, subkind, evidence).
func (f Finding) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%s", f.Category, f.Subkind)
	for _, ev := range f.Evidence {
		fmt.Fprintf(&sb, "/%d:%d-%d", ev.Block, ev.Start, ev.End)
	}
	return sb.String()
}

// Dedupe drops findings whose key was already seen, preserving order.
func Dedupe(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	out := findings[:0:0]
	for _, f := range findings {
		k := f.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}

// MaxSeverity returns the highest severity present, and whether the
// slice was non-empty.
func MaxSeverity(findings []Finding) (Severity, bool) {
	if len(findings) == 0 {
		return Low, false
	}
	max := Low
	for _, f := range findings {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return max, true
}
