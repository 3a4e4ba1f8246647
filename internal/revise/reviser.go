package revise

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/docvet/docvet/internal/analysis"
	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/hook"
)

// longParagraphWords mirrors the structure analyzer's split threshold.
const longParagraphWords = 150

// State tracks a Reviser through its one-shot lifecycle.
type State int

const (
	Pending State = iota
	Applying
	Done
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Applying:
		return "applying"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// ErrNotPending is returned when Revise is called on a spent Reviser.
var ErrNotPending = errors.New("reviser already ran; create a new one per document")

// Result reports what a revision pass accomplished.
type Result struct {
	// Document is the revised copy; the input document is untouched.
	Document *extract.Document
	// Applied holds the findings whose fixes were made.
	Applied []analysis.Finding
	// Unresolved holds fixable findings that could not be applied,
	// including hook-only fixes when no hook is configured.
	Unresolved []analysis.Finding
	// Stats counts applied fixes per finding subkind.
	Stats map[string]int
	// HookErrors counts rewrite-hook calls that failed or were
	// rejected; recoveries are observable, never silent.
	HookErrors int
}

// Reviser applies fixable findings to one document.
type Reviser struct {
	rewriter hook.Rewriter
	state    State
	logger   *log.Logger
}

// Option configures a Reviser.
type Option func(*Reviser)

// WithRewriter attaches the optional external rewrite hook.
func WithRewriter(rw hook.Rewriter) Option {
	return func(r *Reviser) { r.rewriter = rw }
}

// WithLogger overrides the default logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Reviser) { r.logger = l }
}

// New creates a Reviser in the Pending state.
func New(opts ...Option) *Reviser {
	r := &Reviser{state: Pending, logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the reviser's lifecycle state.
func (r *Reviser) State() State {
	return r.state
}

// Revise applies every fixable finding to a copy of doc in a fixed
// deterministic order: span-local style fixes, heading fixes, hook
// rewrites, then structural paragraph splits (splits change block
// boundaries, so they go last). Completeness findings are never
// applied. A finding whose fix fails validation lands in Unresolved
// with its text untouched.
func (r *Reviser) Revise(ctx context.Context, doc *extract.Document, findings []analysis.Finding) (*Result, error) {
	if r.state != Pending {
		return nil, ErrNotPending
	}
	r.state = Applying
	defer func() { r.state = Done }()

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Document: doc.Clone(),
		Stats:    make(map[string]int),
	}

	spanFixes, headingFixes, hookFixes, splitFixes := partition(findings, result)

	r.applySpanFixes(result, spanFixes)
	r.applyHeadingFixes(result, headingFixes)
	r.applyHookFixes(ctx, result, hookFixes)
	r.applySplitFixes(result, splitFixes)

	return result, nil
}

// partition buckets fixable findings by transform class. Completeness
// findings never reach a bucket: content gaps need new content, not
// text edits.
func partition(findings []analysis.Finding, result *Result) (span, heading, hookFixes, split []analysis.Finding) {
	for _, f := range findings {
		if f.Fix == analysis.FixNone {
			continue
		}
		if f.Category == analysis.Completeness {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}

		switch f.Fix {
		case analysis.FixContractions, analysis.FixVerbosePhrases, analysis.FixSpacing,
			analysis.FixOxfordComma, analysis.FixJargonExpansion:
			span = append(span, f)
		case analysis.FixHeadingCase, analysis.FixHeadingPunctuation:
			heading = append(heading, f)
		case analysis.FixRewrite:
			hookFixes = append(hookFixes, f)
		case analysis.FixSplitParagraph:
			split = append(split, f)
		default:
			result.Unresolved = append(result.Unresolved, f)
		}
	}
	return span, heading, hookFixes, split
}

// applySpanFixes edits span-local findings block by block in ascending
// span order, tracking the length delta earlier edits introduce so
// later spans stay aligned.
func (r *Reviser) applySpanFixes(result *Result, findings []analysis.Finding) {
	byBlock := make(map[int][]analysis.Finding)
	var blocks []int
	for _, f := range findings {
		if len(f.Evidence) != 1 {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}
		b := f.Evidence[0].Block
		if _, seen := byBlock[b]; !seen {
			blocks = append(blocks, b)
		}
		byBlock[b] = append(byBlock[b], f)
	}
	sort.Ints(blocks)

	for _, bi := range blocks {
		group := byBlock[bi]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Evidence[0].Start < group[j].Evidence[0].Start
		})

		delta := 0
		for _, f := range group {
			if !r.validBlock(result.Document, bi, f) {
				result.Unresolved = append(result.Unresolved, f)
				continue
			}

			block := &result.Document.Blocks[bi]
			start := f.Evidence[0].Start + delta
			end := f.Evidence[0].End + delta
			if start < 0 || end > len(block.Text) || start >= end {
				result.Unresolved = append(result.Unresolved, f)
				continue
			}

			segment := block.Text[start:end]
			replacement, ok := replacementFor(f.Fix, segment)
			if !ok {
				result.Unresolved = append(result.Unresolved, f)
				continue
			}

			// A removed phrase takes one neighboring space with it,
			// so no double gap is left behind.
			if replacement == "" {
				switch {
				case end < len(block.Text) && block.Text[end] == ' ':
					end++
				case start > 0 && block.Text[start-1] == ' ':
					start--
				}
			}

			block.Text = block.Text[:start] + replacement + block.Text[end:]
			delta += len(replacement) - (end - start)
			r.markApplied(result, f)
		}
	}
}

// replacementFor validates the evidence segment against its rule table
// and runs the rule's transform on it, so the fix that lands in a block
// is the same transform the rule tests cover. A stale span that no
// longer matches its rule is rejected instead of corrupting the block.
func replacementFor(fix analysis.FixKind, segment string) (string, bool) {
	lower := strings.ToLower(segment)
	switch fix {
	case analysis.FixContractions:
		for _, c := range analysis.Contractions {
			if lower == c.From {
				return Contract(segment), true
			}
		}
	case analysis.FixVerbosePhrases:
		for _, v := range analysis.VerbosePhrases {
			if lower == v.From {
				return Simplify(segment), true
			}
		}
	case analysis.FixSpacing:
		if spaceRunRe.MatchString(segment) && strings.TrimLeft(segment, " ") == "" {
			return NormalizeSpacing(segment), true
		}
	case analysis.FixOxfordComma:
		if oxfordRe.MatchString(segment) {
			return AddOxfordCommas(segment), true
		}
	case analysis.FixJargonExpansion:
		for _, g := range analysis.Glossary {
			if lower == g.From {
				return ExpandJargon(segment), true
			}
		}
	}
	return "", false
}

func (r *Reviser) applyHeadingFixes(result *Result, findings []analysis.Finding) {
	for _, f := range findings {
		if len(f.Evidence) != 1 {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}
		bi := f.Evidence[0].Block
		if bi < 0 || bi >= len(result.Document.Blocks) ||
			result.Document.Blocks[bi].Kind != extract.KindHeading {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}

		block := &result.Document.Blocks[bi]
		switch f.Fix {
		case analysis.FixHeadingCase:
			block.Text = HeadingSentenceCase(block.Text)
		case analysis.FixHeadingPunctuation:
			block.Text = StripHeadingPunctuation(block.Text)
		}
		r.markApplied(result, f)
	}
}

// hookInstructions maps hook-only subkinds to the rewrite instruction
// sent with the text.
var hookInstructions = map[string]string{
	"weak_constructions": "Rewrite weak constructions such as \"you can\" and modal hedges into direct, action-oriented sentences.",
	"complex_sentence":   "Break overly long sentences into shorter ones without losing meaning.",
}

// applyHookFixes delegates hook-only findings to the external
// rewriter, one call per affected block. Every failure is recovered:
// the block keeps its text and the findings stay unresolved.
func (r *Reviser) applyHookFixes(ctx context.Context, result *Result, findings []analysis.Finding) {
	if r.rewriter == nil {
		result.Unresolved = append(result.Unresolved, findings...)
		return
	}

	type key struct {
		block   int
		subkind string
	}
	groups := make(map[key][]analysis.Finding)
	var order []key
	for _, f := range findings {
		if len(f.Evidence) == 0 {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}
		k := key{f.Evidence[0].Block, f.Subkind}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].block != order[j].block {
			return order[i].block < order[j].block
		}
		return order[i].subkind < order[j].subkind
	})

	for _, k := range order {
		group := groups[k]
		if !r.validBlock(result.Document, k.block, group[0]) {
			result.Unresolved = append(result.Unresolved, group...)
			continue
		}

		block := &result.Document.Blocks[k.block]
		instruction := hookInstructions[k.subkind]
		if instruction == "" {
			instruction = "Improve the clarity and directness of this text."
		}

		improved, err := r.rewriter.Improve(ctx, block.Text, instruction)
		if err != nil {
			// A single failed call never aborts the revision.
			r.logger.Debug("rewrite hook failed", "block", k.block, "subkind", k.subkind, "err", err)
			result.HookErrors++
			result.Unresolved = append(result.Unresolved, group...)
			continue
		}

		block.Text = improved
		for _, f := range group {
			r.markApplied(result, f)
		}
	}
}

// applySplitFixes splits oversized paragraphs last, in descending
// block order so earlier evidence indexes stay valid while blocks are
// spliced in.
func (r *Reviser) applySplitFixes(result *Result, findings []analysis.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return blockIndex(findings[i]) > blockIndex(findings[j])
	})

	for _, f := range findings {
		bi := blockIndex(f)
		if bi < 0 || bi >= len(result.Document.Blocks) ||
			result.Document.Blocks[bi].Kind != extract.KindParagraph {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}

		chunks := SplitParagraph(result.Document.Blocks[bi].Text, longParagraphWords)
		if len(chunks) < 2 {
			result.Unresolved = append(result.Unresolved, f)
			continue
		}

		replacement := make([]extract.Block, len(chunks))
		for i, c := range chunks {
			replacement[i] = extract.Block{Kind: extract.KindParagraph, Text: c, Offset: result.Document.Blocks[bi].Offset}
		}

		blocks := result.Document.Blocks
		result.Document.Blocks = append(blocks[:bi:bi], append(replacement, blocks[bi+1:]...)...)
		r.markApplied(result, f)
	}
}

// validBlock checks that evidence points inside the document and never
// at a code block.
func (r *Reviser) validBlock(doc *extract.Document, bi int, f analysis.Finding) bool {
	if bi < 0 || bi >= len(doc.Blocks) {
		return false
	}
	kind := doc.Blocks[bi].Kind
	if kind == extract.KindCode || kind == extract.KindImage {
		return false
	}
	// Prose fixes must not land on headings; heading fixes are
	// dispatched separately.
	if f.Fix != analysis.FixHeadingCase && f.Fix != analysis.FixHeadingPunctuation && kind == extract.KindHeading {
		return false
	}
	return true
}

func (r *Reviser) markApplied(result *Result, f analysis.Finding) {
	result.Applied = append(result.Applied, f)
	result.Stats[f.Subkind]++
}

func blockIndex(f analysis.Finding) int {
	if len(f.Evidence) == 0 {
		return -1
	}
	return f.Evidence[0].Block
}

// Summary is the JSON shape of a revision run.
type Summary struct {
	Source             string         `json:"url"`
	SuggestionsApplied []string       `json:"suggestions_applied"`
	AppliedCounts      map[string]int `json:"applied_counts"`
	UnresolvedCount    int            `json:"unresolved_count"`
	HookErrors         int            `json:"hook_errors,omitempty"`
}

// Summarize flattens a Result for reporting.
func Summarize(source string, result *Result) Summary {
	applied := make([]string, 0, len(result.Stats))
	seen := make(map[string]bool)
	for _, f := range result.Applied {
		if seen[f.Subkind] {
			continue
		}
		seen[f.Subkind] = true
		applied = append(applied, fmt.Sprintf("Applied %s fixes (%d)", strings.ReplaceAll(f.Subkind, "_", " "), result.Stats[f.Subkind]))
	}
	return Summary{
		Source:             source,
		SuggestionsApplied: applied,
		AppliedCounts:      result.Stats,
		UnresolvedCount:    len(result.Unresolved),
		HookErrors:         result.HookErrors,
	}
}
