package report

import (
	"fmt"
	"io"

	"github.com/docvet/docvet/internal/analysis"
	"github.com/docvet/docvet/internal/ui"
)

// TerminalWriter renders a report as styled text for humans.
type TerminalWriter struct {
	w  io.Writer
	ui *ui.UI
}

// NewTerminalWriter creates a terminal report writer.
func NewTerminalWriter(w io.Writer, u *ui.UI) *TerminalWriter {
	return &TerminalWriter{w: w, ui: u}
}

// Write prints the report section by section, findings grouped per
// category, recommendations last.
func (t *TerminalWriter) Write(r *Report) error {
	s := t.ui.Styles

	fmt.Fprintln(t.w, s.Header.Render("Documentation quality report"))
	fmt.Fprintln(t.w, s.Subheader.Render(r.Source))

	if r.Error != "" {
		fmt.Fprintf(t.w, "\n%s %s\n", s.IconHigh, s.High.Render(r.Error))
		return nil
	}

	t.readability(r)
	t.structure(r)
	t.completeness(r)
	t.style(r)

	if len(r.OverallRecommendations) > 0 {
		fmt.Fprintln(t.w)
		fmt.Fprintln(t.w, s.Header.Render("Overall recommendations"))
		for _, rec := range r.OverallRecommendations {
			fmt.Fprintf(t.w, "  %s\n", rec)
		}
	}

	return nil
}

func (t *TerminalWriter) section(title string, findings []analysis.Finding) {
	s := t.ui.Styles
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, s.Header.Render(title))
	if len(findings) == 0 {
		fmt.Fprintf(t.w, "  %s %s\n", s.IconSuccess, s.Success.Render("no issues"))
	}
}

func (t *TerminalWriter) findings(findings []analysis.Finding) {
	s := t.ui.Styles
	for _, f := range findings {
		var style = s.Low
		icon := s.IconLow
		switch f.Severity {
		case analysis.High:
			style, icon = s.High, s.IconHigh
		case analysis.Medium:
			style, icon = s.Medium, s.IconMedium
		}
		fmt.Fprintf(t.w, "  %s %s %s\n", style.Render(icon), f.Message, s.Label.Render("["+f.Subkind+"]"))
	}
}

func (t *TerminalWriter) readability(r *Report) {
	a := r.Readability.Assessment
	t.section("Readability", r.Readability.Findings)
	fmt.Fprintf(t.w, "  Flesch reading ease:     %.1f (%s)\n", a.FleschReadingEase, a.ReadabilityLevel)
	fmt.Fprintf(t.w, "  Gunning fog index:       %.1f\n", a.GunningFogIndex)
	fmt.Fprintf(t.w, "  Average sentence length: %.1f words\n", a.AverageSentenceLength)
	fmt.Fprintf(t.w, "  Technical terms:         %d\n", a.TechnicalTermsCount)
	if r.Readability.Explanation != "" {
		fmt.Fprintf(t.w, "  %s\n", t.ui.Styles.Subheader.Render(r.Readability.Explanation))
	}
	t.findings(r.Readability.Findings)
}

func (t *TerminalWriter) structure(r *Report) {
	a := r.Structure.Assessment
	t.section("Structure", r.Structure.Findings)
	fmt.Fprintf(t.w, "  Headings: %d  Paragraphs: %d  Lists: %d  Code blocks: %d  Images: %d\n",
		a.HeadingsCount, a.ParagraphsCount, a.ListsCount, a.CodeBlocksCount, a.ImagesCount)
	fmt.Fprintf(t.w, "  Average paragraph length: %.0f words\n", a.AverageParagraphLength)
	t.findings(r.Structure.Findings)
}

func (t *TerminalWriter) completeness(r *Report) {
	a := r.Completeness.Assessment
	t.section("Completeness", r.Completeness.Findings)
	fmt.Fprintf(t.w, "  Code examples: %d  Images: %d  Example mentions: %d  Alerts: %d\n",
		a.CodeExamplesCount, a.ImagesCount, a.ExampleMentions, a.AlertsCount)
	fmt.Fprintf(t.w, "  Step-by-step instructions: %v\n", a.HasStepByStep)
	t.findings(r.Completeness.Findings)
}

func (t *TerminalWriter) style(r *Report) {
	a := r.StyleGuidelines.Assessment
	t.section("Style", r.StyleGuidelines.Findings)
	fmt.Fprintf(t.w, "  Passive voice: %.1f%%  First person: %d  Weak verbs: %d\n",
		a.VoiceTone.PassiveVoicePercentage, a.VoiceTone.FirstPersonCount, a.ActionOrientation.WeakVerbsCount)
	t.findings(r.StyleGuidelines.Findings)
}
