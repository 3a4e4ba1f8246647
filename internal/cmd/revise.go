package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/hook"
	"github.com/docvet/docvet/internal/report"
	"github.com/docvet/docvet/internal/revise"
	"github.com/docvet/docvet/internal/ui"
)

var (
	outputPath string
	noHook     bool
	dryRun     bool
)

var reviseCmd = &cobra.Command{
	Use:   "revise <url-or-file>",
	Short: "Apply safe fixes to a documentation page",
	Long: `Analyze a page and apply the mechanical fixes: contractions,
verbose phrases, spacing, Oxford commas, heading case and punctuation,
jargon expansion, and paragraph splitting. With an ANTHROPIC_API_KEY
set, weak constructions and overlong sentences are rewritten through
the AI hook as well.

The revised document is written as markdown to --output, or stdout.

Examples:
  docvet revise guide.md -o guide.revised.md
  docvet revise --no-hook https://learn.example.com/docs/setup`,
	Args:         cobra.ExactArgs(1),
	RunE:         runRevise,
	SilenceUsage: true,
}

func init() {
	reviseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the revised markdown to this file")
	reviseCmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip the AI rewrite hook even when configured")
	reviseCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the fixes that would apply without writing anything")
	RootCmd.AddCommand(reviseCmd)
}

func runRevise(cmd *cobra.Command, args []string) error {
	if err := loadTables(); err != nil {
		return err
	}
	source := args[0]

	u := GetUI()
	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	doc, err := loadDocument(cmd.Context(), progress, source)
	if err != nil {
		return err
	}

	if progress != nil {
		progress.SetStage(ui.StageAnalyze)
		progress.SetStepCount(analyzerSteps)
	}
	rep, err := report.Build(doc, report.WithProgress(progress.StepStart, progress.StepDone))
	if err != nil {
		return err
	}

	if progress != nil {
		progress.SetStage(ui.StageRevise)
	}

	opts := []revise.Option{revise.WithLogger(logger)}
	if !dryRun {
		if rw := newRewriter(); rw != nil {
			opts = append(opts, revise.WithRewriter(rw))
		}
	}

	result, err := revise.New(opts...).Revise(cmd.Context(), doc, rep.Findings())
	if err != nil {
		return err
	}

	if progress != nil {
		progress.Done(nil)
		progress = nil
	}

	summary := revise.Summarize(source, result)
	if dryRun {
		if u.IsJSON() {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		writeSummary(u, summary)
		return nil
	}

	revised := extract.RenderMarkdown(result.Document)
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(revised), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
	}

	if u.IsJSON() {
		out := struct {
			revise.Summary
			Revised string `json:"revised,omitempty"`
		}{Summary: summary}
		if outputPath == "" {
			out.Revised = revised
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if outputPath == "" {
		fmt.Print(revised)
		fmt.Println()
	}
	writeSummary(u, summary)
	return nil
}

// newRewriter builds the AI hook when configured and reachable;
// revision proceeds without it otherwise.
func newRewriter() hook.Rewriter {
	if noHook || !cfg.Hook.Enabled {
		return nil
	}
	rw := hook.NewAnthropicRewriter(cfg.Hook.Model, cfg.Hook.Timeout)
	if rw == nil {
		logger.Debug("rewrite hook unavailable", "reason", "ANTHROPIC_API_KEY not set")
		return nil
	}
	return rw
}

func writeSummary(u *ui.UI, s revise.Summary) {
	fmt.Fprintln(os.Stderr, u.Styles.Header.Render("Revision summary"))
	for _, line := range s.SuggestionsApplied {
		fmt.Fprintf(os.Stderr, "  %s %s\n", u.Styles.IconSuccess, line)
	}
	if len(s.SuggestionsApplied) == 0 {
		fmt.Fprintln(os.Stderr, "  Nothing to fix.")
	}
	if s.UnresolvedCount > 0 {
		fmt.Fprintf(os.Stderr, "  %s %d findings need manual attention\n", u.Styles.IconMedium, s.UnresolvedCount)
	}
	if s.HookErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %s %d rewrite hook calls failed\n", u.Styles.IconHigh, s.HookErrors)
	}
}
