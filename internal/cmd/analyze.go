package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docvet/docvet/internal/analysis"
	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/fetch"
	"github.com/docvet/docvet/internal/report"
	"github.com/docvet/docvet/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url-or-file>...",
	Short: "Analyze documentation quality",
	Long: `Fetch one or more documentation pages and score them for
readability, structure, completeness, and style.

Examples:
  docvet analyze https://learn.example.com/docs/getting-started
  docvet analyze README.md
  docvet analyze --format json page.html > report.json`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := loadTables(); err != nil {
		return err
	}

	u := GetUI()
	reports := make([]*report.Report, 0, len(args))
	var failed int

	for _, source := range args {
		rep := analyzeOne(cmd.Context(), u, source)
		if rep.Error != "" {
			failed++
		}
		reports = append(reports, rep)
	}

	if err := writeReports(u, reports); err != nil {
		return err
	}
	if failed == len(args) {
		return fmt.Errorf("all %d sources failed", failed)
	}
	return nil
}

// analyzeOne runs the full pipeline for a single source. Failures are
// folded into the report so one bad page never aborts a batch.
func analyzeOne(ctx context.Context, u *ui.UI, source string) *report.Report {
	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	doc, err := loadDocument(ctx, progress, source)
	if err != nil {
		return errorReport(source, err)
	}

	if progress != nil {
		progress.SetStage(ui.StageAnalyze)
		progress.SetStepCount(analyzerSteps)
	}
	rep, err := report.Build(doc, report.WithProgress(progress.StepStart, progress.StepDone))
	if err != nil {
		return errorReport(source, err)
	}
	return rep
}

// analyzerSteps sizes the progress bar: one step per analyzer.
const analyzerSteps = 4

// loadDocument fetches or reads a source and extracts its blocks.
func loadDocument(ctx context.Context, progress *ui.ProgressController, source string) (*extract.Document, error) {
	if progress != nil {
		progress.SetStage(ui.StageFetch)
		progress.SetOperation(source)
	}

	var content []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err := fetch.New(cfg.FetchTimeout).Get(ctx, source)
		if err != nil {
			return nil, err
		}
		content = body
	} else {
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		content = body
	}

	if progress != nil {
		progress.SetStage(ui.StageExtract)
	}
	return extract.ForSource(source, content).Extract(source, content)
}

func errorReport(source string, err error) *report.Report {
	logger.Warn("analysis failed", "source", source, "err", err)
	rep := report.Errored(source, err)
	return rep
}

func writeReports(u *ui.UI, reports []*report.Report) error {
	if u.IsJSON() {
		if len(reports) == 1 {
			return report.WriteJSON(os.Stdout, reports[0])
		}
		return report.WriteJSONList(os.Stdout, reports)
	}

	tw := report.NewTerminalWriter(os.Stdout, u)
	for _, rep := range reports {
		if err := tw.Write(rep); err != nil {
			return err
		}
	}
	return nil
}

// loadTables applies the optional phrase-table override once per run.
func loadTables() error {
	if cfg == nil || cfg.Tables == "" {
		return nil
	}
	if err := analysis.LoadTables(cfg.Tables); err != nil {
		return fmt.Errorf("loading tables %s: %w", cfg.Tables, err)
	}
	return nil
}
