package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/docvet/docvet/internal/config"
	"github.com/docvet/docvet/internal/ui"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string
	tablesPath string

	cfg      *config.Config
	globalUI *ui.UI
	logger   = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
)

var RootCmd = &cobra.Command{
	Use:   "docvet",
	Short: "Documentation quality analyzer and reviser",
	Long: `docvet analyzes documentation pages for readability, structure,
completeness, and style, then reports findings or applies safe
mechanical fixes.

It fetches a page (or reads a local file), extracts the content
blocks, scores them against writing guidelines, and can rewrite the
fixable problems in place.`,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return RootCmd.Execute()
}

// setup loads configuration and wires logging before any subcommand
// runs. Flags set explicitly on the command line win over the file
// and environment.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("format") || cfg.Format == "" {
		cfg.Format = format
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("tables") {
		cfg.Tables = tablesPath
	}

	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	globalUI = ui.New(os.Stdout, os.Stderr, cfg.Format)
	return nil
}

// GetUI returns the UI configured for the current output mode.
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default docvet.yaml)")
	RootCmd.PersistentFlags().StringVar(&tablesPath, "tables", "", "YAML file overriding the built-in phrase tables")
}
