package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/finreport-qa/internal/bootstrap"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/querylist"
)

type runFlags struct {
	sourceDir string
	outputDir string
	queries   string
	mode      string
	scope     string
	strategy  string
	allow     []string
	xlsx      bool
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every report in the source directory",
		Long: `Process every .pdf and .txt report in the source directory, one at a
time. Unreadable reports are skipped and listed in the summary.

Flags override the matching environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyRunFlags(cmd, flags, opts)
			return runBatch(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.sourceDir, "source-dir", "", "directory with source reports (SOURCE_DIR)")
	f.StringVar(&flags.outputDir, "output-dir", "", "directory for generated reports (OUTPUT_DIR)")
	f.StringVar(&flags.queries, "queries", "", "YAML query list (QUERIES_FILE)")
	f.StringVar(&flags.mode, "mode", "", "rank mode: plain, substring-prefilter, document-filtered (RANK_MODE)")
	f.StringVar(&flags.scope, "scope", "", "batch scope: per-document, pooled (BATCH_SCOPE)")
	f.StringVar(&flags.strategy, "strategy", "", "financial strategy: label-value, line-scan (FINANCIAL_STRATEGY)")
	f.StringSliceVar(&flags.allow, "allow", nil, "documents eligible in document-filtered mode (ALLOWED_DOCUMENTS)")
	f.BoolVar(&flags.xlsx, "xlsx", false, "also write financials.xlsx (REPORT_XLSX_ENABLED)")
	return cmd
}

func applyRunFlags(cmd *cobra.Command, flags *runFlags, opts *rootOptions) {
	f := cmd.Flags()
	if f.Changed("source-dir") {
		opts.cfg.SourceDir = flags.sourceDir
	}
	if f.Changed("output-dir") {
		opts.cfg.OutputDir = flags.outputDir
	}
	if f.Changed("queries") {
		opts.cfg.QueriesFile = flags.queries
	}
	if f.Changed("mode") {
		opts.cfg.RankMode = flags.mode
	}
	if f.Changed("scope") {
		opts.cfg.BatchScope = flags.scope
	}
	if f.Changed("strategy") {
		opts.cfg.FinancialStrategy = flags.strategy
	}
	if f.Changed("allow") {
		opts.cfg.AllowedDocuments = flags.allow
	}
	if f.Changed("xlsx") {
		opts.cfg.ReportXLSXEnabled = flags.xlsx
	}
}

func runBatch(cmd *cobra.Command, opts *rootOptions) error {
	queries, err := querylist.Load(opts.cfg.QueriesFile)
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cmd.Context(), opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer app.Close()

	req, err := bootstrap.BatchRequest(opts.cfg, queries)
	if err != nil {
		return err
	}

	result, runErr := app.BatchUC.Run(cmd.Context(), req)
	if result != nil {
		out := cmd.OutOrStdout()
		renderSummary(out, result)
		renderPooledAnswers(out, result)
		fmt.Fprintf(out, "\n%d processed, %d skipped, reports in %s\n",
			len(result.Outcomes)-result.SkippedCount(), result.SkippedCount(), opts.cfg.OutputDir)
	}
	if err := app.Metrics.WriteTextfile(opts.cfg.MetricsTextfile); err != nil {
		opts.logger.Warn("metrics_textfile_failed", "error", err)
	}
	return runErr
}
