package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirillkom/finreport-qa/internal/config"
	"github.com/kirillkom/finreport-qa/internal/observability/logging"
)

type rootOptions struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var logLevel string

	cmd := &cobra.Command{
		Use:   "reportqa",
		Short: "Answer questions over annual reports and extract headline financials",
		Long: `reportqa reads annual reports (.pdf, .txt), answers a fixed list of
questions with TF-IDF sentence retrieval, and extracts revenue, profit and
expenses into financials.csv.

Example usage:
  reportqa run --source-dir ./reports --output-dir ./out
  reportqa run --mode document-filtered --allow Wipro,TCS
  reportqa ask ./reports/Wipro.pdf "What was the key revenue driver?"
  reportqa facts ./reports/TCS.pdf --strategy line-scan`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.cfg = config.Load()
			if cmd.Flags().Changed("log-level") {
				opts.cfg.LogLevel = logLevel
			}
			opts.logger = logging.NewJSONLoggerTo(os.Stderr, "reportqa", opts.cfg.LogLevel)
			slog.SetDefault(opts.logger)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd(opts), newAskCmd(opts), newFactsCmd(opts))
	return cmd
}
