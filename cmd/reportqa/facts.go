package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kirillkom/finreport-qa/internal/bootstrap"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

func newFactsCmd(opts *rootOptions) *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "facts <file>",
		Short: "Print the fiscal year and headline financials of a single report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("strategy") {
				opts.cfg.FinancialStrategy = strategy
			}
			parsed, err := domain.ParseFinancialStrategy(opts.cfg.FinancialStrategy)
			if err != nil {
				return err
			}

			doc, text, err := loadDocument(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			analyzer := bootstrap.NewAnalyzer(opts.cfg, opts.logger)
			year, err := analyzer.ExtractYear(text)
			if err != nil && !errors.Is(err, domain.ErrNoYearFound) {
				return err
			}
			report := domain.DocumentReport{
				Document:   doc,
				Year:       year,
				Financials: analyzer.ExtractFinancials(text, parsed),
			}

			renderFacts(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "financial strategy: label-value, line-scan (FINANCIAL_STRATEGY)")
	return cmd
}
