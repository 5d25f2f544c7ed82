package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/finreport-qa/internal/bootstrap"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "ask <file> <query>",
		Short: "Answer one query against a single report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("mode") {
				opts.cfg.RankMode = mode
			}
			rankMode, err := domain.ParseRankMode(opts.cfg.RankMode)
			if err != nil {
				return err
			}

			doc, text, err := loadDocument(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			analyzer := bootstrap.NewAnalyzer(opts.cfg, opts.logger)
			sentences := analyzer.Segment(text)
			rankOpts := domain.RankOptions{Mode: rankMode}
			if rankMode == domain.RankModeDocumentFiltered {
				rankOpts.DocumentIDs = make([]string, len(sentences))
				for i := range rankOpts.DocumentIDs {
					rankOpts.DocumentIDs[i] = doc.ID
				}
				rankOpts.AllowedDocuments = opts.cfg.AllowedDocuments
			}

			answer, err := analyzer.Rank(args[1], sentences, rankOpts)
			if err != nil && !errors.Is(err, domain.ErrEmptyCorpus) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Company: %s\nQuery: %s\nAnswer: %s\n", doc.CompanyName, args[1], answer.Answer)
			if answer.Matched() {
				fmt.Fprintf(out, "Score: %.4f (sentence %d of %d)\n", answer.Score, answer.Index+1, len(sentences))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "rank mode: plain, substring-prefilter, document-filtered (RANK_MODE)")
	return cmd
}
