package main

import (
	"strings"

	"github.com/spf13/cobra"

	"semnet-explorer/backend/internal/analysis"
	"semnet-explorer/backend/internal/constants"
	"semnet-explorer/backend/internal/services"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <sentence>",
		Short: "Print the heuristic analysis of a sentence without storing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analysis.Analyze(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <sentence>",
		Short: "Analyze a sentence and store it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), func(svc *services.SentenceService) error {
				saved, err := svc.AddSentence(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}
}

func newRecentCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently stored sentences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), func(svc *services.SentenceService) error {
				return printJSON(cmd.OutOrStdout(), svc.Recent(cmd.Context(), limit))
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", constants.DefaultRecentLimit, "Number of sentences to list")
	return cmd
}
