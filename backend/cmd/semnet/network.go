package main

import (
	"github.com/spf13/cobra"

	"semnet-explorer/backend/internal/services"
)

func newNetworkCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Print force-directed graph data for recent sentences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "similarity",
			Short: "Sentences linked by embedding cosine similarity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withService(cmd.Context(), func(svc *services.SentenceService) error {
					return printJSON(cmd.OutOrStdout(), svc.SimilarityNetwork(cmd.Context()))
				})
			},
		},
		&cobra.Command{
			Use:   "grammar",
			Short: "Sentences linked to their subject, verb, object and adjective words",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withService(cmd.Context(), func(svc *services.SentenceService) error {
					return printJSON(cmd.OutOrStdout(), svc.GrammarNetwork(cmd.Context()))
				})
			},
		},
	)

	return cmd
}
