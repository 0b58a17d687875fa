package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRelatedCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "related <sentence-id>",
		Short: "List sentences sharing words with a stored sentence (neo4j only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sentence id %q: %w", args[0], err)
			}

			repo, closeStore, err := opts.openRepository(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			related, err := repo.RelatedSentences(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), related)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of sentences to list")
	return cmd
}
