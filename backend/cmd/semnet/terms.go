package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"semnet-explorer/backend/internal/graph"
)

func newTermsCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "List the words shared by the most sentences (neo4j only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeStore, err := opts.openRepository(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			usages, err := repo.TopTerms(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), usages)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of terms to list")
	return cmd
}

// openRepository opens the configured store and requires it to be the Neo4j graph
func (o *options) openRepository(cmd *cobra.Command) (*graph.Repository, func(), error) {
	store, cfg, err := o.openStore(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	repo, ok := store.(*graph.Repository)
	if !ok {
		store.Close()
		return nil, nil, fmt.Errorf("%s requires the neo4j store, got %s", cmd.Name(), cfg.StoreBackend)
	}
	return repo, func() { repo.Close() }, nil
}
