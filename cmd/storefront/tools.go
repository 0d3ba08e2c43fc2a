package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo products into an empty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			store, err := repos.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			deps := handlers.NewDeps(store.Backend, nil)
			n, err := services.SeedCatalog(cmd.Context(), deps.Catalog)
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", n)
			return nil
		},
	}
}

func newHashKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <key>",
		Short: "Print the bcrypt hash to use as ADMIN_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := handlers.HashAdminKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
