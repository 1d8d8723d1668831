package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tosteiner/thoth/internal/db"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}
	cmd.AddCommand(newDBCheckCmd(a))
	return cmd
}

func newDBCheckCmd(a *app) *cobra.Command {
	var (
		test    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the database connection string and connectivity",
		Long: `Read DATABASE_URL (or TEST_DATABASE_URL with --test), open a
connection pool and ping the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := db.FromEnv(a.getenv, test)
			if err != nil {
				return err
			}
			cfg.MaxConns = a.cfg.Database.MaxConns

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := db.Open(ctx, cfg, a.logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			s := pool.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d/%d connections)\n", cfg.Key, s.TotalConns, s.MaxConns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&test, "test", false, "use TEST_DATABASE_URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "connection timeout")
	return cmd
}
