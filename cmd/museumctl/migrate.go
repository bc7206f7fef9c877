package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/BinhiHeritage_Go/internal/config"
	"github.com/osse101/BinhiHeritage_Go/internal/database"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					return m.Up(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					return m.Down(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					statuses, err := m.Status(ctx)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "VERSION\tAPPLIED\tAT\tFILE")
					for _, s := range statuses {
						at := "-"
						if s.Applied {
							at = s.AppliedAt.Format(time.RFC3339)
						}
						fmt.Fprintf(tw, "%d\t%t\t%s\t%s\n", s.Version, s.Applied, at, s.Path)
					}
					return tw.Flush()
				})
			},
		},
	)
	return cmd
}

// withMigrator connects with the same DB_* variables the server reads
func withMigrator(parent context.Context, fn func(context.Context, *database.Migrator) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, migrateTimeout)
	defer cancel()

	cfg := &config.Config{
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBName:     envOr("DB_NAME", config.DefaultDBName),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolSettings{MaxConns: 2, AppName: "museumctl"})
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := database.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(ctx, m)
}
