package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-user-order-service/config"
	mongoinfra "github.com/oksasatya/go-user-order-service/internal/infrastructure/mongodb"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back MongoDB migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.MongoURI, "uri", cfg.MongoURI, "MongoDB connection string")
	root.PersistentFlags().StringVar(&cfg.MongoDatabase, "database", cfg.MongoDatabase, "database name")
	root.PersistentFlags().StringVar(&cfg.MigrationsDir, "dir", cfg.MigrationsDir, "directory holding the migration files")

	root.AddCommand(upCmd(cfg), downCmd(cfg), versionCmd(cfg))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withMigrator connects, builds the migrator and disconnects after fn.
func withMigrator(cfg *config.Config, fn func(m *migrate.Migrate) error) error {
	ctx := context.Background()
	client, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoMaxPoolSize, cfg.MongoConnectTimeout)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	m, err := mongoinfra.NewMigrator(client, cfg.MongoDatabase, cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	return fn(m)
}

func upCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "up [n]",
		Short: "Apply all or n pending migrations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cfg, func(m *migrate.Migrate) error {
				var err error
				if len(args) == 1 {
					n, perr := strconv.Atoi(args[0])
					if perr != nil || n <= 0 {
						return fmt.Errorf("n must be a positive integer")
					}
					err = m.Steps(n)
				} else {
					err = m.Up()
				}
				return report(cmd, err)
			})
		},
	}
}

func downCmd(cfg *config.Config) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration, or every migration with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cfg, func(m *migrate.Migrate) error {
				if all {
					return report(cmd, m.Down())
				}
				return report(cmd, m.Steps(-1))
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "roll back every migration")
	return cmd
}

func versionCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cfg, func(m *migrate.Migrate) error {
				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("no migrations applied")
					return nil
				}
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty=%t)\n", v, dirty)
				return nil
			})
		},
	}
}

func report(cmd *cobra.Command, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		cmd.Println("no change")
		return nil
	}
	if err != nil {
		return err
	}
	cmd.Println("done")
	return nil
}
