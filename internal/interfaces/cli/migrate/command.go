package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/database"
	"warden/internal/infrastructure/migration"
	"warden/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back, or inspect the database schema migrations.`,
	}

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			return migration.Up(database.Get(), log)
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			return migration.Down(database.Get(), log)
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := initEnv(); err != nil {
				return err
			}
			defer database.Close()

			version, err := migration.Status(database.Get())
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			fmt.Printf("current migration version: %d\n", version)
			return nil
		},
	}
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return logger.NewLogger(), nil
}
