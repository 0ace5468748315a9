package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warwickallen/allen-app-challenge-2026/internal/config"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ProcessEnvironmentVariables()
			if err != nil {
				return fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
			}
			logger := logging.SetupLogging(cfg.LogLevel)

			store, err := storage.NewStorage(cfg)
			if err != nil {
				return fmt.Errorf("storage.NewStorage: %w", err)
			}
			defer store.Close()

			result, err := storage.Migrate(store.DB)
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"preMigrationVersion":  result.PreMigrationVersion,
				"postMigrationVersion": result.PostMigrationVersion,
			}).Info("Migration status")
			return nil
		},
	}
}
