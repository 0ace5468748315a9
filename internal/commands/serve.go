package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warwickallen/allen-app-challenge-2026/api"
	"github.com/warwickallen/allen-app-challenge-2026/internal/auth"
	"github.com/warwickallen/allen-app-challenge-2026/internal/scheduler"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

func newServeCmd() *cobra.Command {
	var (
		migrateFirst bool
		port         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := bootstrap()
			if err != nil {
				return err
			}
			defer st.Close()
			if port != "" {
				st.config.HTTPPort = port
			}
			st.logger.Info("app-challenge starting")

			if migrateFirst {
				result, err := storage.Migrate(st.storage.DB)
				if err != nil {
					return fmt.Errorf("storage.Migrate: %w", err)
				}
				st.logger.WithField("version", result.PostMigrationVersion).Info("serve.migrated")
			}

			authenticator, err := auth.NewAuthenticator(st.storage.Participants, st.storage.Sessions, st.config.JWTSecret, st.config.SessionTTL)
			if err != nil {
				return err
			}

			if st.config.WinnerSchedule != "" {
				sched, err := scheduler.NewScheduler(st.config.WinnerSchedule, st.service.Winner, st.logger)
				if err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()
				st.logger.WithField("next", sched.Next()).Info("serve.winner schedule")
			}

			rest := api.Rest{
				Logger:        st.logger,
				Config:        st.config,
				Service:       st.service,
				Authenticator: authenticator,
				DB:            st.storage,
			}
			return rest.Serve(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending database migrations before serving")
	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides HTTP_PORT")
	return cmd
}
