package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

const passwordEnv = "PARTICIPANT_PASSWORD"

func newParticipantCmd(open runtimeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage participants",
	}
	cmd.AddCommand(newParticipantCreateCmd(open))
	return cmd
}

func newParticipantCreateCmd(open runtimeOpener) *cobra.Command {
	var (
		name     string
		email    string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a participant account",
		Long:  "Creates a participant. The password may be passed with --password or the " + passwordEnv + " environment variable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedRole, err := access.ParseRole(role)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv(passwordEnv)
			}

			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.close()

			created, err := rt.participants.CreateParticipant(cmd.Context(), service.ParticipantInput{
				Name:     name,
				Email:    email,
				Role:     parsedRole,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s <%s> %s\n", created.Role, created.Name, created.Email, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "sign-in email")
	cmd.Flags().StringVar(&role, "role", "participant", "participant or admin")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
