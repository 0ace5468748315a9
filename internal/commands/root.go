// Package commands is the command-line entry point: the HTTP server plus the
// operator commands for migrations, winners and participants.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warwickallen/allen-app-challenge-2026/internal/config"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

type winnerService interface {
	ListWinners(ctx context.Context) ([]service.MonthlyWinner, error)
	Preview(ctx context.Context, months []time.Time) ([]profit.Winners, error)
	DecidedMonths() []time.Time
	CalculateMonth(ctx context.Context, month time.Time, trigger service.Trigger) ([]service.MonthlyWinner, error)
	CalculateAll(ctx context.Context, trigger service.Trigger) ([]service.MonthlyWinner, error)
}

type participantCreator interface {
	CreateParticipant(ctx context.Context, input service.ParticipantInput) (*service.Participant, error)
}

// runtime is what the operator commands need from a running stack.
type runtime struct {
	winners      winnerService
	participants participantCreator
	close        func()
}

type runtimeOpener func() (*runtime, error)

// stack is the fully wired application shared by serve and the operator commands.
type stack struct {
	config   *config.Config
	logger   *logrus.Logger
	storage  *storage.Storage
	operator *operator.OperatorDelegator
	service  *service.Service
}

func bootstrap() (*stack, error) {
	cfg, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
	}
	logger := logging.SetupLogging(cfg.LogLevel)

	store, err := storage.NewStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage.NewStorage: %w", err)
	}

	op := operator.NewOperatorDelegator(store, cfg.OperatorWorkers, logger)
	op.Start()

	svc := service.NewService(store, op, service.Options{
		ChallengeStart:  cfg.ChallengeStart,
		GrandWinnerDate: cfg.GrandWinnerDate,
	})

	return &stack{config: cfg, logger: logger, storage: store, operator: op, service: svc}, nil
}

// Close stops the write workers, then the connection pool.
func (s *stack) Close() {
	s.operator.Stop()
	if err := s.storage.Close(); err != nil {
		s.logger.WithError(err).Warn("storage.Close")
	}
}

func openRuntime() (*runtime, error) {
	st, err := bootstrap()
	if err != nil {
		return nil, err
	}
	return &runtime{
		winners:      st.service.Winner,
		participants: st.service.Participant,
		close:        st.Close,
	}, nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(openRuntime)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(open runtimeOpener) *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:           "app-challenge",
		Short:         "App challenge leaderboard server",
		Long:          "Runs the app challenge API. Without a subcommand it serves HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(
		serveCmd,
		newMigrateCmd(),
		newWinnersCmd(open),
		newParticipantCmd(open),
	)
	return rootCmd
}
