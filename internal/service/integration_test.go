//go:build integration

package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/auth"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func startPostgres(t *testing.T) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("challenge"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = storage.Migrate(db)
	require.NoError(t, err)
	return storage.FromDB(db)
}

func identityOf(p *service.Participant) *access.Identity {
	return &access.Identity{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}

func TestIntegration_ChallengeLifecycle(t *testing.T) {
	ctx := context.Background()
	store := startPostgres(t)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	op := operator.NewOperatorDelegator(store, 2, logger)
	op.Start()
	t.Cleanup(op.Stop)

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc := service.NewService(store, op, service.Options{
		ChallengeStart:  day(2026, time.January, 9),
		GrandWinnerDate: day(2027, time.January, 10),
		Now:             func() time.Time { return now },
	})

	ada, err := svc.Participant.CreateParticipant(ctx, service.ParticipantInput{Name: "Ada", Email: "Ada@Example.com", Role: access.RoleParticipant, Password: "analytical"})
	require.NoError(t, err)
	grace, err := svc.Participant.CreateParticipant(ctx, service.ParticipantInput{Name: "Grace", Email: "grace@example.com", Role: access.RoleParticipant, Password: "compilers"})
	require.NoError(t, err)
	root, err := svc.Participant.CreateParticipant(ctx, service.ParticipantInput{Name: "Root", Email: "root@example.com", Role: access.RoleAdmin, Password: "superuser"})
	require.NoError(t, err)

	_, err = svc.Participant.CreateParticipant(ctx, service.ParticipantInput{Name: "Ada Again", Email: "ada@example.com", Password: "duplicate"})
	assert.Error(t, err, "emails are unique regardless of case")

	alpha, err := svc.App.CreateApp(ctx, identityOf(ada), service.AppInput{Name: "Alpha"})
	require.NoError(t, err)
	gamma, err := svc.App.CreateApp(ctx, identityOf(grace), service.AppInput{Name: "Gamma"})
	require.NoError(t, err)

	add := func(owner *service.Participant, target *service.App, kind string, amount string, date time.Time) *service.Transaction {
		t.Helper()
		tx, err := svc.Transaction.CreateTransaction(ctx, identityOf(owner), target.ID, service.TransactionInput{
			Type:            kind,
			Amount:          decimal.RequireFromString(amount),
			TransactionDate: &date,
		})
		require.NoError(t, err)
		return tx
	}
	add(ada, alpha, "revenue", "100.00", day(2026, time.February, 5))
	late := add(ada, alpha, "revenue", "500.00", day(2026, time.February, 11))
	add(grace, gamma, "revenue", "120.00", day(2026, time.February, 9))
	add(grace, gamma, "expense", "10.50", day(2026, time.February, 9))

	_, err = svc.Transaction.CreateTransaction(ctx, identityOf(grace), alpha.ID, service.TransactionInput{Type: "revenue", Amount: decimal.NewFromInt(1)})
	assert.Error(t, err, "only the owner or an admin may add transactions")

	board, err := svc.Leaderboard.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board.AppRankings, 2)
	assert.Equal(t, "Alpha", board.AppRankings[0].AppName)
	assert.True(t, decimal.RequireFromString("600").Equal(board.AppRankings[0].Profit))
	assert.Nil(t, board.GrandWinner)

	history, err := svc.Leaderboard.ProfitHistory(ctx, identityOf(ada), alpha.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, decimal.RequireFromString("600").Equal(history[1].CumulativeProfit))

	winners, err := svc.Winner.CalculateMonth(ctx, day(2026, time.February, 1), service.TriggerCLI)
	require.NoError(t, err)
	require.Len(t, winners, 2)
	for _, w := range winners {
		switch w.WinnerType {
		case "app":
			assert.Equal(t, "Gamma", w.WinnerName, "the late Alpha revenue is after the cutoff")
			assert.True(t, decimal.RequireFromString("109.50").Equal(w.Profit))
		case "participant":
			assert.Equal(t, "Grace", w.WinnerName)
		}
	}

	_, err = svc.Winner.CalculateMonth(ctx, day(2026, time.March, 1), service.TriggerCLI)
	require.NoError(t, err)
	_, err = svc.Winner.CalculateMonth(ctx, day(2026, time.April, 1), service.TriggerCLI)
	assert.Error(t, err, "April is not decided yet")

	all, err := svc.Winner.CalculateAll(ctx, service.TriggerCLI)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	require.NoError(t, svc.Transaction.DeleteTransaction(ctx, identityOf(root), late.ID))

	changes, next, err := svc.ChangeLog.ListChanges(ctx, &alpha.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, changes, 4)
	assert.Equal(t, "delete_transaction", changes[0].Action)
	assert.Equal(t, "Root", changes[0].ActorName)
	assert.Equal(t, "create_app", changes[3].Action)

	require.NoError(t, svc.App.DeleteApp(ctx, identityOf(ada), alpha.ID))
	_, err = svc.App.GetApp(ctx, identityOf(ada), alpha.ID)
	assert.Error(t, err)

	authenticator, err := auth.NewAuthenticator(store.Participants, store.Sessions, "integration-secret", time.Hour)
	require.NoError(t, err)
	signedIn, err := authenticator.SignIn(ctx, "ADA@example.com", "analytical")
	require.NoError(t, err)
	identity, err := authenticator.ResolveToken(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, identity.ID)

	require.NoError(t, authenticator.SignOut(ctx, signedIn.Token))
	_, err = authenticator.ResolveToken(ctx, signedIn.Token)
	assert.Error(t, err)
}
