package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
)

// LeaderboardService computes rankings and profit series from the stored
// transactions. Nothing is cached; every call reads the current state.
type LeaderboardService struct {
	storage         *storage.Storage
	grandWinnerDate time.Time
	now             func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(store *storage.Storage, grandWinnerDate time.Time, now func() time.Time) *LeaderboardService {
	return &LeaderboardService{storage: store, grandWinnerDate: grandWinnerDate, now: utcClock(now)}
}

// Leaderboard ranks every app and every participant on all-time profit.
func (s *LeaderboardService) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	snap, err := loadSnapshot(ctx, s.storage.Reader)
	if err != nil {
		return nil, err
	}

	appRankings := profit.RankApps(snap.apps, profit.Names(snap.participants), nil)
	participantRankings := profit.RankParticipants(snap.participants, snap.apps, nil)

	return &Leaderboard{
		AppRankings:         appRankings,
		ParticipantRankings: participantRankings,
		GrandWinner:         profit.GrandWinner(s.now(), s.grandWinnerDate, appRankings, participantRankings),
	}, nil
}

// ProfitHistory returns the cumulative profit of one app per transaction day.
func (s *LeaderboardService) ProfitHistory(ctx context.Context, identity *access.Identity, appID uuid.UUID) ([]profit.HistoryPoint, error) {
	owningApp, err := s.storage.Apps.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireView(identity, owningApp.OwnerID); err != nil {
		return nil, err
	}

	transactions, err := s.appTransactions(ctx, appID, nil)
	if err != nil {
		return nil, err
	}
	return profit.ProfitHistory(transactions), nil
}

// AppProfit returns the profit of one app, optionally as of the cutoff date.
func (s *LeaderboardService) AppProfit(ctx context.Context, identity *access.Identity, appID uuid.UUID, cutoff *time.Time) (decimal.Decimal, error) {
	owningApp, err := s.storage.Apps.FindByID(ctx, appID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := access.RequireView(identity, owningApp.OwnerID); err != nil {
		return decimal.Zero, err
	}
	transactions, err := s.appTransactions(ctx, appID, cutoff)
	if err != nil {
		return decimal.Zero, err
	}
	return profit.AppProfit(transactions, cutoff), nil
}

func (s *LeaderboardService) appTransactions(ctx context.Context, appID uuid.UUID, cutoff *time.Time) ([]profit.Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{AppID: &appID, MaxDate: cutoff})
	if err != nil {
		return nil, err
	}
	result := make([]profit.Transaction, len(rows))
	for i, row := range rows {
		result[i] = row.Profit()
	}
	return result, nil
}
