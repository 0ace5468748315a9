package service

import (
	"context"
	"time"

	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

// ActionProcessor runs a write action in its own database transaction.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options carries the challenge calendar and the clock.
type Options struct {
	ChallengeStart  time.Time
	GrandWinnerDate time.Time
	// Now defaults to time.Now. Services read it in UTC.
	Now func() time.Time
}

// Service holds all business logic services.
type Service struct {
	App         *AppService
	Transaction *TransactionService
	Leaderboard *LeaderboardService
	Winner      *WinnerService
	ChangeLog   *ChangeLogService
	Participant *ParticipantService
}

// NewService creates a new Service with the given storage and write pipeline.
func NewService(store *storage.Storage, processor ActionProcessor, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		App:         NewAppService(store, processor),
		Transaction: NewTransactionService(store, processor, opts.Now),
		Leaderboard: NewLeaderboardService(store, opts.GrandWinnerDate, opts.Now),
		Winner:      NewWinnerService(store, processor, opts.ChallengeStart, opts.Now),
		ChangeLog:   NewChangeLogService(store),
		Participant: NewParticipantService(store, processor),
	}
}

// utcClock reads now in UTC so calendar days do not depend on the host zone.
func utcClock(now func() time.Time) func() time.Time {
	if now == nil {
		now = time.Now
	}
	return func() time.Time { return now().UTC() }
}
