package service

import (
	"context"
	"time"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/metrics"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

// Trigger names what started a winner calculation.
type Trigger string

const (
	TriggerHTTP     Trigger = "http"
	TriggerSchedule Trigger = "schedule"
	TriggerCLI      Trigger = "cli"
)

// WinnerService decides and stores monthly winners.
type WinnerService struct {
	storage        *storage.Storage
	processor      ActionProcessor
	challengeStart time.Time
	now            func() time.Time
}

// NewWinnerService creates a new WinnerService.
func NewWinnerService(store *storage.Storage, processor ActionProcessor, challengeStart time.Time, now func() time.Time) *WinnerService {
	return &WinnerService{storage: store, processor: processor, challengeStart: challengeStart, now: utcClock(now)}
}

// ListWinners returns every stored monthly winner, newest month first.
func (s *WinnerService) ListWinners(ctx context.Context) ([]MonthlyWinner, error) {
	rows, err := s.storage.Winners.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]MonthlyWinner, len(rows))
	for i, row := range rows {
		result[i] = winnerFromStorage(row)
	}
	return result, nil
}

// Preview computes the winners of the given months without storing them.
func (s *WinnerService) Preview(ctx context.Context, months []time.Time) ([]profit.Winners, error) {
	snap, err := loadSnapshot(ctx, s.storage.Reader)
	if err != nil {
		return nil, err
	}
	result := make([]profit.Winners, len(months))
	for i, m := range months {
		result[i] = profit.MonthlyWinners(m, snap.apps, snap.participants)
	}
	return result, nil
}

// DecidedMonths lists every month from the start of the challenge whose cutoff has passed.
func (s *WinnerService) DecidedMonths() []time.Time {
	return profit.MonthsToMaterialize(s.challengeStart, s.now())
}

// CalculateMonth decides and stores the winners of the month containing month.
// The month's cutoff day must have been reached.
func (s *WinnerService) CalculateMonth(ctx context.Context, month time.Time, trigger Trigger) (result []MonthlyWinner, err error) {
	defer func() { metrics.RecordWinnerCalculation(string(trigger), err) }()

	if profit.Cutoff(month).After(profit.Day(s.now())) {
		return nil, apperr.Validation("winners for %s are decided on the %dth", profit.MonthStart(month).Format("2006-01"), profit.CutoffDay)
	}
	return s.calculate(ctx, []time.Time{profit.MonthStart(month)})
}

// CalculateAll decides and stores the winners of every decided month in one
// database transaction.
func (s *WinnerService) CalculateAll(ctx context.Context, trigger Trigger) (result []MonthlyWinner, err error) {
	defer func() { metrics.RecordWinnerCalculation(string(trigger), err) }()

	months := s.DecidedMonths()
	if len(months) == 0 {
		return []MonthlyWinner{}, nil
	}
	return s.calculate(ctx, months)
}

func (s *WinnerService) calculate(ctx context.Context, months []time.Time) ([]MonthlyWinner, error) {
	winners, err := s.Preview(ctx, months)
	if err != nil {
		return nil, err
	}

	action := &actions.UpsertMonthlyWinners{Winners: winners}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	result := make([]MonthlyWinner, len(action.Result))
	for i, row := range action.Result {
		result[i] = winnerFromStorage(row)
	}
	return result, nil
}
