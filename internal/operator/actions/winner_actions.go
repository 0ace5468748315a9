package actions

import (
	"context"
	"fmt"

	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/winner"
)

// UpsertMonthlyWinners records the winners of one or more months. A month
// without a positive leader keeps whatever was stored for it before.
type UpsertMonthlyWinners struct {
	Winners []profit.Winners

	Result []*winner.MonthlyWinner
}

func (u *UpsertMonthlyWinners) Name() string { return "upsert_monthly_winners" }

func (u *UpsertMonthlyWinners) Perform(ctx context.Context, writer *storage.Writer) error {
	var stored []*winner.MonthlyWinner
	for _, w := range u.Winners {
		if w.App != nil {
			row, err := writer.Winners.Upsert(ctx, &winner.MonthlyWinnerUpsert{
				Month:      w.Month,
				WinnerType: winner.TypeApp,
				WinnerID:   w.App.AppID,
				WinnerName: w.App.AppName,
				Profit:     w.App.Profit,
			})
			if err != nil {
				return fmt.Errorf("upsert app winner for %s: %w", w.Month.Format("2006-01"), err)
			}
			stored = append(stored, row)
		}
		if w.Participant != nil {
			row, err := writer.Winners.Upsert(ctx, &winner.MonthlyWinnerUpsert{
				Month:      w.Month,
				WinnerType: winner.TypeParticipant,
				WinnerID:   w.Participant.ParticipantID,
				WinnerName: w.Participant.ParticipantName,
				Profit:     w.Participant.Profit,
			})
			if err != nil {
				return fmt.Errorf("upsert participant winner for %s: %w", w.Month.Format("2006-01"), err)
			}
			stored = append(stored, row)
		}
	}
	u.Result = stored
	return nil
}
