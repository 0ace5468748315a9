package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
)

// snapshot is every participant, app and transaction, in fetch order.
type snapshot struct {
	participants []profit.Participant
	apps         []profit.App
}

// loadSnapshot fetches the three collections concurrently and joins
// transactions onto their apps. Apps come back oldest first, which is the
// order ranking ties resolve to.
func loadSnapshot(ctx context.Context, reader storage.Reader) (*snapshot, error) {
	var (
		participants []*participant.Participant
		apps         []*app.App
		transactions []*transaction.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = reader.Participants.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		apps, err = reader.Apps.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("list apps: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = reader.Transactions.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byApp := make(map[uuid.UUID][]profit.Transaction, len(apps))
	for _, t := range transactions {
		byApp[t.AppID] = append(byApp[t.AppID], t.Profit())
	}

	s := &snapshot{
		participants: make([]profit.Participant, 0, len(participants)),
		apps:         make([]profit.App, 0, len(apps)),
	}
	for _, p := range participants {
		s.participants = append(s.participants, profit.Participant{ID: p.ID, Name: p.Name, Role: p.Role})
	}
	for _, a := range apps {
		s.apps = append(s.apps, profit.App{
			ID:           a.ID,
			Name:         a.Name,
			OwnerID:      a.OwnerID,
			Transactions: byApp[a.ID],
		})
	}
	return s, nil
}
