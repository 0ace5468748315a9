package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
)

var fixedNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// fakeProcessor records submitted actions instead of running them. respond,
// when set, fills in the action's result.
type fakeProcessor struct {
	processed []actions.IAction
	respond   func(actions.IAction)
	err       error
}

func (f *fakeProcessor) Process(_ context.Context, action actions.IAction) error {
	f.processed = append(f.processed, action)
	if f.err != nil {
		return f.err
	}
	if f.respond != nil {
		f.respond(action)
	}
	return nil
}

func newIdentity(role access.Role) *access.Identity {
	return &access.Identity{ID: uuid.Must(uuid.NewV4()), Name: "Ada", Role: role}
}

func newStoredApp(owner uuid.UUID, name string) *app.App {
	return &app.App{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   owner,
		Name:      name,
		URL:       null.From("https://example.com"),
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
}

func newStoredTransaction(appID uuid.UUID, t profit.TransactionType, amount string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		AppID:           appID,
		Type:            t,
		Amount:          decimal.RequireFromString(amount),
		TransactionDate: date,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}
}

func ptr[T any](v T) *T { return &v }
