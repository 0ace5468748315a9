// Package storagemock provides testify mocks of the storage table interfaces.
package storagemock

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/session"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/winner"
)

var (
	_ participant.IWriter   = (*Participants)(nil)
	_ app.IWriter           = (*Apps)(nil)
	_ transaction.IWriter   = (*Transactions)(nil)
	_ changelog.IWriter     = (*ChangeLog)(nil)
	_ winner.IWriter        = (*Winners)(nil)
	_ session.ISessionTable = (*Sessions)(nil)
	_ storage.Committer     = (*Tx)(nil)
)

// Mocks bundles one mock per table.
type Mocks struct {
	Participants *Participants
	Apps         *Apps
	Transactions *Transactions
	ChangeLog    *ChangeLog
	Winners      *Winners
	Sessions     *Sessions
	Tx           *Tx
}

// New returns mocks whose expectations are asserted when the test ends.
func New(t interface {
	mock.TestingT
	Cleanup(func())
}) *Mocks {
	m := &Mocks{
		Participants: &Participants{},
		Apps:         &Apps{},
		Transactions: &Transactions{},
		ChangeLog:    &ChangeLog{},
		Winners:      &Winners{},
		Sessions:     &Sessions{},
		Tx:           &Tx{},
	}
	for _, mk := range []*mock.Mock{
		&m.Participants.Mock, &m.Apps.Mock, &m.Transactions.Mock, &m.ChangeLog.Mock,
		&m.Winners.Mock, &m.Sessions.Mock, &m.Tx.Mock,
	} {
		mk.Test(t)
		t.Cleanup(func() { mk.AssertExpectations(t) })
	}
	return m
}

// Storage returns a Storage whose readers are the mocks.
func (m *Mocks) Storage() *storage.Storage {
	return &storage.Storage{
		Reader: storage.Reader{
			Participants: m.Participants,
			Apps:         m.Apps,
			Transactions: m.Transactions,
			ChangeLog:    m.ChangeLog,
			Winners:      m.Winners,
		},
		Sessions: m.Sessions,
	}
}

// Writer returns a Writer whose tables and transaction are the mocks.
func (m *Mocks) Writer() *storage.Writer {
	return &storage.Writer{
		Tx:           m.Tx,
		Participants: m.Participants,
		Apps:         m.Apps,
		Transactions: m.Transactions,
		ChangeLog:    m.ChangeLog,
		Winners:      m.Winners,
	}
}

func ret[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

type Participants struct{ mock.Mock }

func (m *Participants) FindByID(ctx context.Context, id uuid.UUID) (*participant.Participant, error) {
	args := m.Called(ctx, id)
	return ret[*participant.Participant](args, 0), args.Error(1)
}

func (m *Participants) FindByEmail(ctx context.Context, email string) (*participant.Participant, error) {
	args := m.Called(ctx, email)
	return ret[*participant.Participant](args, 0), args.Error(1)
}

func (m *Participants) List(ctx context.Context, filter *participant.ParticipantFilter) ([]*participant.Participant, error) {
	args := m.Called(ctx, filter)
	return ret[[]*participant.Participant](args, 0), args.Error(1)
}

func (m *Participants) Insert(ctx context.Context, create *participant.ParticipantCreate) (*participant.Participant, error) {
	args := m.Called(ctx, create)
	return ret[*participant.Participant](args, 0), args.Error(1)
}

type Apps struct{ mock.Mock }

func (m *Apps) FindByID(ctx context.Context, id uuid.UUID) (*app.App, error) {
	args := m.Called(ctx, id)
	return ret[*app.App](args, 0), args.Error(1)
}

func (m *Apps) List(ctx context.Context, filter *app.AppFilter) ([]*app.App, error) {
	args := m.Called(ctx, filter)
	return ret[[]*app.App](args, 0), args.Error(1)
}

func (m *Apps) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*app.App, error) {
	args := m.Called(ctx, id)
	return ret[*app.App](args, 0), args.Error(1)
}

func (m *Apps) Insert(ctx context.Context, create *app.AppCreate) (*app.App, error) {
	args := m.Called(ctx, create)
	return ret[*app.App](args, 0), args.Error(1)
}

func (m *Apps) Update(ctx context.Context, id uuid.UUID, update *app.AppUpdate) (*app.App, error) {
	args := m.Called(ctx, id, update)
	return ret[*app.App](args, 0), args.Error(1)
}

func (m *Apps) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type Transactions struct{ mock.Mock }

func (m *Transactions) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	return ret[*transaction.Transaction](args, 0), args.Error(1)
}

func (m *Transactions) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	return ret[[]*transaction.Transaction](args, 0), args.Error(1)
}

func (m *Transactions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	return ret[*transaction.Transaction](args, 0), args.Error(1)
}

func (m *Transactions) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	return ret[*transaction.Transaction](args, 0), args.Error(1)
}

func (m *Transactions) Update(ctx context.Context, id uuid.UUID, update *transaction.TransactionUpdate) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, update)
	return ret[*transaction.Transaction](args, 0), args.Error(1)
}

func (m *Transactions) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type ChangeLog struct{ mock.Mock }

func (m *ChangeLog) List(ctx context.Context, filter *changelog.EntryFilter) ([]*changelog.Entry, error) {
	args := m.Called(ctx, filter)
	return ret[[]*changelog.Entry](args, 0), args.Error(1)
}

func (m *ChangeLog) Insert(ctx context.Context, create *changelog.EntryCreate) (*changelog.Entry, error) {
	args := m.Called(ctx, create)
	return ret[*changelog.Entry](args, 0), args.Error(1)
}

type Winners struct{ mock.Mock }

func (m *Winners) List(ctx context.Context) ([]*winner.MonthlyWinner, error) {
	args := m.Called(ctx)
	return ret[[]*winner.MonthlyWinner](args, 0), args.Error(1)
}

func (m *Winners) Upsert(ctx context.Context, upsert *winner.MonthlyWinnerUpsert) (*winner.MonthlyWinner, error) {
	args := m.Called(ctx, upsert)
	return ret[*winner.MonthlyWinner](args, 0), args.Error(1)
}

type Sessions struct{ mock.Mock }

func (m *Sessions) FindByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	args := m.Called(ctx, id)
	return ret[*session.Session](args, 0), args.Error(1)
}

func (m *Sessions) Insert(ctx context.Context, create *session.SessionCreate) (*session.Session, error) {
	args := m.Called(ctx, create)
	return ret[*session.Session](args, 0), args.Error(1)
}

func (m *Sessions) Revoke(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type Tx struct{ mock.Mock }

func (m *Tx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Tx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
