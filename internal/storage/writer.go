package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/winner"
)

// Committer ends the database transaction behind a Writer.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the table writers of one database transaction.
type Writer struct {
	Tx           Committer
	Participants participant.IWriter
	Apps         app.IWriter
	Transactions transaction.IWriter
	ChangeLog    changelog.IWriter
	Winners      winner.IWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Tx:           &bobTx{tx: tx},
		Participants: participant.NewWriter(tx),
		Apps:         app.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		ChangeLog:    changelog.NewWriter(tx),
		Winners:      winner.NewWriter(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.Tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.Tx.Rollback(ctx)
}

type bobTx struct {
	tx bob.Tx
}

func (b *bobTx) Commit(ctx context.Context) error {
	return b.tx.Commit(ctx)
}

func (b *bobTx) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}
