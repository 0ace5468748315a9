package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/winner"
)

type Reader struct {
	Participants participant.IReader
	Apps         app.IReader
	Transactions transaction.IReader
	ChangeLog    changelog.IReader
	Winners      winner.IReader
}

func NewReader(exec bob.Executor) Reader {
	return Reader{
		Participants: participant.NewReader(exec),
		Apps:         app.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		ChangeLog:    changelog.NewReader(exec),
		Winners:      winner.NewReader(exec),
	}
}
