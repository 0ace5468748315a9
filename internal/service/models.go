package service

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/winner"
)

// App represents an app in the service layer.
type App struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	OwnerName   string
	Name        string
	Description *string
	URL         *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppInput is a new app as submitted.
type AppInput struct {
	Name        string
	Description *string
	URL         *string
}

// AppPatch carries only the submitted fields of an app edit. A null
// description or URL clears it.
type AppPatch struct {
	Name        omit.Val[string]
	Description omitnull.Val[string]
	URL         omitnull.Val[string]
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	AppID           uuid.UUID
	Type            profit.TransactionType
	Amount          decimal.Decimal
	Description     *string
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionInput is a new transaction as submitted. A nil date means today.
type TransactionInput struct {
	Type            string
	Amount          decimal.Decimal
	Description     *string
	TransactionDate *time.Time
}

// TransactionPatch carries only the submitted fields of a transaction edit.
type TransactionPatch struct {
	Type            omit.Val[string]
	Amount          omit.Val[decimal.Decimal]
	Description     omitnull.Val[string]
	TransactionDate omit.Val[time.Time]
}

// Leaderboard is the current standing without a cutoff.
type Leaderboard struct {
	AppRankings         []profit.AppRanking
	ParticipantRankings []profit.ParticipantRanking
	GrandWinner         *profit.GrandWinnerResult
}

// ChangeEntry is one audit record.
type ChangeEntry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	ActorName  string
	Action     string
	EntityType string
	EntityID   uuid.UUID
	AppID      uuid.UUID
	Before     map[string]any
	After      map[string]any
	CreatedAt  time.Time
}

// ChangeCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type ChangeCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// MonthlyWinner is a stored monthly award.
type MonthlyWinner struct {
	Month        time.Time
	WinnerType   string
	WinnerID     uuid.UUID
	WinnerName   string
	Profit       decimal.Decimal
	CalculatedAt time.Time
}

// Participant is a participant without credentials.
type Participant struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      access.Role
	CreatedAt time.Time
}

func optionalString(v null.Val[string]) *string {
	if s, ok := v.Get(); ok {
		return &s
	}
	return nil
}

func appFromStorage(row *app.App, ownerName string) App {
	return App{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		OwnerName:   ownerName,
		Name:        row.Name,
		Description: optionalString(row.Description),
		URL:         optionalString(row.URL),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		AppID:           row.AppID,
		Type:            row.Type,
		Amount:          row.Amount,
		Description:     optionalString(row.Description),
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func changeEntryFromStorage(row *changelog.Entry) ChangeEntry {
	return ChangeEntry{
		ID:         row.ID,
		ActorID:    row.ActorID,
		ActorName:  row.ActorName,
		Action:     string(row.Action),
		EntityType: string(row.EntityType),
		EntityID:   row.EntityID,
		AppID:      row.AppID,
		Before:     row.Before,
		After:      row.After,
		CreatedAt:  row.CreatedAt,
	}
}

func winnerFromStorage(row *winner.MonthlyWinner) MonthlyWinner {
	return MonthlyWinner{
		Month:        profit.Day(row.Month),
		WinnerType:   string(row.WinnerType),
		WinnerID:     row.WinnerID,
		WinnerName:   row.WinnerName,
		Profit:       row.Profit,
		CalculatedAt: row.CalculatedAt,
	}
}

func participantFromStorage(row *participant.Participant) Participant {
	return Participant{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}
}
