package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
)

const (
	tableName  = "transactions"
	dateLayout = "2006-01-02"
)

var columns = []any{"id", "app_id", "type", "amount", "description", "transaction_date", "created_at", "updated_at"}

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID
	AppID           uuid.UUID
	Type            profit.TransactionType
	Amount          decimal.Decimal
	Description     null.Val[string]
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Profit returns the part of the record the profit engine reduces.
func (t *Transaction) Profit() profit.Transaction {
	return profit.Transaction{Type: t.Type, Amount: t.Amount, Date: t.TransactionDate}
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AppID           uuid.UUID
	Type            profit.TransactionType
	Amount          decimal.Decimal
	Description     null.Val[string]
	TransactionDate time.Time
}

// TransactionUpdate holds the fields to change.
type TransactionUpdate struct {
	Type            omit.Val[profit.TransactionType]
	Amount          omit.Val[decimal.Decimal]
	Description     omitnull.Val[string]
	TransactionDate omit.Val[time.Time]
}

// IsEmpty reports whether the update changes nothing.
func (u *TransactionUpdate) IsEmpty() bool {
	return u.Type.IsUnset() && u.Amount.IsUnset() && u.Description.IsUnset() && u.TransactionDate.IsUnset()
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AppID   *uuid.UUID
	MaxDate *time.Time
	// NewestFirst orders by transaction date then creation time, descending.
	NewestFirst bool
}

// IReader defines read access to transactions.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// IWriter defines transaction writes made inside a database transaction.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactionRow struct {
	ID              uuid.UUID        `db:"id"`
	AppID           uuid.UUID        `db:"app_id"`
	Type            string           `db:"type"`
	Amount          decimal.Decimal  `db:"amount"`
	Description     null.Val[string] `db:"description"`
	TransactionDate time.Time        `db:"transaction_date"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`
}

func rowToTransaction(row transactionRow) (*Transaction, error) {
	txType, err := profit.ParseTransactionType(row.Type)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ID:              row.ID,
		AppID:           row.AppID,
		Type:            txType,
		Amount:          row.Amount,
		Description:     row.Description,
		TransactionDate: profit.Day(row.TransactionDate),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func rowsToTransactions(rows []transactionRow) ([]*Transaction, error) {
	result := make([]*Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}
