package winner

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "monthly_winners"

var columns = []any{"id", "month", "winner_type", "winner_id", "winner_name", "profit", "calculated_at"}

// Type distinguishes the two monthly awards.
type Type string

const (
	TypeApp         Type = "app"
	TypeParticipant Type = "participant"
)

// MonthlyWinner represents a monthly winner record.
type MonthlyWinner struct {
	ID           uuid.UUID       `db:"id"`
	Month        time.Time       `db:"month"`
	WinnerType   Type            `db:"winner_type"`
	WinnerID     uuid.UUID       `db:"winner_id"`
	WinnerName   string          `db:"winner_name"`
	Profit       decimal.Decimal `db:"profit"`
	CalculatedAt time.Time       `db:"calculated_at"`
}

// MonthlyWinnerUpsert is the input for recording a winner. An existing
// record for the same month and type is replaced.
type MonthlyWinnerUpsert struct {
	Month      time.Time
	WinnerType Type
	WinnerID   uuid.UUID
	WinnerName string
	Profit     decimal.Decimal
}

// IReader defines read access to monthly winners.
type IReader interface {
	List(ctx context.Context) ([]*MonthlyWinner, error)
}

// IWriter defines monthly winner writes.
type IWriter interface {
	IReader
	Upsert(ctx context.Context, upsert *MonthlyWinnerUpsert) (*MonthlyWinner, error)
}
