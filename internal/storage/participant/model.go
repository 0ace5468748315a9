package participant

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
)

const tableName = "participants"

var columns = []any{"id", "name", "email", "role", "password_hash", "created_at", "updated_at"}

// Participant represents a participant record.
type Participant struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         access.Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the access-control view of the participant.
func (p *Participant) Identity() *access.Identity {
	return &access.Identity{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}

// ParticipantCreate is the input for creating a participant.
type ParticipantCreate struct {
	Name         string
	Email        string
	Role         access.Role
	PasswordHash string
}

// ParticipantFilter specifies filters for listing participants.
type ParticipantFilter struct {
	Role *access.Role
	IDs  []uuid.UUID
}

// IReader defines read access to participants.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Participant, error)
	FindByEmail(ctx context.Context, email string) (*Participant, error)
	List(ctx context.Context, filter *ParticipantFilter) ([]*Participant, error)
}

// IWriter defines participant writes made inside a transaction.
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *ParticipantCreate) (*Participant, error)
}

type participantRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func rowToParticipant(row participantRow) (*Participant, error) {
	role, err := access.ParseRole(row.Role)
	if err != nil {
		return nil, err
	}
	return &Participant{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Role:         role,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
