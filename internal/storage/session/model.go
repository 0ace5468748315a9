package session

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
)

const tableName = "sessions"

var columns = []any{"id", "participant_id", "created_at", "expires_at", "revoked_at"}

// Session represents a signed-in session. Its id is the token's jti.
type Session struct {
	ID            uuid.UUID           `db:"id"`
	ParticipantID uuid.UUID           `db:"participant_id"`
	CreatedAt     time.Time           `db:"created_at"`
	ExpiresAt     time.Time           `db:"expires_at"`
	RevokedAt     null.Val[time.Time] `db:"revoked_at"`
}

// Active reports whether the session may still authenticate requests at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt.IsNull() && now.Before(s.ExpiresAt)
}

// SessionCreate is the input for starting a session.
type SessionCreate struct {
	ParticipantID uuid.UUID
	ExpiresAt     time.Time
}

// ISessionTable defines session storage operations.
type ISessionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Insert(ctx context.Context, create *SessionCreate) (*Session, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}
