package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
)

// Table provides access to the sessions table. Session writes are single
// statements and do not go through the operator queue.
type Table struct {
	exec bob.Executor
}

var _ ISessionTable = (*Table)(nil)

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Session]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("session %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (t *Table) Insert(ctx context.Context, create *SessionCreate) (*Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	q := psql.Insert(
		im.Into(tableName, "id", "participant_id", "expires_at"),
		im.Values(psql.Arg(id, create.ParticipantID, create.ExpiresAt)),
		im.Returning(columns...),
	)
	return bob.One(ctx, t.exec, q, scan.StructMapper[*Session]())
}

// Revoke marks the session revoked. Revoking twice keeps the first timestamp.
func (t *Table) Revoke(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("revoked_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("revoked_at").IsNull()),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
