package participant

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Participant, error) {
	return r.findOne(ctx, id.String(), sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByEmail matches the email case-insensitively.
func (r *Reader) FindByEmail(ctx context.Context, email string) (*Participant, error) {
	normalised := strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, normalised, sm.Where(psql.Raw("lower(email)").EQ(psql.Arg(normalised))))
}

func (r *Reader) findOne(ctx context.Context, key string, where bob.Mod[*dialect.SelectQuery]) (*Participant, error) {
	q := psql.Select(sm.Columns(columns...), sm.From(tableName), where)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[participantRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("participant %s not found", key)
	}
	if err != nil {
		return nil, err
	}
	return rowToParticipant(row)
}

// List returns participants ordered by name. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *ParticipantFilter) ([]*Participant, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.Role != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("role").EQ(psql.Arg(filter.Role.String()))))
		}
		if filter.IDs != nil {
			if len(filter.IDs) == 0 {
				return nil, nil
			}
			ids := make([]bob.Expression, len(filter.IDs))
			for i, id := range filter.IDs {
				ids[i] = psql.Arg(id)
			}
			queryMods = append(queryMods, sm.Where(psql.Quote("id").In(ids...)))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[participantRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Participant, 0, len(rows))
	for _, row := range rows {
		p, err := rowToParticipant(row)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}
