package app

import (
	"context"
	"database/sql"
	"errors"

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

// List returns apps matching the filter, oldest first unless NewestFirst is set.
// Nil filter returns all apps.
func (r *Reader) List(ctx context.Context, filter *AppFilter) ([]*App, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	newestFirst := false
	if filter != nil {
		if filter.OwnerID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("owner_id").EQ(psql.Arg(*filter.OwnerID))))
		}
		newestFirst = filter.NewestFirst
	}
	if newestFirst {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("created_at")).Desc(),
			sm.OrderBy(psql.Quote("id")).Desc(),
		)
	} else {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("created_at")).Asc(),
			sm.OrderBy(psql.Quote("id")).Asc(),
		)
	}

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*App]())
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*App, error) {
	return findByID(ctx, r.exec, id, false)
}

func findByID(ctx context.Context, exec bob.Executor, id uuid.UUID, forUpdate bool) (*App, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, exec, psql.Select(queryMods...), scan.StructMapper[*App]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("app %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
