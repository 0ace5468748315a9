package transaction

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

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return findByID(ctx, r.exec, id, false)
}

// List returns transactions matching the filter. Without NewestFirst the
// result is in creation order, which is the order rankings rely on for ties.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	newestFirst := false
	if filter != nil {
		if filter.AppID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("app_id").EQ(psql.Arg(*filter.AppID))))
		}
		if filter.MaxDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(filter.MaxDate.Format(dateLayout)))))
		}
		newestFirst = filter.NewestFirst
	}
	if newestFirst {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("transaction_date")).Desc(),
			sm.OrderBy(psql.Quote("created_at")).Desc(),
			sm.OrderBy(psql.Quote("id")).Desc(),
		)
	} else {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("created_at")).Asc(),
			sm.OrderBy(psql.Quote("id")).Asc(),
		)
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	return rowsToTransactions(rows)
}

func findByID(ctx context.Context, exec bob.Executor, id uuid.UUID, forUpdate bool) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("transaction %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row)
}
