package winner

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns every recorded winner, most recent month first.
func (r *Reader) List(ctx context.Context) ([]*MonthlyWinner, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("month")).Desc(),
		sm.OrderBy(psql.Quote("winner_type")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*MonthlyWinner]())
}
