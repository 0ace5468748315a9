package winner

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx:     tx,
		Reader: Reader{exec: tx},
	}
}

// Upsert inserts the winner or replaces the one already stored for the
// same (month, winner_type).
func (w *Writer) Upsert(ctx context.Context, upsert *MonthlyWinnerUpsert) (*MonthlyWinner, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	q := psql.Insert(
		im.Into(tableName, "id", "month", "winner_type", "winner_id", "winner_name", "profit"),
		im.Values(psql.Arg(
			id,
			upsert.Month.Format("2006-01-02"),
			string(upsert.WinnerType),
			upsert.WinnerID,
			upsert.WinnerName,
			upsert.Profit,
		)),
		im.OnConflict("month", "winner_type").DoUpdate(
			im.SetExcluded("winner_id", "winner_name", "profit"),
			im.SetCol("calculated_at").To(psql.Raw("now()")),
		),
		im.Returning(columns...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*MonthlyWinner]())
}
