package changelog

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

func (w *Writer) Insert(ctx context.Context, create *EntryCreate) (*Entry, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	before, err := encodeSnapshot(create.Before)
	if err != nil {
		return nil, err
	}
	after, err := encodeSnapshot(create.After)
	if err != nil {
		return nil, err
	}

	q := psql.Insert(
		im.Into(tableName, "id", "actor_id", "actor_name", "action", "entity_type", "entity_id", "app_id", "before", "after"),
		im.Values(psql.Arg(
			id,
			create.ActorID,
			create.ActorName,
			string(create.Action),
			string(create.EntityType),
			create.EntityID,
			create.AppID,
			before,
			after,
		)),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[entryRow]())
	if err != nil {
		return nil, err
	}
	return rowToEntry(row)
}
