package participant

import (
	"context"
	"strings"

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

func (w *Writer) Insert(ctx context.Context, create *ParticipantCreate) (*Participant, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	q := psql.Insert(
		im.Into(tableName, "id", "name", "email", "role", "password_hash"),
		im.Values(psql.Arg(
			id,
			strings.TrimSpace(create.Name),
			strings.ToLower(strings.TrimSpace(create.Email)),
			create.Role.String(),
			create.PasswordHash,
		)),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[participantRow]())
	if err != nil {
		return nil, err
	}
	return rowToParticipant(row)
}
