package app

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
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

// FindByIDForUpdate reads the app and locks its row until the transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*App, error) {
	return findByID(ctx, w.tx, id, true)
}

func (w *Writer) Insert(ctx context.Context, create *AppCreate) (*App, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	q := psql.Insert(
		im.Into(tableName, "id", "owner_id", "name", "description", "url"),
		im.Values(psql.Arg(id, create.OwnerID, create.Name, create.Description, create.URL)),
		im.Returning(columns...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*App]())
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *AppUpdate) (*App, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(tableName),
	}
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
	}
	if !update.Description.IsUnset() {
		queryMods = append(queryMods, um.SetCol("description").ToArg(update.Description.MustPtr()))
	}
	if !update.URL.IsUnset() {
		queryMods = append(queryMods, um.SetCol("url").ToArg(update.URL.MustPtr()))
	}
	queryMods = append(queryMods,
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	return bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[*App]())
}

// Delete removes the app. Its transactions go with it through ON DELETE CASCADE.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("app %s not found", id)
	}
	return nil
}
