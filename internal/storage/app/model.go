package app

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
)

const tableName = "apps"

var columns = []any{"id", "owner_id", "name", "description", "url", "created_at", "updated_at"}

// App represents an app record.
type App struct {
	ID          uuid.UUID        `db:"id"`
	OwnerID     uuid.UUID        `db:"owner_id"`
	Name        string           `db:"name"`
	Description null.Val[string] `db:"description"`
	URL         null.Val[string] `db:"url"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}

// AppCreate is the input for creating a new app.
type AppCreate struct {
	OwnerID     uuid.UUID
	Name        string
	Description null.Val[string]
	URL         null.Val[string]
}

// AppUpdate holds the fields to change. Unset fields are left alone; a null
// description or URL clears the column.
type AppUpdate struct {
	Name        omit.Val[string]
	Description omitnull.Val[string]
	URL         omitnull.Val[string]
}

// IsEmpty reports whether the update changes nothing.
func (u *AppUpdate) IsEmpty() bool {
	return u.Name.IsUnset() && u.Description.IsUnset() && u.URL.IsUnset()
}

// AppFilter specifies filters for listing apps.
type AppFilter struct {
	OwnerID     *uuid.UUID
	NewestFirst bool
}

// IReader defines read access to apps.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*App, error)
	List(ctx context.Context, filter *AppFilter) ([]*App, error)
}

// IWriter defines app writes made inside a transaction.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*App, error)
	Insert(ctx context.Context, create *AppCreate) (*App, error)
	Update(ctx context.Context, id uuid.UUID, update *AppUpdate) (*App, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
