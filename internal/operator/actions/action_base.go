package actions

import (
	"context"

	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

// IAction is one unit of write work. Perform runs inside a single database
// transaction; returning an error rolls back everything it wrote.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}
