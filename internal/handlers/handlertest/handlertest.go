// Package handlertest builds humatest APIs for handler tests.
package handlertest

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
)

// Registrar is implemented by every handler.
type Registrar interface {
	Register(api huma.API)
}

// New returns a test API with the handlers registered. A non-nil identity is
// attached to every request as if it had signed in.
func New(t *testing.T, identity *access.Identity, handlers ...Registrar) humatest.TestAPI {
	t.Helper()
	httperr.UseBadRequestForValidation()
	_, api := humatest.New(t)
	if identity != nil {
		api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			next(huma.WithContext(ctx, access.WithIdentity(ctx.Context(), identity)))
		})
	}
	for _, h := range handlers {
		h.Register(api)
	}
	return api
}

// Participant returns a participant identity with a fresh id.
func Participant(name string) *access.Identity {
	return &access.Identity{ID: uuid.Must(uuid.NewV4()), Name: name, Email: name + "@example.com", Role: access.RoleParticipant}
}

// Admin returns an administrator identity with a fresh id.
func Admin(name string) *access.Identity {
	id := Participant(name)
	id.Role = access.RoleAdmin
	return id
}
