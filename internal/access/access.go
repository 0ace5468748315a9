// Package access resolves the caller of a request into an Identity and
// decides what that identity may do.
package access

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
)

// Role is the closed set of participant roles.
type Role int8

const (
	RoleParticipant Role = iota
	RoleAdmin
)

// ParseRole converts the stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "participant":
		return RoleParticipant, nil
	case "admin":
		return RoleAdmin, nil
	}
	return RoleParticipant, fmt.Errorf("unknown role %q", s)
}

// String returns the stored role name.
func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "participant"
}

// IsAdmin reports whether the role carries the administrator override.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Identity is the participant behind the current request.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

type identityKey struct{}

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// ResolveIdentity returns the identity of the current request, if any.
func ResolveIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	return identity, ok && identity != nil
}

// RequireIdentity returns the current identity or an Unauthenticated error.
func RequireIdentity(ctx context.Context) (*Identity, error) {
	identity, ok := ResolveIdentity(ctx)
	if !ok {
		return nil, apperr.Unauthenticated("authentication required")
	}
	return identity, nil
}

// RequireAdmin returns the current identity when it is an administrator.
func RequireAdmin(ctx context.Context) (*Identity, error) {
	identity, err := RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !identity.Role.IsAdmin() {
		return nil, apperr.Forbidden("administrator role required")
	}
	return identity, nil
}

// CanMutate reports whether identity may change a resource owned by ownerID.
func CanMutate(identity *Identity, ownerID uuid.UUID) bool {
	if identity == nil {
		return false
	}
	return identity.Role.IsAdmin() || identity.ID == ownerID
}

// RequireMutate returns a Forbidden error unless CanMutate holds.
func RequireMutate(identity *Identity, ownerID uuid.UUID) error {
	if !CanMutate(identity, ownerID) {
		return apperr.Forbidden("not permitted to modify this resource")
	}
	return nil
}

// RequireView returns a Forbidden error unless identity owns the resource or
// is an administrator. Apps and their transactions are private to their owner.
func RequireView(identity *Identity, ownerID uuid.UUID) error {
	if !CanMutate(identity, ownerID) {
		return apperr.Forbidden("not permitted to view this resource")
	}
	return nil
}
