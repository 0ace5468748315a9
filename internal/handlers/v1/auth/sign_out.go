package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
)

// SignOutInput is the Huma input for signing out.
type SignOutInput struct {
	Authorization string `header:"Authorization"`
	Cookie        string `header:"Cookie"`
}

// SignOutOutput clears the session cookie.
type SignOutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

// signerOut is the interface for revoking sessions.
type signerOut interface {
	SignOut(ctx context.Context, token string) error
}

// SignOutHandler handles POST /v1/auth/sign-out.
type SignOutHandler struct {
	Auth signerOut
}

// NewSignOutHandler creates a new SignOutHandler.
func NewSignOutHandler(svc signerOut) *SignOutHandler {
	return &SignOutHandler{Auth: svc}
}

// Register registers the sign-out endpoint with the Huma API.
func (h *SignOutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "sign-out",
		Method:        http.MethodPost,
		Path:          "/v1/auth/sign-out",
		Summary:       "Sign out",
		Description:   "Revokes the current session.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *SignOutHandler) handle(ctx context.Context, input *SignOutInput) (*SignOutOutput, error) {
	if _, err := access.RequireIdentity(ctx); err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	token := access.TokenFromHeaders(input.Authorization, input.Cookie)
	if err := h.Auth.SignOut(ctx, token); err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	return &SignOutOutput{
		SetCookie: http.Cookie{
			Name:     access.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}, nil
}
