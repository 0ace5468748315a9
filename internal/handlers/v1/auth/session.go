package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
)

// SessionResponse is the response body for the session endpoint.
type SessionResponse struct {
	Participant *SessionParticipant `json:"participant" doc:"Signed-in participant, null when anonymous"`
}

// SessionOutput is the Huma output for the session endpoint.
type SessionOutput struct {
	Body SessionResponse
}

// SessionHandler handles GET /v1/auth/session.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Register registers the session endpoint with the Huma API.
func (h *SessionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/v1/auth/session",
		Summary:     "Current session",
		Description: "Returns the participant behind the current session, or null.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *SessionHandler) handle(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	out := &SessionOutput{}
	if identity, ok := access.ResolveIdentity(ctx); ok {
		out.Body.Participant = fromIdentity(identity)
	}
	return out, nil
}
