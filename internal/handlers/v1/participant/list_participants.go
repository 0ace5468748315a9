package participant

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// Participant is the API response model for a participant.
type Participant struct {
	ID        string `json:"id" doc:"Participant UUID"`
	Name      string `json:"name" doc:"Display name"`
	Email     string `json:"email" doc:"Sign-in email"`
	Role      string `json:"role" enum:"participant,admin" doc:"Role"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// ListParticipantsResponse is the response body for listing participants.
type ListParticipantsResponse struct {
	Participants []Participant `json:"participants" doc:"Participants ordered by name"`
}

// ListParticipantsOutput is the Huma output for listing participants.
type ListParticipantsOutput struct {
	Body ListParticipantsResponse
}

// participantLister is the interface for listing participants.
type participantLister interface {
	ListParticipants(ctx context.Context) ([]service.Participant, error)
}

// ListParticipantsHandler handles GET /v1/participants.
type ListParticipantsHandler struct {
	ParticipantService participantLister
}

// NewListParticipantsHandler creates a new ListParticipantsHandler.
func NewListParticipantsHandler(svc participantLister) *ListParticipantsHandler {
	return &ListParticipantsHandler{ParticipantService: svc}
}

// Register registers the list participants endpoint with the Huma API.
func (h *ListParticipantsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-participants",
		Method:      http.MethodGet,
		Path:        "/v1/participants",
		Summary:     "List participants",
		Description: "Administrators only.",
		Tags:        []string{"Participants"},
	}, h.handle)
}

func (h *ListParticipantsHandler) handle(ctx context.Context, _ *struct{}) (*ListParticipantsOutput, error) {
	if _, err := access.RequireAdmin(ctx); err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	participants, err := h.ParticipantService.ListParticipants(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	resp := ListParticipantsResponse{Participants: make([]Participant, len(participants))}
	for i, p := range participants {
		resp.Participants[i] = Participant{
			ID:        p.ID.String(),
			Name:      p.Name,
			Email:     p.Email,
			Role:      p.Role.String(),
			CreatedAt: fields.Timestamp(p.CreatedAt),
		}
	}
	return &ListParticipantsOutput{Body: resp}, nil
}
