package auth

import (
	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
)

// SessionParticipant is the API response model for the signed-in participant.
type SessionParticipant struct {
	ID    string `json:"id" doc:"Participant UUID"`
	Name  string `json:"name" doc:"Display name"`
	Email string `json:"email" doc:"Contact email"`
	Role  string `json:"role" enum:"participant,admin" doc:"Participant role"`
}

func fromIdentity(identity *access.Identity) *SessionParticipant {
	return &SessionParticipant{
		ID:    identity.ID.String(),
		Name:  identity.Name,
		Email: identity.Email,
		Role:  identity.Role.String(),
	}
}

func fromParticipant(p *participant.Participant) *SessionParticipant {
	return fromIdentity(p.Identity())
}
