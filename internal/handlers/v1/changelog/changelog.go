package changelog

import (
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// Entry is the API response model for one audit record.
type Entry struct {
	ID         string         `json:"id" doc:"Entry UUID"`
	ActorID    string         `json:"actorId" doc:"Participant who made the change"`
	ActorName  string         `json:"actorName" doc:"Actor name at the time of the change"`
	Action     string         `json:"action" enum:"create_app,edit_app,delete_app,add_transaction,edit_transaction,delete_transaction" doc:"Kind of change"`
	EntityType string         `json:"entityType" enum:"app,transaction" doc:"Kind of entity changed"`
	EntityID   string         `json:"entityId" doc:"UUID of the changed entity"`
	AppID      string         `json:"appId" doc:"App the change belongs to"`
	Before     map[string]any `json:"before,omitempty" doc:"Field values before the change"`
	After      map[string]any `json:"after,omitempty" doc:"Field values after the change"`
	CreatedAt  string         `json:"createdAt" doc:"RFC3339 time of the change"`
}

func fromService(e service.ChangeEntry) Entry {
	return Entry{
		ID:         e.ID.String(),
		ActorID:    e.ActorID.String(),
		ActorName:  e.ActorName,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		AppID:      e.AppID.String(),
		Before:     e.Before,
		After:      e.After,
		CreatedAt:  fields.Timestamp(e.CreatedAt),
	}
}
