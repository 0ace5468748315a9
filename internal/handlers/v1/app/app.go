package app

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// App is the API response model for an app.
type App struct {
	ID          string  `json:"id" doc:"App UUID"`
	OwnerID     string  `json:"ownerId" doc:"Owning participant UUID"`
	OwnerName   string  `json:"ownerName" doc:"Owning participant name"`
	Name        string  `json:"name" doc:"App name"`
	Description *string `json:"description" doc:"Optional description"`
	URL         *string `json:"url" doc:"Optional http(s) URL"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt   string  `json:"updatedAt" doc:"RFC3339 last update time"`
}

func fromService(a *service.App) App {
	return App{
		ID:          a.ID.String(),
		OwnerID:     a.OwnerID.String(),
		OwnerName:   a.OwnerName,
		Name:        a.Name,
		Description: a.Description,
		URL:         a.URL,
		CreatedAt:   fields.Timestamp(a.CreatedAt),
		UpdatedAt:   fields.Timestamp(a.UpdatedAt),
	}
}

// AppPathInput identifies one app.
type AppPathInput struct {
	ID string `path:"id" format:"uuid" doc:"App UUID"`
}

func (i *AppPathInput) appID() (uuid.UUID, error) {
	id, err := uuid.FromString(i.ID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid app id", err)
	}
	return id, nil
}
