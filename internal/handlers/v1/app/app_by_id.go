package app

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// appByID is the interface for operations on a single app.
type appByID interface {
	GetApp(ctx context.Context, identity *access.Identity, id uuid.UUID) (*service.App, error)
	UpdateApp(ctx context.Context, identity *access.Identity, id uuid.UUID, patch service.AppPatch) (*service.App, error)
	DeleteApp(ctx context.Context, identity *access.Identity, id uuid.UUID) error
}

// UpdateAppBody is the request body for editing an app. Absent fields are
// left unchanged; a null description or url clears it.
type UpdateAppBody struct {
	Name        *string               `json:"name,omitempty" doc:"New app name"`
	Description fields.NullableString `json:"description,omitempty" doc:"New description, null to clear"`
	URL         fields.NullableString `json:"url,omitempty" doc:"New URL, null to clear"`
}

// UpdateAppInput is the Huma input for editing an app.
type UpdateAppInput struct {
	AppPathInput
	Body UpdateAppBody
}

// AppByIDHandler handles GET, PATCH and DELETE /v1/apps/{id}.
type AppByIDHandler struct {
	AppService appByID
}

// NewAppByIDHandler creates a new AppByIDHandler.
func NewAppByIDHandler(svc appByID) *AppByIDHandler {
	return &AppByIDHandler{AppService: svc}
}

// Register registers the single-app endpoints with the Huma API.
func (h *AppByIDHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-app",
		Method:      http.MethodGet,
		Path:        "/v1/apps/{id}",
		Summary:     "Get an app",
		Tags:        []string{"Apps"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-app",
		Method:      http.MethodPatch,
		Path:        "/v1/apps/{id}",
		Summary:     "Edit an app",
		Description: "Changes the submitted fields. An invalid field rejects the whole edit.",
		Tags:        []string{"Apps"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-app",
		Method:        http.MethodDelete,
		Path:          "/v1/apps/{id}",
		Summary:       "Delete an app",
		Description:   "Deletes the app together with all of its transactions.",
		Tags:          []string{"Apps"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *AppByIDHandler) get(ctx context.Context, input *AppPathInput) (*AppOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	id, err := input.appID()
	if err != nil {
		return nil, err
	}

	found, err := h.AppService.GetApp(ctx, identity, id)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return &AppOutput{Body: fromService(found)}, nil
}

func (h *AppByIDHandler) update(ctx context.Context, input *UpdateAppInput) (*AppOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	id, err := input.appID()
	if err != nil {
		return nil, err
	}

	patch := service.AppPatch{
		Name:        omit.FromPtr(input.Body.Name),
		Description: input.Body.Description.Val,
		URL:         input.Body.URL.Val,
	}
	updated, err := h.AppService.UpdateApp(ctx, identity, id, patch)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return &AppOutput{Body: fromService(updated)}, nil
}

func (h *AppByIDHandler) delete(ctx context.Context, input *AppPathInput) (*struct{}, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	id, err := input.appID()
	if err != nil {
		return nil, err
	}

	if err := h.AppService.DeleteApp(ctx, identity, id); err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return nil, nil
}
