package app

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// CreateAppBody is the request body for creating an app.
type CreateAppBody struct {
	Name        string  `json:"name" doc:"App name, at most 200 characters"`
	Description *string `json:"description,omitempty" doc:"Optional description, at most 2000 characters"`
	URL         *string `json:"url,omitempty" doc:"Optional absolute http(s) URL"`
}

// CreateAppInput is the Huma input for creating an app.
type CreateAppInput struct {
	Body CreateAppBody
}

// AppOutput is the Huma output for operations returning one app.
type AppOutput struct {
	Body App
}

// appCreator is the interface for creating apps.
type appCreator interface {
	CreateApp(ctx context.Context, identity *access.Identity, input service.AppInput) (*service.App, error)
}

// CreateAppHandler handles POST /v1/apps.
type CreateAppHandler struct {
	AppService appCreator
}

// NewCreateAppHandler creates a new CreateAppHandler.
func NewCreateAppHandler(svc appCreator) *CreateAppHandler {
	return &CreateAppHandler{AppService: svc}
}

// Register registers the create app endpoint with the Huma API.
func (h *CreateAppHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-app",
		Method:        http.MethodPost,
		Path:          "/v1/apps",
		Summary:       "Create an app",
		Description:   "Creates an app owned by the caller.",
		Tags:          []string{"Apps"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateAppHandler) handle(ctx context.Context, input *CreateAppInput) (*AppOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	created, err := h.AppService.CreateApp(ctx, identity, service.AppInput{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		URL:         input.Body.URL,
	})
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("appID", created.ID.String())
	}

	return &AppOutput{Body: fromService(created)}, nil
}
