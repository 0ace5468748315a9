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

// ListAppsResponse is the response body for listing apps.
type ListAppsResponse struct {
	Apps []App `json:"apps" doc:"Apps visible to the caller, newest first"`
}

// ListAppsOutput is the Huma output for listing apps.
type ListAppsOutput struct {
	Body ListAppsResponse
}

// appLister is the interface for listing apps.
type appLister interface {
	ListApps(ctx context.Context, identity *access.Identity) ([]service.App, error)
}

// ListAppsHandler handles GET /v1/apps.
type ListAppsHandler struct {
	AppService appLister
}

// NewListAppsHandler creates a new ListAppsHandler.
func NewListAppsHandler(svc appLister) *ListAppsHandler {
	return &ListAppsHandler{AppService: svc}
}

// Register registers the list apps endpoint with the Huma API.
func (h *ListAppsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-apps",
		Method:      http.MethodGet,
		Path:        "/v1/apps",
		Summary:     "List apps",
		Description: "Returns the caller's apps, or every app for an administrator.",
		Tags:        []string{"Apps"},
	}, h.handle)
}

func (h *ListAppsHandler) handle(ctx context.Context, _ *struct{}) (*ListAppsOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	apps, err := h.AppService.ListApps(ctx, identity)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("appCount", len(apps))
	}

	resp := ListAppsResponse{Apps: make([]App, len(apps))}
	for i := range apps {
		resp.Apps[i] = fromService(&apps[i])
	}
	return &ListAppsOutput{Body: resp}, nil
}
