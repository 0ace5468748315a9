package changelog

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// ListChangesCursor represents a pagination cursor in the response body.
// Clients pass its fields back as query parameters to fetch the next page.
type ListChangesCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListChangesInput is the Huma input for listing change log entries.
type ListChangesInput struct {
	AppID           string `query:"appId" doc:"Only return changes to this app"`
	Position        int    `query:"position" minimum:"0" doc:"Offset from a previous nextCursor"`
	Limit           int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 50 when omitted"`
	MaxCreationTime string `query:"maxCreationTime" doc:"Upper bound on created_at from a previous nextCursor"`
}

// ListChangesResponseBody is the response body for listing change log entries.
type ListChangesResponseBody struct {
	Entries    []Entry            `json:"entries" doc:"Page of entries, newest first"`
	NextCursor *ListChangesCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListChangesOutput is the Huma output for listing change log entries.
type ListChangesOutput struct {
	Body ListChangesResponseBody
}

// changeLister is the interface for reading the change log.
type changeLister interface {
	ListChanges(ctx context.Context, appID *uuid.UUID, cursor *service.ChangeCursor) ([]service.ChangeEntry, *service.ChangeCursor, error)
}

// ListChangesHandler handles GET /v1/changelog.
type ListChangesHandler struct {
	ChangeLogService changeLister
}

// NewListChangesHandler creates a new ListChangesHandler.
func NewListChangesHandler(svc changeLister) *ListChangesHandler {
	return &ListChangesHandler{ChangeLogService: svc}
}

// Register registers the list changes endpoint with the Huma API.
func (h *ListChangesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-changes",
		Method:      http.MethodGet,
		Path:        "/v1/changelog",
		Summary:     "List changes",
		Description: "Returns the audit trail of app and transaction changes using cursor-based pagination.",
		Tags:        []string{"Change log"},
	}, h.handle)
}

// parseListChangesInput parses and validates the query parameters.
// Without position, limit or maxCreationTime the service uses its defaults.
func parseListChangesInput(input *ListChangesInput) (*uuid.UUID, *service.ChangeCursor, error) {
	var appID *uuid.UUID
	if input.AppID != "" {
		id, err := uuid.FromString(input.AppID)
		if err != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid appId", err)
		}
		appID = &id
	}

	if input.Position == 0 && input.Limit == 0 && input.MaxCreationTime == "" {
		return appID, nil, nil
	}

	cursor := &service.ChangeCursor{
		Position: input.Position,
		Limit:    input.Limit,
	}
	if input.MaxCreationTime != "" {
		maxCreationTime, err := time.Parse(time.RFC3339, input.MaxCreationTime)
		if err != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid maxCreationTime", err)
		}
		cursor.MaxCreationTime = maxCreationTime
	}
	return appID, cursor, nil
}

func (h *ListChangesHandler) handle(ctx context.Context, input *ListChangesInput) (*ListChangesOutput, error) {
	if _, err := access.RequireIdentity(ctx); err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	logData := logging.GetLogData(ctx)
	appID, requestCursor, err := parseListChangesInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listChangesMs")
	}
	entries, nextCursor, err := h.ChangeLogService.ListChanges(ctx, appID, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	if logData != nil {
		logData.AddData("changeCount", len(entries))
	}

	resp := ListChangesResponseBody{
		Entries: make([]Entry, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = fromService(e)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListChangesCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: fields.Timestamp(nextCursor.MaxCreationTime),
		}
	}

	return &ListChangesOutput{Body: resp}, nil
}
