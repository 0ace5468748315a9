package changelog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/handlertest"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

type mockChangeLogService struct {
	mock.Mock
}

func (m *mockChangeLogService) ListChanges(ctx context.Context, appID *uuid.UUID, cursor *service.ChangeCursor) ([]service.ChangeEntry, *service.ChangeCursor, error) {
	args := m.Called(ctx, appID, cursor)
	entries, _ := args.Get(0).([]service.ChangeEntry)
	next, _ := args.Get(1).(*service.ChangeCursor)
	return entries, next, args.Error(2)
}

func TestParseListChangesInput_Defaults(t *testing.T) {
	appID, cursor, err := parseListChangesInput(&ListChangesInput{})
	require.NoError(t, err)
	assert.Nil(t, appID)
	assert.Nil(t, cursor)
}

func TestParseListChangesInput_WithCursor(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	appID, cursor, err := parseListChangesInput(&ListChangesInput{
		AppID:           id.String(),
		Position:        50,
		Limit:           50,
		MaxCreationTime: "2026-03-01T12:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, appID)
	assert.Equal(t, id, *appID)
	require.NotNil(t, cursor)
	assert.Equal(t, 50, cursor.Position)
	assert.Equal(t, 50, cursor.Limit)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), cursor.MaxCreationTime.UTC())
}

func TestParseListChangesInput_Invalid(t *testing.T) {
	_, _, err := parseListChangesInput(&ListChangesInput{AppID: "nope"})
	assert.Error(t, err)

	_, _, err = parseListChangesInput(&ListChangesInput{Position: 10, MaxCreationTime: "yesterday"})
	assert.Error(t, err)
}

func TestHTTP_ListChanges(t *testing.T) {
	entry := service.ChangeEntry{
		ID:         uuid.Must(uuid.NewV4()),
		ActorID:    uuid.Must(uuid.NewV4()),
		ActorName:  "Ada",
		Action:     "create_app",
		EntityType: "app",
		EntityID:   uuid.Must(uuid.NewV4()),
		After:      map[string]any{"name": "Alpha"},
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	entry.AppID = entry.EntityID
	next := &service.ChangeCursor{Position: 1, Limit: 1, MaxCreationTime: entry.CreatedAt}

	svc := new(mockChangeLogService)
	svc.On("ListChanges", mock.Anything, (*uuid.UUID)(nil), mock.MatchedBy(func(c *service.ChangeCursor) bool {
		return c != nil && c.Limit == 1 && c.Position == 0
	})).Return([]service.ChangeEntry{entry}, next, nil)

	resp := handlertest.New(t, handlertest.Participant("ada"), NewListChangesHandler(svc)).Get("/v1/changelog?limit=1")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListChangesResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "create_app", body.Entries[0].Action)
	assert.Equal(t, "Alpha", body.Entries[0].After["name"])
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 1, body.NextCursor.Position)
	assert.Equal(t, "2026-03-01T12:00:00Z", body.NextCursor.MaxCreationTime)
}

func TestHTTP_ListChanges_LastPage(t *testing.T) {
	svc := new(mockChangeLogService)
	svc.On("ListChanges", mock.Anything, mock.Anything, (*service.ChangeCursor)(nil)).
		Return([]service.ChangeEntry{}, nil, nil)

	resp := handlertest.New(t, handlertest.Admin("root"), NewListChangesHandler(svc)).Get("/v1/changelog")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListChangesResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Entries)
	assert.Nil(t, body.NextCursor)
}

func TestHTTP_ListChanges_RequiresSession(t *testing.T) {
	svc := new(mockChangeLogService)

	resp := handlertest.New(t, nil, NewListChangesHandler(svc)).Get("/v1/changelog")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	svc.AssertNotCalled(t, "ListChanges")
}
