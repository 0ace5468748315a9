package participant

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

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/handlertest"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

type mockParticipantService struct {
	mock.Mock
}

func (m *mockParticipantService) ListParticipants(ctx context.Context) ([]service.Participant, error) {
	args := m.Called(ctx)
	participants, _ := args.Get(0).([]service.Participant)
	return participants, args.Error(1)
}

func TestHTTP_ListParticipants_Admin(t *testing.T) {
	svc := new(mockParticipantService)
	svc.On("ListParticipants", mock.Anything).Return([]service.Participant{
		{ID: uuid.Must(uuid.NewV4()), Name: "Ada", Email: "ada@example.com", Role: access.RoleParticipant, CreatedAt: time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.Must(uuid.NewV4()), Name: "Root", Email: "root@example.com", Role: access.RoleAdmin, CreatedAt: time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)},
	}, nil)

	resp := handlertest.New(t, handlertest.Admin("root"), NewListParticipantsHandler(svc)).Get("/v1/participants")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListParticipantsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Participants, 2)
	assert.Equal(t, "participant", body.Participants[0].Role)
	assert.Equal(t, "admin", body.Participants[1].Role)
	assert.Equal(t, "2026-01-09T00:00:00Z", body.Participants[0].CreatedAt)
}

func TestHTTP_ListParticipants_Forbidden(t *testing.T) {
	svc := new(mockParticipantService)

	resp := handlertest.New(t, handlertest.Participant("ada"), NewListParticipantsHandler(svc)).Get("/v1/participants")

	assert.Equal(t, http.StatusForbidden, resp.Code)
	svc.AssertNotCalled(t, "ListParticipants")
}

func TestHTTP_ListParticipants_Anonymous(t *testing.T) {
	resp := handlertest.New(t, nil, NewListParticipantsHandler(new(mockParticipantService))).Get("/v1/participants")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
