package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/handlertest"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

type mockLeaderboardService struct {
	mock.Mock
}

func (m *mockLeaderboardService) Leaderboard(ctx context.Context) (*service.Leaderboard, error) {
	args := m.Called(ctx)
	board, _ := args.Get(0).(*service.Leaderboard)
	return board, args.Error(1)
}

func (m *mockLeaderboardService) ProfitHistory(ctx context.Context, identity *access.Identity, appID uuid.UUID) ([]profit.HistoryPoint, error) {
	args := m.Called(ctx, identity, appID)
	history, _ := args.Get(0).([]profit.HistoryPoint)
	return history, args.Error(1)
}

func (m *mockLeaderboardService) AppProfit(ctx context.Context, identity *access.Identity, appID uuid.UUID, cutoff *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, identity, appID, cutoff)
	amount, _ := args.Get(0).(decimal.Decimal)
	return amount, args.Error(1)
}

func TestHTTP_Leaderboard(t *testing.T) {
	appRanking := profit.AppRanking{
		AppID:           uuid.Must(uuid.NewV4()),
		AppName:         "Alpha",
		ParticipantID:   uuid.Must(uuid.NewV4()),
		ParticipantName: "Ada",
		Profit:          decimal.NewFromInt(100),
	}
	svc := new(mockLeaderboardService)
	svc.On("Leaderboard", mock.Anything).Return(&service.Leaderboard{
		AppRankings: []profit.AppRanking{appRanking},
		ParticipantRankings: []profit.ParticipantRanking{
			{ParticipantID: appRanking.ParticipantID, ParticipantName: "Ada", BestAppID: appRanking.AppID, BestAppName: "Alpha", Profit: decimal.NewFromInt(100)},
			{ParticipantID: uuid.Must(uuid.NewV4()), ParticipantName: "Grace", Profit: decimal.Zero},
		},
	}, nil)

	resp := handlertest.New(t, handlertest.Participant("ada"), NewLeaderboardHandler(svc)).Get("/v1/leaderboard")

	require.Equal(t, http.StatusOK, resp.Code)
	var body LeaderboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.AppRankings, 1)
	assert.Equal(t, "100.00", body.AppRankings[0].Profit)
	require.Len(t, body.ParticipantRankings, 2)
	assert.Equal(t, appRanking.AppID.String(), body.ParticipantRankings[0].BestAppID)
	assert.Empty(t, body.ParticipantRankings[1].BestAppID)
	assert.Equal(t, "0.00", body.ParticipantRankings[1].Profit)
	assert.Nil(t, body.GrandWinner)
}

func TestHTTP_Leaderboard_GrandWinner(t *testing.T) {
	svc := new(mockLeaderboardService)
	svc.On("Leaderboard", mock.Anything).Return(&service.Leaderboard{
		AppRankings:         []profit.AppRanking{},
		ParticipantRankings: []profit.ParticipantRanking{},
		GrandWinner: &profit.GrandWinnerResult{
			App:         profit.AppRanking{AppName: "Alpha", Profit: decimal.NewFromInt(5)},
			Participant: profit.ParticipantRanking{ParticipantName: "Ada", Profit: decimal.NewFromInt(5)},
		},
	}, nil)

	resp := handlertest.New(t, handlertest.Participant("ada"), NewLeaderboardHandler(svc)).Get("/v1/leaderboard")

	require.Equal(t, http.StatusOK, resp.Code)
	var body LeaderboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.GrandWinner)
	assert.Equal(t, "Alpha", body.GrandWinner.App.AppName)
}

func TestHTTP_Leaderboard_Anonymous(t *testing.T) {
	svc := new(mockLeaderboardService)

	resp := handlertest.New(t, nil, NewLeaderboardHandler(svc)).Get("/v1/leaderboard")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	svc.AssertNotCalled(t, "Leaderboard")
}

func TestHTTP_ProfitHistory(t *testing.T) {
	ada := handlertest.Participant("ada")
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockLeaderboardService)
	svc.On("ProfitHistory", mock.Anything, ada, appID).Return([]profit.HistoryPoint{
		{Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), CumulativeProfit: decimal.NewFromInt(12)},
		{Date: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), CumulativeProfit: decimal.NewFromInt(9)},
	}, nil)

	resp := handlertest.New(t, ada, NewProfitHistoryHandler(svc)).Get("/v1/apps/" + appID.String() + "/profit-history")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ProfitHistoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []HistoryPoint{
		{Date: "2026-01-10", CumulativeProfit: "12.00"},
		{Date: "2026-01-12", CumulativeProfit: "9.00"},
	}, body.History)
}

func TestHTTP_ProfitHistory_MissingApp(t *testing.T) {
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockLeaderboardService)
	svc.On("ProfitHistory", mock.Anything, mock.Anything, appID).Return(nil, apperr.NotFound("app not found"))

	resp := handlertest.New(t, handlertest.Admin("root"), NewProfitHistoryHandler(svc)).Get("/v1/apps/" + appID.String() + "/profit-history")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_AppProfit_AllTime(t *testing.T) {
	ada := handlertest.Participant("ada")
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockLeaderboardService)
	svc.On("AppProfit", mock.Anything, ada, appID, (*time.Time)(nil)).Return(decimal.RequireFromString("42.5"), nil)

	resp := handlertest.New(t, ada, NewAppProfitHandler(svc)).Get("/v1/apps/" + appID.String() + "/profit")

	require.Equal(t, http.StatusOK, resp.Code)
	var body AppProfitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, appID.String(), body.AppID)
	assert.Equal(t, "42.50", body.Profit)
	assert.Nil(t, body.AsOf)
}

func TestHTTP_AppProfit_AsOfCutoff(t *testing.T) {
	ada := handlertest.Participant("ada")
	appID := uuid.Must(uuid.NewV4())
	cutoff := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	svc := new(mockLeaderboardService)
	svc.On("AppProfit", mock.Anything, ada, appID, mock.MatchedBy(func(c *time.Time) bool {
		return c != nil && c.Equal(cutoff)
	})).Return(decimal.NewFromInt(-3), nil)

	resp := handlertest.New(t, ada, NewAppProfitHandler(svc)).Get("/v1/apps/" + appID.String() + "/profit?asOf=2026-02-10")

	require.Equal(t, http.StatusOK, resp.Code)
	var body AppProfitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.AsOf)
	assert.Equal(t, "2026-02-10", *body.AsOf)
	assert.Equal(t, "-3.00", body.Profit)
}

func TestHTTP_AppProfit_BadDate(t *testing.T) {
	svc := new(mockLeaderboardService)

	resp := handlertest.New(t, handlertest.Participant("ada"), NewAppProfitHandler(svc)).
		Get("/v1/apps/" + uuid.Must(uuid.NewV4()).String() + "/profit?asOf=10-02-2026")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "AppProfit")
}

func TestHTTP_AppProfit_Forbidden(t *testing.T) {
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockLeaderboardService)
	svc.On("AppProfit", mock.Anything, mock.Anything, appID, (*time.Time)(nil)).Return(decimal.Zero, apperr.Forbidden("not permitted to view this resource"))

	resp := handlertest.New(t, handlertest.Participant("ada"), NewAppProfitHandler(svc)).Get("/v1/apps/" + appID.String() + "/profit")

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
