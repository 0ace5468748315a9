package leaderboard

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// AppRanking is one row of the app leaderboard.
type AppRanking struct {
	AppID           string `json:"appId" doc:"App UUID"`
	AppName         string `json:"appName" doc:"App name"`
	ParticipantID   string `json:"participantId" doc:"Owner UUID"`
	ParticipantName string `json:"participantName" doc:"Owner name, Unknown when the owner is missing"`
	Profit          string `json:"profit" doc:"All-time profit"`
}

// ParticipantRanking is one row of the participant leaderboard.
type ParticipantRanking struct {
	ParticipantID   string `json:"participantId" doc:"Participant UUID"`
	ParticipantName string `json:"participantName" doc:"Participant name"`
	BestAppID       string `json:"bestAppId,omitempty" doc:"Most profitable app, absent without apps"`
	BestAppName     string `json:"bestAppName,omitempty" doc:"Name of the most profitable app"`
	Profit          string `json:"profit" doc:"Profit of the best app"`
}

// GrandWinner is the final challenge result.
type GrandWinner struct {
	App         AppRanking         `json:"app"`
	Participant ParticipantRanking `json:"participant"`
}

// LeaderboardResponse is the response body for the leaderboard.
type LeaderboardResponse struct {
	AppRankings         []AppRanking         `json:"appRankings" doc:"Apps by profit, highest first"`
	ParticipantRankings []ParticipantRanking `json:"participantRankings" doc:"Participants by best app profit, highest first"`
	GrandWinner         *GrandWinner         `json:"grandWinner,omitempty" doc:"Present once the grand winner has been announced"`
}

// LeaderboardOutput is the Huma output for the leaderboard.
type LeaderboardOutput struct {
	Body LeaderboardResponse
}

// leaderboardReader is the interface for reading the leaderboard.
type leaderboardReader interface {
	Leaderboard(ctx context.Context) (*service.Leaderboard, error)
}

// LeaderboardHandler handles GET /v1/leaderboard.
type LeaderboardHandler struct {
	LeaderboardService leaderboardReader
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(svc leaderboardReader) *LeaderboardHandler {
	return &LeaderboardHandler{LeaderboardService: svc}
}

// Register registers the leaderboard endpoint with the Huma API.
func (h *LeaderboardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-leaderboard",
		Method:      http.MethodGet,
		Path:        "/v1/leaderboard",
		Summary:     "Leaderboard",
		Description: "Ranks every app and every participant on all-time profit.",
		Tags:        []string{"Leaderboard"},
	}, h.handle)
}

func (h *LeaderboardHandler) handle(ctx context.Context, _ *struct{}) (*LeaderboardOutput, error) {
	logData := logging.GetLogData(ctx)
	if _, err := access.RequireIdentity(ctx); err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("leaderboardMs")
	}
	board, err := h.LeaderboardService.Leaderboard(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	resp := LeaderboardResponse{
		AppRankings:         make([]AppRanking, len(board.AppRankings)),
		ParticipantRankings: make([]ParticipantRanking, len(board.ParticipantRankings)),
	}
	for i, r := range board.AppRankings {
		resp.AppRankings[i] = appRanking(r)
	}
	for i, r := range board.ParticipantRankings {
		resp.ParticipantRankings[i] = participantRanking(r)
	}
	if board.GrandWinner != nil {
		resp.GrandWinner = &GrandWinner{
			App:         appRanking(board.GrandWinner.App),
			Participant: participantRanking(board.GrandWinner.Participant),
		}
	}
	return &LeaderboardOutput{Body: resp}, nil
}

func appRanking(r profit.AppRanking) AppRanking {
	return AppRanking{
		AppID:           r.AppID.String(),
		AppName:         r.AppName,
		ParticipantID:   r.ParticipantID.String(),
		ParticipantName: r.ParticipantName,
		Profit:          fields.Money(r.Profit),
	}
}

func participantRanking(r profit.ParticipantRanking) ParticipantRanking {
	out := ParticipantRanking{
		ParticipantID:   r.ParticipantID.String(),
		ParticipantName: r.ParticipantName,
		BestAppName:     r.BestAppName,
		Profit:          fields.Money(r.Profit),
	}
	if !r.BestAppID.IsNil() {
		out.BestAppID = r.BestAppID.String()
	}
	return out
}
