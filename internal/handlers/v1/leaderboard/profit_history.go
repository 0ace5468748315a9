package leaderboard

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
)

// HistoryPoint is the cumulative profit at the end of a transaction day.
type HistoryPoint struct {
	Date             string `json:"date" format:"date" doc:"Calendar date"`
	CumulativeProfit string `json:"cumulativeProfit" doc:"Profit up to and including this date"`
}

// ProfitHistoryInput is the Huma input for an app's profit history.
type ProfitHistoryInput struct {
	AppID string `path:"id" format:"uuid" doc:"App UUID"`
}

// ProfitHistoryResponse is the response body for an app's profit history.
type ProfitHistoryResponse struct {
	History []HistoryPoint `json:"history" doc:"One point per day with transactions, oldest first"`
}

// ProfitHistoryOutput is the Huma output for an app's profit history.
type ProfitHistoryOutput struct {
	Body ProfitHistoryResponse
}

// historyReader is the interface for reading profit history.
type historyReader interface {
	ProfitHistory(ctx context.Context, identity *access.Identity, appID uuid.UUID) ([]profit.HistoryPoint, error)
}

// ProfitHistoryHandler handles GET /v1/apps/{id}/profit-history.
type ProfitHistoryHandler struct {
	LeaderboardService historyReader
}

// NewProfitHistoryHandler creates a new ProfitHistoryHandler.
func NewProfitHistoryHandler(svc historyReader) *ProfitHistoryHandler {
	return &ProfitHistoryHandler{LeaderboardService: svc}
}

// Register registers the profit history endpoint with the Huma API.
func (h *ProfitHistoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profit-history",
		Method:      http.MethodGet,
		Path:        "/v1/apps/{id}/profit-history",
		Summary:     "Profit history",
		Description: "Returns the app's running profit per transaction day.",
		Tags:        []string{"Leaderboard"},
	}, h.handle)
}

func (h *ProfitHistoryHandler) handle(ctx context.Context, input *ProfitHistoryInput) (*ProfitHistoryOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	appID, err := uuid.FromString(input.AppID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid app id", err)
	}

	history, err := h.LeaderboardService.ProfitHistory(ctx, identity, appID)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	resp := ProfitHistoryResponse{History: make([]HistoryPoint, len(history))}
	for i, p := range history {
		resp.History[i] = HistoryPoint{
			Date:             fields.Date(p.Date),
			CumulativeProfit: fields.Money(p.CumulativeProfit),
		}
	}
	return &ProfitHistoryOutput{Body: resp}, nil
}
