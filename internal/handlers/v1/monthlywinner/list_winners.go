package monthlywinner

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// WinnersResponse is the response body carrying a list of winners.
type WinnersResponse struct {
	Winners []MonthlyWinner `json:"winners" doc:"Monthly winners, newest month first"`
}

// WinnersOutput is the Huma output carrying a list of winners.
type WinnersOutput struct {
	Body WinnersResponse
}

// winnerLister is the interface for listing monthly winners.
type winnerLister interface {
	ListWinners(ctx context.Context) ([]service.MonthlyWinner, error)
}

// ListWinnersHandler handles GET /v1/monthly-winners.
type ListWinnersHandler struct {
	WinnerService winnerLister
}

// NewListWinnersHandler creates a new ListWinnersHandler.
func NewListWinnersHandler(svc winnerLister) *ListWinnersHandler {
	return &ListWinnersHandler{WinnerService: svc}
}

// Register registers the list winners endpoint with the Huma API.
func (h *ListWinnersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-monthly-winners",
		Method:      http.MethodGet,
		Path:        "/v1/monthly-winners",
		Summary:     "List monthly winners",
		Tags:        []string{"Monthly winners"},
	}, h.handle)
}

func (h *ListWinnersHandler) handle(ctx context.Context, _ *struct{}) (*WinnersOutput, error) {
	if _, err := access.RequireIdentity(ctx); err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	winners, err := h.WinnerService.ListWinners(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return &WinnersOutput{Body: WinnersResponse{Winners: fromServiceList(winners)}}, nil
}
