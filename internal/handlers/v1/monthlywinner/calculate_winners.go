package monthlywinner

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// CalculateWinnersBody is the request body for calculating winners.
type CalculateWinnersBody struct {
	Month        string `json:"month,omitempty" pattern:"^[0-9]{4}-[0-9]{2}$" doc:"Month to calculate, YYYY-MM"`
	CalculateAll bool   `json:"calculateAll,omitempty" doc:"Calculate every month whose cutoff has passed"`
}

// CalculateWinnersInput is the Huma input for calculating winners.
type CalculateWinnersInput struct {
	Body CalculateWinnersBody
}

// winnerCalculator is the interface for deciding monthly winners.
type winnerCalculator interface {
	CalculateMonth(ctx context.Context, month time.Time, trigger service.Trigger) ([]service.MonthlyWinner, error)
	CalculateAll(ctx context.Context, trigger service.Trigger) ([]service.MonthlyWinner, error)
}

// CalculateWinnersHandler handles POST /v1/monthly-winners/calculate.
type CalculateWinnersHandler struct {
	WinnerService winnerCalculator
}

// NewCalculateWinnersHandler creates a new CalculateWinnersHandler.
func NewCalculateWinnersHandler(svc winnerCalculator) *CalculateWinnersHandler {
	return &CalculateWinnersHandler{WinnerService: svc}
}

// Register registers the calculate winners endpoint with the Huma API.
func (h *CalculateWinnersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "calculate-monthly-winners",
		Method:      http.MethodPost,
		Path:        "/v1/monthly-winners/calculate",
		Summary:     "Calculate monthly winners",
		Description: "Decides and stores the winners of one month, or of every decided month. Administrators only.",
		Tags:        []string{"Monthly winners"},
	}, h.handle)
}

// parseCalculateWinnersBody returns the requested month, or nil for all months.
func parseCalculateWinnersBody(body *CalculateWinnersBody) (*time.Time, error) {
	if body.CalculateAll {
		if body.Month != "" {
			return nil, huma.NewError(http.StatusBadRequest, "specify either month or calculateAll, not both")
		}
		return nil, nil
	}
	if body.Month == "" {
		return nil, huma.NewError(http.StatusBadRequest, "month or calculateAll is required")
	}
	month, err := time.Parse(monthLayout, body.Month)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid month", err)
	}
	return &month, nil
}

func (h *CalculateWinnersHandler) handle(ctx context.Context, input *CalculateWinnersInput) (*WinnersOutput, error) {
	if _, err := access.RequireAdmin(ctx); err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	month, err := parseCalculateWinnersBody(&input.Body)
	if err != nil {
		return nil, err
	}

	var winners []service.MonthlyWinner
	if month == nil {
		winners, err = h.WinnerService.CalculateAll(ctx, service.TriggerHTTP)
	} else {
		winners, err = h.WinnerService.CalculateMonth(ctx, *month, service.TriggerHTTP)
	}
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("winnerCount", len(winners))
	}

	return &WinnersOutput{Body: WinnersResponse{Winners: fromServiceList(winners)}}, nil
}
