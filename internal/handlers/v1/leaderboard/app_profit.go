package leaderboard

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
)

// AppProfitInput is the Huma input for one app's profit.
type AppProfitInput struct {
	AppID string `path:"id" format:"uuid" doc:"App UUID"`
	AsOf  string `query:"asOf" doc:"Only count transactions dated on or before this date (YYYY-MM-DD)"`
}

// AppProfitResponse is the response body for one app's profit.
type AppProfitResponse struct {
	AppID  string  `json:"appId" doc:"App UUID"`
	AsOf   *string `json:"asOf,omitempty" format:"date" doc:"Cutoff date, absent for all-time profit"`
	Profit string  `json:"profit" doc:"Revenue minus expenses"`
}

// AppProfitOutput is the Huma output for one app's profit.
type AppProfitOutput struct {
	Body AppProfitResponse
}

// profitReader is the interface for reading a single app's profit.
type profitReader interface {
	AppProfit(ctx context.Context, identity *access.Identity, appID uuid.UUID, cutoff *time.Time) (decimal.Decimal, error)
}

// AppProfitHandler handles GET /v1/apps/{id}/profit.
type AppProfitHandler struct {
	LeaderboardService profitReader
}

// NewAppProfitHandler creates a new AppProfitHandler.
func NewAppProfitHandler(svc profitReader) *AppProfitHandler {
	return &AppProfitHandler{LeaderboardService: svc}
}

// Register registers the app profit endpoint with the Huma API.
func (h *AppProfitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-app-profit",
		Method:      http.MethodGet,
		Path:        "/v1/apps/{id}/profit",
		Summary:     "App profit",
		Description: "Returns the app's profit, all-time or as of a cutoff date.",
		Tags:        []string{"Leaderboard"},
	}, h.handle)
}

func (h *AppProfitHandler) handle(ctx context.Context, input *AppProfitInput) (*AppProfitOutput, error) {
	logData := logging.GetLogData(ctx)
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	appID, err := uuid.FromString(input.AppID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid app id", err)
	}

	var cutoff *time.Time
	if input.AsOf != "" {
		asOf, err := fields.ParseDate(input.AsOf)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "asOf must be a YYYY-MM-DD date", err)
		}
		cutoff = &asOf
		if logData != nil {
			logData.AddData("asOf", input.AsOf)
		}
	}

	amount, err := h.LeaderboardService.AppProfit(ctx, identity, appID, cutoff)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	resp := AppProfitResponse{AppID: appID.String(), Profit: fields.Money(amount)}
	if cutoff != nil {
		d := fields.Date(*cutoff)
		resp.AsOf = &d
	}
	return &AppProfitOutput{Body: resp}, nil
}
