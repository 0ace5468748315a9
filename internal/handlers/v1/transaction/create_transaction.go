package transaction

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

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Type            string  `json:"type" doc:"revenue or expense"`
	Amount          float64 `json:"amount" doc:"Non-negative amount with at most two decimal places"`
	Description     *string `json:"description,omitempty" doc:"Optional description, at most 500 characters"`
	TransactionDate string  `json:"transactionDate,omitempty" format:"date" doc:"Calendar date, defaults to today (UTC)"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	AppID string `path:"id" format:"uuid" doc:"App UUID"`
	Body  CreateTransactionBody
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, identity *access.Identity, appID uuid.UUID, input service.TransactionInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/apps/{id}/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/apps/{id}/transactions",
		Summary:       "Create transaction",
		Description:   "Records a revenue or expense against the app.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses the path and body. Domain rules are
// checked by the service.
func parseCreateTransactionInput(input *CreateTransactionInput) (uuid.UUID, service.TransactionInput, error) {
	appID, err := parseID(input.AppID, "app id")
	if err != nil {
		return uuid.Nil, service.TransactionInput{}, err
	}

	var transactionDate *time.Time
	if input.Body.TransactionDate != "" {
		d, err := fields.ParseDate(input.Body.TransactionDate)
		if err != nil {
			return uuid.Nil, service.TransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
		transactionDate = &d
	}

	return appID, service.TransactionInput{
		Type:            input.Body.Type,
		Amount:          fields.Amount(input.Body.Amount),
		Description:     input.Body.Description,
		TransactionDate: transactionDate,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	appID, create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.TransactionService.CreateTransaction(ctx, identity, appID, create)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &TransactionOutput{Body: fromService(created)}, nil
}
