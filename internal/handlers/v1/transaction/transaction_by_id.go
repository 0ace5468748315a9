package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// transactionByID is the interface for operations on a single transaction.
type transactionByID interface {
	GetTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID) (*service.Transaction, error)
	UpdateTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error)
	DeleteTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID) error
}

// TransactionPathInput identifies one transaction.
type TransactionPathInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// UpdateTransactionBody is the request body for editing a transaction.
// Absent fields are left unchanged.
type UpdateTransactionBody struct {
	Type            *string               `json:"type,omitempty" doc:"revenue or expense"`
	Amount          *float64              `json:"amount,omitempty" doc:"Non-negative amount with at most two decimal places"`
	Description     fields.NullableString `json:"description,omitempty" doc:"New description, null to clear"`
	TransactionDate *string               `json:"transactionDate,omitempty" format:"date" doc:"Calendar date"`
}

// UpdateTransactionInput is the Huma input for editing a transaction.
type UpdateTransactionInput struct {
	TransactionPathInput
	Body UpdateTransactionBody
}

// TransactionByIDHandler handles GET, PATCH and DELETE /v1/transactions/{id}.
type TransactionByIDHandler struct {
	TransactionService transactionByID
}

// NewTransactionByIDHandler creates a new TransactionByIDHandler.
func NewTransactionByIDHandler(svc transactionByID) *TransactionByIDHandler {
	return &TransactionByIDHandler{TransactionService: svc}
}

// Register registers the single-transaction endpoints with the Huma API.
func (h *TransactionByIDHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transactions/{id}",
		Summary:     "Edit transaction",
		Description: "Changes the submitted fields. An invalid field rejects the whole edit.",
		Tags:        []string{"Transactions"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transactions/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

// parseUpdateTransactionBody converts the submitted fields into a patch.
func parseUpdateTransactionBody(body *UpdateTransactionBody) (service.TransactionPatch, error) {
	patch := service.TransactionPatch{
		Type:        omit.FromPtr(body.Type),
		Description: body.Description.Val,
	}
	if body.Amount != nil {
		patch.Amount = omit.From(fields.Amount(*body.Amount))
	}
	if body.TransactionDate != nil {
		d, err := fields.ParseDate(*body.TransactionDate)
		if err != nil {
			return patch, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
		patch.TransactionDate = omit.From(d)
	}
	return patch, nil
}

func (h *TransactionByIDHandler) get(ctx context.Context, input *TransactionPathInput) (*TransactionOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	id, err := parseID(input.ID, "transaction id")
	if err != nil {
		return nil, err
	}

	found, err := h.TransactionService.GetTransaction(ctx, identity, id)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return &TransactionOutput{Body: fromService(found)}, nil
}

func (h *TransactionByIDHandler) update(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	id, err := parseID(input.ID, "transaction id")
	if err != nil {
		return nil, err
	}
	patch, err := parseUpdateTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	updated, err := h.TransactionService.UpdateTransaction(ctx, identity, id, patch)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return &TransactionOutput{Body: fromService(updated)}, nil
}

func (h *TransactionByIDHandler) delete(ctx context.Context, input *TransactionPathInput) (*struct{}, error) {
	identity, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	id, err := parseID(input.ID, "transaction id")
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.DeleteTransaction(ctx, identity, id); err != nil {
		return nil, httperr.Respond(ctx, err)
	}
	return nil, nil
}
