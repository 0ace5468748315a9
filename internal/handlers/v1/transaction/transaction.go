package transaction

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction UUID"`
	AppID           string  `json:"appId" doc:"App UUID"`
	Type            string  `json:"type" enum:"revenue,expense" doc:"Transaction type"`
	Amount          string  `json:"amount" doc:"Decimal amount with two places"`
	Description     *string `json:"description" doc:"Optional description"`
	TransactionDate string  `json:"transactionDate" format:"date" doc:"Calendar date of the transaction"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt       string  `json:"updatedAt" doc:"RFC3339 last update time"`
}

// TransactionOutput is the Huma output for operations returning one transaction.
type TransactionOutput struct {
	Body Transaction
}

func fromService(t *service.Transaction) Transaction {
	return Transaction{
		ID:              t.ID.String(),
		AppID:           t.AppID.String(),
		Type:            string(t.Type),
		Amount:          fields.Money(t.Amount),
		Description:     t.Description,
		TransactionDate: fields.Date(t.TransactionDate),
		CreatedAt:       fields.Timestamp(t.CreatedAt),
		UpdatedAt:       fields.Timestamp(t.UpdatedAt),
	}
}

func parseID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return id, nil
}
