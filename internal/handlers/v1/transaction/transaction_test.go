package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
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

// mockTransactionService is a mock for every transaction handler interface.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) ListForApp(ctx context.Context, identity *access.Identity, appID uuid.UUID) ([]service.Transaction, error) {
	args := m.Called(ctx, identity, appID)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID) (*service.Transaction, error) {
	args := m.Called(ctx, identity, id)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, identity *access.Identity, appID uuid.UUID, input service.TransactionInput) (*service.Transaction, error) {
	args := m.Called(ctx, identity, appID, input)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error) {
	args := m.Called(ctx, identity, id, patch)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID) error {
	return m.Called(ctx, identity, id).Error(0)
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, identity *access.Identity, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	return handlertest.New(t, identity,
		NewListTransactionsHandler(svc),
		NewCreateTransactionHandler(svc),
		NewTransactionByIDHandler(svc),
	)
}

func newServiceTransaction(appID uuid.UUID) *service.Transaction {
	return &service.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		AppID:           appID,
		Type:            profit.Revenue,
		Amount:          decimal.RequireFromString("12.5"),
		TransactionDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
	}
}

// -- parseCreateTransactionInput unit tests --

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	appID := uuid.Must(uuid.NewV4())
	description := "Subscriptions"

	parsedAppID, parsed, err := parseCreateTransactionInput(&CreateTransactionInput{
		AppID: appID.String(),
		Body: CreateTransactionBody{
			Type:            "revenue",
			Amount:          123.45,
			Description:     &description,
			TransactionDate: "2026-01-15",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, appID, parsedAppID)
	assert.Equal(t, "revenue", parsed.Type)
	assert.True(t, parsed.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, "Subscriptions", *parsed.Description)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *parsed.TransactionDate)
}

func TestParseCreateTransactionInput_WithoutDate(t *testing.T) {
	_, parsed, err := parseCreateTransactionInput(&CreateTransactionInput{
		AppID: uuid.Must(uuid.NewV4()).String(),
		Body:  CreateTransactionBody{Type: "expense", Amount: 0},
	})

	require.NoError(t, err)
	assert.Nil(t, parsed.TransactionDate)
	assert.True(t, parsed.Amount.IsZero())
}

func TestParseCreateTransactionInput_InvalidDate(t *testing.T) {
	_, _, err := parseCreateTransactionInput(&CreateTransactionInput{
		AppID: uuid.Must(uuid.NewV4()).String(),
		Body:  CreateTransactionBody{Type: "expense", TransactionDate: "15/01/2026"},
	})

	assert.Error(t, err)
}

func TestParseUpdateTransactionBody(t *testing.T) {
	amount := 7.25
	date := "2026-02-01"

	patch, err := parseUpdateTransactionBody(&UpdateTransactionBody{Amount: &amount, TransactionDate: &date})

	require.NoError(t, err)
	assert.True(t, patch.Type.IsUnset())
	assert.True(t, patch.Description.IsUnset())
	assert.True(t, patch.Amount.GetOrZero().Equal(decimal.RequireFromString("7.25")))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), patch.TransactionDate.GetOrZero())
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_ListTransactions_Success(t *testing.T) {
	ada := handlertest.Participant("ada")
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("ListForApp", mock.Anything, ada, appID).
		Return([]service.Transaction{*newServiceTransaction(appID)}, nil)

	resp := newTestAPI(t, ada, svc).Get("/v1/apps/" + appID.String() + "/transactions")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 1)
	assert.Equal(t, "12.50", body.Transactions[0].Amount)
	assert.Equal(t, "2026-02-10", body.Transactions[0].TransactionDate)
	assert.Equal(t, "revenue", body.Transactions[0].Type)
	svc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_Forbidden(t *testing.T) {
	ada := handlertest.Participant("ada")
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("ListForApp", mock.Anything, ada, appID).Return(nil, apperr.Forbidden("not permitted to view this resource"))

	resp := newTestAPI(t, ada, svc).Get("/v1/apps/" + appID.String() + "/transactions")

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	ada := handlertest.Participant("ada")
	appID := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("CreateTransaction", mock.Anything, ada, appID, mock.MatchedBy(func(in service.TransactionInput) bool {
		return in.Type == "revenue" &&
			in.Amount.Equal(decimal.RequireFromString("12.50")) &&
			in.TransactionDate == nil
	})).Return(newServiceTransaction(appID), nil)

	resp := newTestAPI(t, ada, svc).Post("/v1/apps/"+appID.String()+"/transactions", map[string]any{
		"type":   "revenue",
		"amount": 12.5,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, appID.String(), body.AppID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	svc := new(mockTransactionService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, handlertest.Participant("ada"), svc).
		Post("/v1/apps/"+uuid.Must(uuid.NewV4()).String()+"/transactions", map[string]any{"type": "revenue"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidTransactionDate(t *testing.T) {
	svc := new(mockTransactionService)

	// Huma's format:"date" schema validation rejects this before the handler runs.
	resp := newTestAPI(t, handlertest.Participant("ada"), svc).
		Post("/v1/apps/"+uuid.Must(uuid.NewV4()).String()+"/transactions", map[string]any{
			"type":            "revenue",
			"amount":          1,
			"transactionDate": "not-a-date",
		})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_DomainValidation(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperr.Validation("amount must not be negative"))

	resp := newTestAPI(t, handlertest.Participant("ada"), svc).
		Post("/v1/apps/"+uuid.Must(uuid.NewV4()).String()+"/transactions", map[string]any{
			"type":   "expense",
			"amount": -3,
		})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateTransaction_ServiceError(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	resp := newTestAPI(t, handlertest.Participant("ada"), svc).
		Post("/v1/apps/"+uuid.Must(uuid.NewV4()).String()+"/transactions", map[string]any{
			"type":   "expense",
			"amount": 3,
		})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_Anonymous(t *testing.T) {
	svc := new(mockTransactionService)

	resp := newTestAPI(t, nil, svc).
		Post("/v1/apps/"+uuid.Must(uuid.NewV4()).String()+"/transactions", map[string]any{
			"type":   "expense",
			"amount": 3,
		})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHTTP_UpdateTransaction_ClearsDescription(t *testing.T) {
	ada := handlertest.Participant("ada")
	existing := newServiceTransaction(uuid.Must(uuid.NewV4()))
	svc := new(mockTransactionService)
	svc.On("UpdateTransaction", mock.Anything, ada, existing.ID, mock.MatchedBy(func(p service.TransactionPatch) bool {
		return p.Description.IsNull() && p.Type.GetOrZero() == "expense" && p.Amount.IsUnset()
	})).Return(existing, nil)

	resp := newTestAPI(t, ada, svc).Patch("/v1/transactions/"+existing.ID.String(), map[string]any{
		"type":        "expense",
		"description": nil,
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, mock.Anything, id).Return(nil, apperr.NotFound("transaction not found"))

	resp := newTestAPI(t, handlertest.Admin("root"), svc).Get("/v1/transactions/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockTransactionService)
	svc.On("DeleteTransaction", mock.Anything, mock.Anything, id).Return(nil)

	resp := newTestAPI(t, handlertest.Participant("ada"), svc).Delete("/v1/transactions/" + id.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}
