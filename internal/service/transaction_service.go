package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
)

// TransactionService handles transaction business logic. Permission is
// always decided through the owning app.
type TransactionService struct {
	storage   *storage.Storage
	processor ActionProcessor
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor ActionProcessor, now func() time.Time) *TransactionService {
	return &TransactionService{storage: store, processor: processor, now: utcClock(now)}
}

// ListForApp returns the app's transactions, most recent transaction date first.
func (s *TransactionService) ListForApp(ctx context.Context, identity *access.Identity, appID uuid.UUID) ([]Transaction, error) {
	owningApp, err := s.storage.Apps.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireView(identity, owningApp.OwnerID); err != nil {
		return nil, err
	}

	rows, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{AppID: &appID, NewestFirst: true})
	if err != nil {
		return nil, err
	}

	result := make([]Transaction, len(rows))
	for i, row := range rows {
		result[i] = transactionFromStorage(row)
	}
	return result, nil
}

// GetTransaction returns one transaction the caller may view.
func (s *TransactionService) GetTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owningApp, err := s.storage.Apps.FindByID(ctx, row.AppID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireView(identity, owningApp.OwnerID); err != nil {
		return nil, err
	}
	result := transactionFromStorage(row)
	return &result, nil
}

// CreateTransaction validates the input and records it against the app.
// A missing date means today.
func (s *TransactionService) CreateTransaction(ctx context.Context, identity *access.Identity, appID uuid.UUID, input TransactionInput) (*Transaction, error) {
	owningApp, err := s.storage.Apps.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireMutate(identity, owningApp.OwnerID); err != nil {
		return nil, err
	}

	txType, err := validateTransactionType(input.Type)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	description, err := normaliseText("description", input.Description, maxTransactionDescriptionLength)
	if err != nil {
		return nil, err
	}
	now := s.now()
	date := now
	if input.TransactionDate != nil {
		date = *input.TransactionDate
	}
	day, err := validateTransactionDate(date, now)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		Actor:           identity,
		AppID:           appID,
		Type:            txType,
		Amount:          input.Amount,
		Description:     description,
		TransactionDate: day,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	result := transactionFromStorage(action.Result)
	return &result, nil
}

// UpdateTransaction applies the submitted fields. Any invalid field rejects the whole edit.
// A patch with no fields returns the transaction without opening a write.
func (s *TransactionService) UpdateTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	current, err := s.findMutable(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	update := transaction.TransactionUpdate{}
	if v, ok := patch.Type.Get(); ok {
		txType, err := validateTransactionType(v)
		if err != nil {
			return nil, err
		}
		update.Type = omit.From(txType)
	}
	if v, ok := patch.Amount.Get(); ok {
		if err := validateAmount(v); err != nil {
			return nil, err
		}
		update.Amount = omit.From(v)
	}
	if update.Description, err = patchText("description", patch.Description, maxTransactionDescriptionLength); err != nil {
		return nil, err
	}
	if v, ok := patch.TransactionDate.Get(); ok {
		day, err := validateTransactionDate(v, s.now())
		if err != nil {
			return nil, err
		}
		update.TransactionDate = omit.From(day)
	}
	if update.IsEmpty() {
		result := transactionFromStorage(current)
		return &result, nil
	}

	action := &actions.UpdateTransaction{Actor: identity, TransactionID: id, Update: update}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	result := transactionFromStorage(action.Result)
	return &result, nil
}

// DeleteTransaction removes one transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, identity *access.Identity, id uuid.UUID) error {
	if _, err := s.findMutable(ctx, identity, id); err != nil {
		return err
	}
	return s.processor.Process(ctx, &actions.DeleteTransaction{Actor: identity, TransactionID: id})
}

func (s *TransactionService) findMutable(ctx context.Context, identity *access.Identity, id uuid.UUID) (*transaction.Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owningApp, err := s.storage.Apps.FindByID(ctx, row.AppID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireMutate(identity, owningApp.OwnerID); err != nil {
		return nil, err
	}
	return row, nil
}
