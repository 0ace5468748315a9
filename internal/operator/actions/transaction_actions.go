package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
)

type CreateTransaction struct {
	Actor           *access.Identity
	AppID           uuid.UUID
	Type            profit.TransactionType
	Amount          decimal.Decimal
	Description     null.Val[string]
	TransactionDate time.Time

	Result *transaction.Transaction
}

func (t *CreateTransaction) Name() string { return "create_transaction" }

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	owningApp, err := writer.Apps.FindByIDForUpdate(ctx, t.AppID)
	if err != nil {
		return err
	}
	if err := access.RequireMutate(t.Actor, owningApp.OwnerID); err != nil {
		return err
	}

	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AppID:           t.AppID,
		Type:            t.Type,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	err = writeAudit(ctx, writer, t.Actor, auditEntry{
		action:     changelog.ActionAddTransaction,
		entityType: changelog.EntityTransaction,
		entityID:   created.ID,
		appID:      created.AppID,
		after:      transactionSnapshot(created),
	})
	if err != nil {
		return err
	}

	t.Result = created
	return nil
}

type UpdateTransaction struct {
	Actor         *access.Identity
	TransactionID uuid.UUID
	Update        transaction.TransactionUpdate

	Result *transaction.Transaction
}

func (u *UpdateTransaction) Name() string { return "update_transaction" }

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := lockTransactionForMutation(ctx, writer, u.Actor, u.TransactionID)
	if err != nil {
		return err
	}

	before, after := changedFields(
		transactionSnapshot(existing),
		transactionSnapshot(applyTransactionUpdate(*existing, &u.Update)),
	)
	if after == nil {
		u.Result = existing
		return nil
	}

	updated, err := writer.Transactions.Update(ctx, u.TransactionID, &u.Update)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	err = writeAudit(ctx, writer, u.Actor, auditEntry{
		action:     changelog.ActionEditTransaction,
		entityType: changelog.EntityTransaction,
		entityID:   updated.ID,
		appID:      updated.AppID,
		before:     before,
		after:      after,
	})
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}

func applyTransactionUpdate(t transaction.Transaction, update *transaction.TransactionUpdate) *transaction.Transaction {
	if v, ok := update.Type.Get(); ok {
		t.Type = v
	}
	if v, ok := update.Amount.Get(); ok {
		t.Amount = v
	}
	if !update.Description.IsUnset() {
		t.Description = null.FromPtr(update.Description.MustPtr())
	}
	if v, ok := update.TransactionDate.Get(); ok {
		t.TransactionDate = v
	}
	return &t
}

type DeleteTransaction struct {
	Actor         *access.Identity
	TransactionID uuid.UUID

	Result *transaction.Transaction
}

func (d *DeleteTransaction) Name() string { return "delete_transaction" }

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := lockTransactionForMutation(ctx, writer, d.Actor, d.TransactionID)
	if err != nil {
		return err
	}

	err = writeAudit(ctx, writer, d.Actor, auditEntry{
		action:     changelog.ActionDeleteTransaction,
		entityType: changelog.EntityTransaction,
		entityID:   existing.ID,
		appID:      existing.AppID,
		before:     transactionSnapshot(existing),
	})
	if err != nil {
		return err
	}

	if err := writer.Transactions.Delete(ctx, d.TransactionID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	d.Result = existing
	return nil
}

// lockTransactionForMutation locks the transaction row and checks the actor
// may change it through its owning app.
func lockTransactionForMutation(ctx context.Context, writer *storage.Writer, actor *access.Identity, id uuid.UUID) (*transaction.Transaction, error) {
	existing, err := writer.Transactions.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	owningApp, err := writer.Apps.FindByID(ctx, existing.AppID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireMutate(actor, owningApp.OwnerID); err != nil {
		return nil, err
	}
	return existing, nil
}
