package actions

import (
	"context"
	"fmt"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/transaction"
)

const snapshotDateLayout = "2006-01-02"

type auditEntry struct {
	action     changelog.Action
	entityType changelog.EntityType
	entityID   uuid.UUID
	appID      uuid.UUID
	before     changelog.Snapshot
	after      changelog.Snapshot
}

func writeAudit(ctx context.Context, writer *storage.Writer, actor *access.Identity, e auditEntry) error {
	_, err := writer.ChangeLog.Insert(ctx, &changelog.EntryCreate{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     e.action,
		EntityType: e.entityType,
		EntityID:   e.entityID,
		AppID:      e.appID,
		Before:     e.before,
		After:      e.after,
	})
	if err != nil {
		return fmt.Errorf("write change log: %w", err)
	}
	return nil
}

func appSnapshot(a *app.App) changelog.Snapshot {
	return changelog.Snapshot{
		"name":        a.Name,
		"description": optional(a.Description),
		"url":         optional(a.URL),
	}
}

func transactionSnapshot(t *transaction.Transaction) changelog.Snapshot {
	return changelog.Snapshot{
		"type":             string(t.Type),
		"amount":           t.Amount.StringFixed(2),
		"description":      optional(t.Description),
		"transaction_date": t.TransactionDate.Format(snapshotDateLayout),
	}
}

func optional(v null.Val[string]) any {
	if s, ok := v.Get(); ok {
		return s
	}
	return nil
}

// changedFields keeps only the keys whose values differ. Both results are nil
// when nothing changed.
func changedFields(before, after changelog.Snapshot) (changelog.Snapshot, changelog.Snapshot) {
	b := changelog.Snapshot{}
	a := changelog.Snapshot{}
	for k, av := range after {
		if bv := before[k]; bv != av {
			b[k] = bv
			a[k] = av
		}
	}
	if len(a) == 0 {
		return nil, nil
	}
	return b, a
}
