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
)

type CreateApp struct {
	Actor       *access.Identity
	OwnerID     uuid.UUID
	AppName     string
	Description null.Val[string]
	URL         null.Val[string]

	Result *app.App
}

func (c *CreateApp) Name() string { return "create_app" }

func (c *CreateApp) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := access.RequireMutate(c.Actor, c.OwnerID); err != nil {
		return err
	}

	created, err := writer.Apps.Insert(ctx, &app.AppCreate{
		OwnerID:     c.OwnerID,
		Name:        c.AppName,
		Description: c.Description,
		URL:         c.URL,
	})
	if err != nil {
		return fmt.Errorf("insert app: %w", err)
	}

	err = writeAudit(ctx, writer, c.Actor, auditEntry{
		action:     changelog.ActionCreateApp,
		entityType: changelog.EntityApp,
		entityID:   created.ID,
		appID:      created.ID,
		after:      appSnapshot(created),
	})
	if err != nil {
		return err
	}

	c.Result = created
	return nil
}

// UpdateApp applies a partial update. An update that leaves every field as
// it was writes neither the app nor the change log.
type UpdateApp struct {
	Actor  *access.Identity
	AppID  uuid.UUID
	Update app.AppUpdate

	Result *app.App
}

func (u *UpdateApp) Name() string { return "update_app" }

func (u *UpdateApp) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Apps.FindByIDForUpdate(ctx, u.AppID)
	if err != nil {
		return err
	}
	if err := access.RequireMutate(u.Actor, existing.OwnerID); err != nil {
		return err
	}

	before, after := changedFields(appSnapshot(existing), appSnapshot(applyAppUpdate(*existing, &u.Update)))
	if after == nil {
		u.Result = existing
		return nil
	}

	updated, err := writer.Apps.Update(ctx, u.AppID, &u.Update)
	if err != nil {
		return fmt.Errorf("update app: %w", err)
	}

	err = writeAudit(ctx, writer, u.Actor, auditEntry{
		action:     changelog.ActionEditApp,
		entityType: changelog.EntityApp,
		entityID:   updated.ID,
		appID:      updated.ID,
		before:     before,
		after:      after,
	})
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}

func applyAppUpdate(a app.App, update *app.AppUpdate) *app.App {
	if name, ok := update.Name.Get(); ok {
		a.Name = name
	}
	if !update.Description.IsUnset() {
		a.Description = null.FromPtr(update.Description.MustPtr())
	}
	if !update.URL.IsUnset() {
		a.URL = null.FromPtr(update.URL.MustPtr())
	}
	return &a
}

// DeleteApp removes an app and, through the foreign key cascade, its
// transactions. Only the app deletion is logged.
type DeleteApp struct {
	Actor *access.Identity
	AppID uuid.UUID

	Result *app.App
}

func (d *DeleteApp) Name() string { return "delete_app" }

func (d *DeleteApp) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Apps.FindByIDForUpdate(ctx, d.AppID)
	if err != nil {
		return err
	}
	if err := access.RequireMutate(d.Actor, existing.OwnerID); err != nil {
		return err
	}

	err = writeAudit(ctx, writer, d.Actor, auditEntry{
		action:     changelog.ActionDeleteApp,
		entityType: changelog.EntityApp,
		entityID:   existing.ID,
		appID:      existing.ID,
		before:     appSnapshot(existing),
	})
	if err != nil {
		return err
	}

	if err := writer.Apps.Delete(ctx, d.AppID); err != nil {
		return fmt.Errorf("delete app: %w", err)
	}

	d.Result = existing
	return nil
}
