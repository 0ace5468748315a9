package service

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/app"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
)

// AppService handles app business logic.
type AppService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewAppService creates a new AppService.
func NewAppService(store *storage.Storage, processor ActionProcessor) *AppService {
	return &AppService{storage: store, processor: processor}
}

// ListApps returns the caller's apps, or every app for an administrator,
// newest first.
func (s *AppService) ListApps(ctx context.Context, identity *access.Identity) ([]App, error) {
	filter := &app.AppFilter{NewestFirst: true}
	if !identity.Role.IsAdmin() {
		filter.OwnerID = &identity.ID
	}

	rows, err := s.storage.Apps.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []App{}, nil
	}

	ownerIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if !seen[row.OwnerID] {
			seen[row.OwnerID] = true
			ownerIDs = append(ownerIDs, row.OwnerID)
		}
	}
	owners, err := s.storage.Participants.List(ctx, &participant.ParticipantFilter{IDs: ownerIDs})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}

	result := make([]App, len(rows))
	for i, row := range rows {
		name, ok := names[row.OwnerID]
		if !ok {
			name = profit.UnknownName
		}
		result[i] = appFromStorage(row, name)
	}
	return result, nil
}

// GetApp returns one app the caller may view.
func (s *AppService) GetApp(ctx context.Context, identity *access.Identity, id uuid.UUID) (*App, error) {
	row, err := s.findViewable(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	result := appFromStorage(row, s.ownerName(ctx, row.OwnerID))
	return &result, nil
}

// CreateApp validates the input and creates an app owned by the caller.
func (s *AppService) CreateApp(ctx context.Context, identity *access.Identity, input AppInput) (*App, error) {
	name, err := validateAppName(input.Name)
	if err != nil {
		return nil, err
	}
	description, err := normaliseText("description", input.Description, maxAppDescriptionLength)
	if err != nil {
		return nil, err
	}
	appURL, err := normaliseURL(input.URL)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateApp{
		Actor:       identity,
		OwnerID:     identity.ID,
		AppName:     name,
		Description: description,
		URL:         appURL,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	result := appFromStorage(action.Result, identity.Name)
	return &result, nil
}

// UpdateApp applies the submitted fields. Any invalid field rejects the whole edit.
// A patch with no fields returns the app without opening a write.
func (s *AppService) UpdateApp(ctx context.Context, identity *access.Identity, id uuid.UUID, patch AppPatch) (*App, error) {
	current, err := s.findMutable(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	update := app.AppUpdate{}
	if name, ok := patch.Name.Get(); ok {
		validName, err := validateAppName(name)
		if err != nil {
			return nil, err
		}
		update.Name = omit.From(validName)
	}
	if update.Description, err = patchText("description", patch.Description, maxAppDescriptionLength); err != nil {
		return nil, err
	}
	if update.URL, err = patchURL(patch.URL); err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		result := appFromStorage(current, s.ownerName(ctx, current.OwnerID))
		return &result, nil
	}

	action := &actions.UpdateApp{Actor: identity, AppID: id, Update: update}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	result := appFromStorage(action.Result, s.ownerName(ctx, action.Result.OwnerID))
	return &result, nil
}

// DeleteApp removes the app and all of its transactions.
func (s *AppService) DeleteApp(ctx context.Context, identity *access.Identity, id uuid.UUID) error {
	if _, err := s.findMutable(ctx, identity, id); err != nil {
		return err
	}
	return s.processor.Process(ctx, &actions.DeleteApp{Actor: identity, AppID: id})
}

func (s *AppService) findViewable(ctx context.Context, identity *access.Identity, id uuid.UUID) (*app.App, error) {
	row, err := s.storage.Apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireView(identity, row.OwnerID); err != nil {
		return nil, err
	}
	return row, nil
}

// findMutable checks permission before input validation so a caller learns
// about a missing or foreign app first. The action checks again under a row lock.
func (s *AppService) findMutable(ctx context.Context, identity *access.Identity, id uuid.UUID) (*app.App, error) {
	row, err := s.storage.Apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireMutate(identity, row.OwnerID); err != nil {
		return nil, err
	}
	return row, nil
}

// ownerName falls back to Unknown when the owner cannot be read.
func (s *AppService) ownerName(ctx context.Context, ownerID uuid.UUID) string {
	owner, err := s.storage.Participants.FindByID(ctx, ownerID)
	if err != nil {
		return profit.UnknownName
	}
	return owner.Name
}
