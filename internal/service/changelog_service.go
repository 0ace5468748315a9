package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/changelog"
)

const (
	defaultChangeLimit = 50
	maxChangeLimit     = 100
)

// ChangeLogService reads the audit trail.
type ChangeLogService struct {
	storage *storage.Storage
}

// NewChangeLogService creates a new ChangeLogService.
func NewChangeLogService(store *storage.Storage) *ChangeLogService {
	return &ChangeLogService{storage: store}
}

// ClampChangeLimit bounds a requested page size. Zero selects the default.
func ClampChangeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultChangeLimit
	case limit > maxChangeLimit:
		return maxChangeLimit
	}
	return limit
}

// ListChanges returns a page of entries, newest first, using cursor-based
// pagination. A nil appID lists every entry.
func (s *ChangeLogService) ListChanges(ctx context.Context, appID *uuid.UUID, cursor *ChangeCursor) ([]ChangeEntry, *ChangeCursor, error) {
	limit := defaultChangeLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = ClampChangeLimit(cursor.Limit)
		offset = cursor.Position
		if !cursor.MaxCreationTime.IsZero() {
			maxCreationTime = &cursor.MaxCreationTime
		}
	}

	filter := &changelog.EntryFilter{
		AppID:           appID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.ChangeLog.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return []ChangeEntry{}, nil, nil
	}

	var nextCursor *ChangeCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &ChangeCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	entries := make([]ChangeEntry, len(rows))
	for i, row := range rows {
		entries[i] = changeEntryFromStorage(row)
	}
	return entries, nextCursor, nil
}
