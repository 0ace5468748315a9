package changelog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "change_log"

var columns = []any{"id", "actor_id", "actor_name", "action", "entity_type", "entity_id", "app_id", "before", "after", "created_at"}

// Action is the kind of mutation an entry records.
type Action string

const (
	ActionCreateApp         Action = "create_app"
	ActionEditApp           Action = "edit_app"
	ActionDeleteApp         Action = "delete_app"
	ActionAddTransaction    Action = "add_transaction"
	ActionEditTransaction   Action = "edit_transaction"
	ActionDeleteTransaction Action = "delete_transaction"
)

// EntityType is the kind of record an entry is about.
type EntityType string

const (
	EntityApp         EntityType = "app"
	EntityTransaction EntityType = "transaction"
)

// Snapshot is a JSON object view of an entity. Nil means absent.
type Snapshot map[string]any

// Entry represents a change log record. Entries are never modified.
type Entry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	ActorName  string
	Action     Action
	EntityType EntityType
	EntityID   uuid.UUID
	AppID      uuid.UUID
	Before     Snapshot
	After      Snapshot
	CreatedAt  time.Time
}

// EntryCreate is the input for appending an entry.
type EntryCreate struct {
	ActorID    uuid.UUID
	ActorName  string
	Action     Action
	EntityType EntityType
	EntityID   uuid.UUID
	AppID      uuid.UUID
	Before     Snapshot
	After      Snapshot
}

// EntryFilter specifies filters for listing entries, newest first.
type EntryFilter struct {
	AppID           *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// IReader defines read access to the change log.
type IReader interface {
	List(ctx context.Context, filter *EntryFilter) ([]*Entry, error)
}

// IWriter appends to the change log. There is no update or delete.
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *EntryCreate) (*Entry, error)
}

type entryRow struct {
	ID         uuid.UUID `db:"id"`
	ActorID    uuid.UUID `db:"actor_id"`
	ActorName  string    `db:"actor_name"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	AppID      uuid.UUID `db:"app_id"`
	Before     []byte    `db:"before"`
	After      []byte    `db:"after"`
	CreatedAt  time.Time `db:"created_at"`
}

func rowToEntry(row entryRow) (*Entry, error) {
	before, err := decodeSnapshot(row.Before)
	if err != nil {
		return nil, err
	}
	after, err := decodeSnapshot(row.After)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:         row.ID,
		ActorID:    row.ActorID,
		ActorName:  row.ActorName,
		Action:     Action(row.Action),
		EntityType: EntityType(row.EntityType),
		EntityID:   row.EntityID,
		AppID:      row.AppID,
		Before:     before,
		After:      after,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func decodeSnapshot(raw []byte) (Snapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// encodeSnapshot returns the jsonb argument for s; nil stores SQL NULL.
// lib/pq sends []byte as bytea, so the document goes over the wire as text.
func encodeSnapshot(s Snapshot) (any, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
