package repository

import (
	"context"
	"time"

	"github.com/eslsoft/ordasafn/internal/entity"
)

// WriteStatus tells what a write did to the stored row.
type WriteStatus int

const (
	StatusUnchanged WriteStatus = iota
	StatusCreated
	StatusUpdated
)

func (s WriteStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// WriteResult reports the outcome of EntryRepository.Write.
type WriteResult struct {
	ID      int64
	Status  WriteStatus
	Changes []string
}

// ListEntryQuery selects entries for export.
type ListEntryQuery struct {
	FilterOrder
	// Since keeps entries edited at or after this instant.
	Since *time.Time
}

// EntryRepository persists fully materialized entries.
type EntryRepository interface {
	// Write stores e in one transaction. Rows of an existing entry are
	// rewritten only when its content differs; the edited stamp moves
	// only then.
	Write(ctx context.Context, e *entity.Entry) (*WriteResult, error)
	GetByID(ctx context.Context, id int64) (*entity.Entry, error)
	GetByIdentity(ctx context.Context, identity string) (*entity.Entry, error)
	// ListIDs returns the ids of matching entries in ascending order.
	ListIDs(ctx context.Context, query *ListEntryQuery) ([]int64, error)
}
