// Package timeline implements the append-only annotation ledger for
// GridSight. Every manual change to a detection produces exactly one
// event here, written in the same transaction as the change itself.
// Events are never updated; removal only happens when an inspection's
// whole history is purged.
package timeline

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds, one per manual detection mutation.
const (
	KindAdd    = "add"
	KindEdit   = "edit"
	KindDelete = "delete"
)

// Event is a single annotation ledger entry. DetectionID is nil once the
// detection it refers to has been removed; the entry itself remains.
type Event struct {
	ID               uuid.UUID  `json:"id"`
	Seq              int64      `json:"seq"`
	DetectionID      *uuid.UUID `json:"detection_id,omitempty"`
	InspectionNumber string     `json:"inspection_number"`
	Kind             string     `json:"kind"`
	Author           string     `json:"author"`
	Comment          string     `json:"comment"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Command carries the data for one new ledger entry.
type Command struct {
	DetectionID      *uuid.UUID
	InspectionNumber string
	Kind             string
	Author           string
	Comment          string
}

func (c Command) validate() error {
	switch c.Kind {
	case KindAdd, KindEdit, KindDelete:
	default:
		return ErrInvalidKind
	}
	if c.InspectionNumber == "" {
		return ErrMissingInspection
	}
	if c.Author == "" {
		return ErrMissingAuthor
	}
	return nil
}
