package timeline

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for timeline read and purge
// operations. Writes happen through Insert so callers can pair them
// with detection mutations in a single transaction.
type System interface {
	Handler() *Handler

	ListByInspection(ctx context.Context, inspectionNumber string) ([]Event, error)
	ListByDetection(ctx context.Context, detectionID uuid.UUID) ([]Event, error)
	DeleteAllByInspection(ctx context.Context, inspectionNumber string) error
}
