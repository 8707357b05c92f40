package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for maintenance domain operations.
type System interface {
	Handler() *Handler

	ListByInspection(ctx context.Context, inspectionNumber string) ([]Record, error)
	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	Create(ctx context.Context, inspectionNumber string, cmd CreateCommand) (*Record, error)

	// Report assembles the full maintenance picture for a record,
	// fetching its inspection, transformer, and detections concurrently.
	Report(ctx context.Context, id uuid.UUID) (*Report, error)
}
