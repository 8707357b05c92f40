package comments

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for comment domain operations.
type System interface {
	Handler() *Handler

	ListByInspection(ctx context.Context, inspectionNumber string) ([]Comment, error)
	Create(ctx context.Context, inspectionNumber string, cmd CreateCommand) (*Comment, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
