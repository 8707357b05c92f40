package inspections

import (
	"context"

	"github.com/gridsight/gridsight/pkg/pagination"
	"github.com/gridsight/gridsight/pkg/storage"
)

// System defines the public contract for inspection domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Inspection], error)

	Find(ctx context.Context, number string) (*Inspection, error)
	Create(ctx context.Context, cmd CreateCommand) (*Inspection, error)
	Update(ctx context.Context, number string, cmd UpdateCommand) (*Inspection, error)
	Delete(ctx context.Context, number string) error

	AttachImage(ctx context.Context, number string, cmd ImageCommand) (*Inspection, error)
	Image(ctx context.Context, number string) (*storage.Object, error)
}
