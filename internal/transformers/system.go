package transformers

import (
	"context"

	"github.com/gridsight/gridsight/pkg/pagination"
	"github.com/gridsight/gridsight/pkg/storage"
)

// System defines the public contract for transformer domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Transformer], error)

	Find(ctx context.Context, number string) (*Transformer, error)
	Create(ctx context.Context, cmd CreateCommand) (*Transformer, error)
	Delete(ctx context.Context, number string) error

	AttachImage(ctx context.Context, number string, cmd ImageCommand) (*Transformer, error)
	Image(ctx context.Context, number string) (*storage.Object, error)
}
