package transformers

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/gridsight/gridsight/pkg/pagination"
	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
	"github.com/gridsight/gridsight/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a transformer repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "transformers"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Transformer], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "TransformerNumber", "PoleNumber", "Region")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count transformers: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTransformer)
	if err != nil {
		return nil, fmt.Errorf("query transformers: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, number string) (*Transformer, error) {
	q, args := query.NewBuilder(projection).BuildSingle("TransformerNumber", number)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTransformer)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Transformer, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO transformers(transformer_number, pole_number, region, type, location_details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transformer_number, pole_number, region, type, location_details, image_key, image_content_type, created_at`

	insertArgs := []any{
		cmd.TransformerNumber,
		cmd.PoleNumber,
		cmd.Region,
		cmd.Type,
		cmd.LocationDetails,
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Transformer, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanTransformer)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("transformer created", "number", t.TransformerNumber)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, number string) error {
	t, err := r.Find(ctx, number)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM transformers WHERE transformer_number = $1",
			number,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if t.ImageKey != nil {
		if delErr := r.storage.Delete(ctx, *t.ImageKey); delErr != nil {
			r.logger.Warn(
				"image delete failed after DB delete",
				"key", *t.ImageKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("transformer deleted", "number", number)
	return nil
}

func (r *repo) AttachImage(ctx context.Context, number string, cmd ImageCommand) (*Transformer, error) {
	current, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}

	key := buildImageKey(number, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload transformer image: %w", err)
	}

	q := `
		UPDATE transformers
		SET image_key = $1, image_content_type = $2
		WHERE transformer_number = $3
		RETURNING transformer_number, pole_number, region, type, location_details, image_key, image_content_type, created_at`

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Transformer, error) {
		return repository.QueryOne(ctx, tx, q, []any{key, cmd.ContentType, number}, scanTransformer)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating image delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if current.ImageKey != nil && *current.ImageKey != key {
		if delErr := r.storage.Delete(ctx, *current.ImageKey); delErr != nil {
			r.logger.Warn("stale image delete failed", "key", *current.ImageKey, "error", delErr)
		}
	}

	r.logger.Info("transformer image attached", "number", number, "key", key)
	return &t, nil
}

func (r *repo) Image(ctx context.Context, number string) (*storage.Object, error) {
	t, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}

	if t.ImageKey == nil {
		return nil, ErrNoImage
	}

	return r.storage.Download(ctx, *t.ImageKey)
}

func buildImageKey(number, filename string) string {
	return fmt.Sprintf("transformers/%s/%s", number, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "image"
	}
	return url.PathEscape(name)
}
