package inspections

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

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

// New creates an inspection repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "inspections"),
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
) (*pagination.PageResult[Inspection], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "InspectionNumber", "TransformerNumber", "Branch")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count inspections: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanInspection)
	if err != nil {
		return nil, fmt.Errorf("query inspections: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, number string) (*Inspection, error) {
	q, args := query.NewBuilder(projection).BuildSingle("InspectionNumber", number)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanInspection)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Inspection, error) {
	inspected, maintenance, err := cmd.validate()
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO inspections(inspection_number, transformer_number, branch, inspected_date, inspected_time, maintenance_date, maintenance_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING inspection_number, transformer_number, branch, inspected_date, inspected_time, maintenance_date, maintenance_time, status, image_key, image_content_type, created_at`

	insertArgs := []any{
		cmd.InspectionNumber,
		cmd.TransformerNumber,
		cmd.Branch,
		inspected,
		cmd.InspectedTime,
		maintenance,
		cmd.MaintenanceTime,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Inspection, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanInspection)
	})

	if err != nil {
		// a missing-reference violation here means the transformer does not exist
		return nil, repository.MapError(err, ErrTransformerMissing, ErrDuplicate)
	}

	r.logger.Info(
		"inspection created",
		"number", i.InspectionNumber,
		"transformer", i.TransformerNumber,
	)
	return &i, nil
}

func (r *repo) Update(ctx context.Context, number string, cmd UpdateCommand) (*Inspection, error) {
	current, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(current, cmd); err != nil {
		return nil, err
	}

	q := `
		UPDATE inspections
		SET branch = $1, inspected_date = $2, inspected_time = $3, maintenance_date = $4, maintenance_time = $5, status = $6
		WHERE inspection_number = $7
		RETURNING inspection_number, transformer_number, branch, inspected_date, inspected_time, maintenance_date, maintenance_time, status, image_key, image_content_type, created_at`

	updateArgs := []any{
		current.Branch,
		current.InspectedDate,
		current.InspectedTime,
		current.MaintenanceDate,
		current.MaintenanceTime,
		current.Status,
		number,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Inspection, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanInspection)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("inspection updated", "number", number)
	return &i, nil
}

func (r *repo) Delete(ctx context.Context, number string) error {
	i, err := r.Find(ctx, number)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM inspections WHERE inspection_number = $1",
			number,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if i.ImageKey != nil {
		if delErr := r.storage.Delete(ctx, *i.ImageKey); delErr != nil {
			r.logger.Warn(
				"image delete failed after DB delete",
				"key", *i.ImageKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("inspection deleted", "number", number)
	return nil
}

func (r *repo) AttachImage(ctx context.Context, number string, cmd ImageCommand) (*Inspection, error) {
	current, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}

	key := buildImageKey(number, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload inspection image: %w", err)
	}

	q := `
		UPDATE inspections
		SET image_key = $1, image_content_type = $2, status = $3
		WHERE inspection_number = $4
		RETURNING inspection_number, transformer_number, branch, inspected_date, inspected_time, maintenance_date, maintenance_time, status, image_key, image_content_type, created_at`

	status := current.Status
	if status == StatusPending {
		status = StatusInProgress
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Inspection, error) {
		return repository.QueryOne(ctx, tx, q, []any{key, cmd.ContentType, status, number}, scanInspection)
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

	r.logger.Info("inspection image attached", "number", number, "key", key)
	return &i, nil
}

func (r *repo) Image(ctx context.Context, number string) (*storage.Object, error) {
	i, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}

	if i.ImageKey == nil {
		return nil, ErrNoImage
	}

	return r.storage.Download(ctx, *i.ImageKey)
}

func applyUpdate(i *Inspection, cmd UpdateCommand) error {
	if cmd.Branch != nil {
		i.Branch = *cmd.Branch
	}
	if cmd.InspectedDate != nil {
		d, err := time.Parse(dateLayout, *cmd.InspectedDate)
		if err != nil {
			return ErrInvalidDate
		}
		i.InspectedDate = d
	}
	if cmd.InspectedTime != nil {
		i.InspectedTime = *cmd.InspectedTime
	}
	if cmd.MaintenanceDate != nil {
		if *cmd.MaintenanceDate == "" {
			i.MaintenanceDate = nil
		} else {
			d, err := time.Parse(dateLayout, *cmd.MaintenanceDate)
			if err != nil {
				return ErrInvalidDate
			}
			i.MaintenanceDate = &d
		}
	}
	if cmd.MaintenanceTime != nil {
		i.MaintenanceTime = cmd.MaintenanceTime
	}
	if cmd.Status != nil {
		if !validStatus(*cmd.Status) {
			return ErrInvalidStatus
		}
		i.Status = *cmd.Status
	}
	return nil
}

func buildImageKey(number, filename string) string {
	return fmt.Sprintf("inspections/%s/%s", number, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "image"
	}
	return url.PathEscape(name)
}
