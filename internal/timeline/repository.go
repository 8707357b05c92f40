package timeline

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

// Insert appends one ledger entry. It takes a Querier so detection
// mutations can pass their open transaction, making the event and the
// mutation commit or roll back together.
func Insert(ctx context.Context, q repository.Querier, cmd Command) (*Event, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO detection_events(id, detection_id, inspection_number, kind, author, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, seq, detection_id, inspection_number, kind, author, comment, created_at`

	args := []any{
		uuid.New(),
		cmd.DetectionID,
		cmd.InspectionNumber,
		cmd.Kind,
		cmd.Author,
		cmd.Comment,
	}

	e, err := repository.QueryOne(ctx, q, stmt, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("insert detection event: %w", err)
	}

	return &e, nil
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a timeline repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "timeline"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByInspection(ctx context.Context, inspectionNumber string) ([]Event, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("InspectionNumber", inspectionNumber).
		Build()

	events, err := repository.QueryMany(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query inspection timeline: %w", err)
	}
	return events, nil
}

func (r *repo) ListByDetection(ctx context.Context, detectionID uuid.UUID) ([]Event, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("DetectionID", detectionID).
		Build()

	events, err := repository.QueryMany(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query detection timeline: %w", err)
	}
	return events, nil
}

// DeleteAllByInspection purges every event for an inspection. Removing
// zero rows is not an error; purging an empty or unknown inspection is a
// no-op.
func (r *repo) DeleteAllByInspection(ctx context.Context, inspectionNumber string) error {
	result, err := r.db.ExecContext(
		ctx,
		"DELETE FROM detection_events WHERE inspection_number = $1",
		inspectionNumber,
	)
	if err != nil {
		return fmt.Errorf("purge inspection timeline: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		r.logger.Info(
			"timeline purged",
			"inspection", inspectionNumber,
			"events", affected,
		)
	}

	return nil
}
