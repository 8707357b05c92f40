package detections

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/internal/inspections"
	"github.com/gridsight/gridsight/internal/metrics"
	"github.com/gridsight/gridsight/internal/timeline"
	"github.com/gridsight/gridsight/internal/vision"
	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

const insertStmt = `
	INSERT INTO detections(id, inspection_number, width, height, x, y, confidence, class_id, class_name, detection_id, parent_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const returningCols = "id, inspection_number, width, height, x, y, confidence, class_id, class_name, detection_id, parent_id, created_at"

type repo struct {
	db          *sql.DB
	inspections inspections.System
	analyzer    Analyzer
	logger      *slog.Logger
}

// New creates a detection repository implementing the System interface.
func New(
	db *sql.DB,
	insp inspections.System,
	analyzer Analyzer,
	logger *slog.Logger,
) System {
	return &repo{
		db:          db,
		inspections: insp,
		analyzer:    analyzer,
		logger:      logger.With("system", "detections"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByInspection(ctx context.Context, inspectionNumber string) ([]Detection, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("InspectionNumber", inspectionNumber).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanDetection)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Detection, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDetection)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Ingest(ctx context.Context, inspectionNumber string, result *vision.Result) ([]Detection, error) {
	batch := batchFromResult(inspectionNumber, result, time.Now().UTC())
	if len(batch) == 0 {
		return []Detection{}, nil
	}

	argSets := make([][]any, len(batch))
	for i, d := range batch {
		argSets[i] = []any{
			d.ID,
			d.InspectionNumber,
			d.Width,
			d.Height,
			d.X,
			d.Y,
			d.Confidence,
			d.ClassID,
			d.ClassName,
			d.DetectionID,
			d.ParentID,
			d.CreatedAt,
		}
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecMany(ctx, tx, insertStmt, argSets)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrInspectionNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"detections ingested",
		"inspection", inspectionNumber,
		"count", len(batch),
	)
	return batch, nil
}

func (r *repo) Analyze(ctx context.Context, inspectionNumber string) ([]Detection, error) {
	obj, err := r.inspections.Image(ctx, inspectionNumber)
	if err != nil {
		return nil, err
	}
	defer obj.Body.Close()

	image, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read inspection image: %w", err)
	}

	started := time.Now()
	result, err := r.analyzer.Analyze(ctx, image)
	if err != nil {
		metrics.ObserveAnalyze(time.Since(started), metrics.OutcomeError)
		return nil, err
	}
	metrics.ObserveAnalyze(time.Since(started), metrics.OutcomeSuccess)

	return r.Ingest(ctx, inspectionNumber, result)
}

func (r *repo) Add(ctx context.Context, inspectionNumber string, cmd AddCommand) (*Detection, error) {
	id := uuid.New()

	q := insertStmt + "\n\tRETURNING " + returningCols

	insertArgs := []any{
		id,
		inspectionNumber,
		cmd.Width,
		cmd.Height,
		cmd.X,
		cmd.Y,
		cmd.Confidence,
		cmd.ClassID,
		cmd.ClassName,
		id.String(),
		nil,
		time.Now().UTC(),
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Detection, error) {
		d, err := repository.QueryOne(ctx, tx, q, insertArgs, scanDetection)
		if err != nil {
			return Detection{}, err
		}

		_, err = timeline.Insert(ctx, tx, timeline.Command{
			DetectionID:      &d.ID,
			InspectionNumber: inspectionNumber,
			Kind:             timeline.KindAdd,
			Author:           cmd.Author,
			Comment:          cmd.Comment,
		})
		return d, err
	})

	if err != nil {
		return nil, repository.MapError(err, ErrInspectionNotFound, ErrDuplicate)
	}

	r.logger.Info("detection added", "id", d.ID, "inspection", inspectionNumber)
	return &d, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Detection, error) {
	q := `
		UPDATE detections
		SET width = $1, height = $2, x = $3, y = $4, confidence = $5, class_id = $6
		WHERE id = $7
		RETURNING ` + returningCols

	updateArgs := []any{
		cmd.Width,
		cmd.Height,
		cmd.X,
		cmd.Y,
		cmd.Confidence,
		cmd.ClassID,
		id,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Detection, error) {
		d, err := repository.QueryOne(ctx, tx, q, updateArgs, scanDetection)
		if err != nil {
			return Detection{}, err
		}

		_, err = timeline.Insert(ctx, tx, timeline.Command{
			DetectionID:      &d.ID,
			InspectionNumber: d.InspectionNumber,
			Kind:             timeline.KindEdit,
			Author:           cmd.Author,
			Comment:          cmd.Comment,
		})
		return d, err
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("detection updated", "id", id)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID, cmd DeleteCommand) error {
	findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		d, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanDetection)
		if err != nil {
			return struct{}{}, err
		}

		// the event is written first so it commits with the removal;
		// the FK clears its detection reference when the row goes
		if _, err := timeline.Insert(ctx, tx, timeline.Command{
			DetectionID:      &d.ID,
			InspectionNumber: d.InspectionNumber,
			Kind:             timeline.KindDelete,
			Author:           cmd.Author,
			Comment:          cmd.Comment,
		}); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM detections WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("detection deleted", "id", id)
	return nil
}

func (r *repo) DeleteAllByInspection(ctx context.Context, inspectionNumber string) error {
	result, err := r.db.ExecContext(
		ctx,
		"DELETE FROM detections WHERE inspection_number = $1",
		inspectionNumber,
	)
	if err != nil {
		return fmt.Errorf("purge detections: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		r.logger.Info(
			"detections purged",
			"inspection", inspectionNumber,
			"count", affected,
		)
	}

	return nil
}

// batchFromResult flattens a model result into detection rows. Outputs
// with no prediction block are skipped rather than failing the batch.
func batchFromResult(inspectionNumber string, result *vision.Result, now time.Time) []Detection {
	var batch []Detection

	for _, output := range result.Outputs {
		if output.Predictions == nil {
			continue
		}

		for _, raw := range output.Predictions.Predictions {
			d := Detection{
				ID:               uuid.New(),
				InspectionNumber: inspectionNumber,
				Width:            raw.Width,
				Height:           raw.Height,
				X:                raw.X,
				Y:                raw.Y,
				Confidence:       raw.Confidence,
				ClassID:          raw.ClassID,
				ClassName:        raw.ClassName,
				DetectionID:      raw.DetectionID,
				CreatedAt:        now,
			}

			if d.DetectionID == "" {
				d.DetectionID = d.ID.String()
			}

			if raw.ParentID != "" {
				parent := raw.ParentID
				d.ParentID = &parent
			}

			batch = append(batch, d)
		}
	}

	return batch
}
