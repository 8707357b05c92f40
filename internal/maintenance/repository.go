package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gridsight/gridsight/internal/detections"
	"github.com/gridsight/gridsight/internal/inspections"
	"github.com/gridsight/gridsight/internal/transformers"
	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "maintenance_records", "m").
	Project("id", "ID").
	Project("inspection_number", "InspectionNumber").
	Project("transformer_number", "TransformerNumber").
	Project("inspector_name", "InspectorName").
	Project("transformer_status", "TransformerStatus").
	Project("voltage", "Voltage").
	Project("current", "Current").
	Project("recommended_action", "RecommendedAction").
	Project("additional_remarks", "AdditionalRemarks").
	Project("other_notes", "OtherNotes").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanRecord(s repository.Scanner) (Record, error) {
	var m Record
	err := s.Scan(
		&m.ID,
		&m.InspectionNumber,
		&m.TransformerNumber,
		&m.InspectorName,
		&m.TransformerStatus,
		&m.Voltage,
		&m.Current,
		&m.RecommendedAction,
		&m.AdditionalRemarks,
		&m.OtherNotes,
		&m.CreatedAt,
	)
	return m, err
}

type repo struct {
	db           *sql.DB
	inspections  inspections.System
	transformers transformers.System
	detections   detections.System
	logger       *slog.Logger
}

// New creates a maintenance repository implementing the System interface.
func New(
	db *sql.DB,
	insp inspections.System,
	tf transformers.System,
	det detections.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:           db,
		inspections:  insp,
		transformers: tf,
		detections:   det,
		logger:       logger.With("system", "maintenance"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByInspection(ctx context.Context, inspectionNumber string) ([]Record, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("InspectionNumber", inspectionNumber).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query maintenance records: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &m, nil
}

func (r *repo) Create(ctx context.Context, inspectionNumber string, cmd CreateCommand) (*Record, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	insp, err := r.inspections.Find(ctx, inspectionNumber)
	if err != nil {
		return nil, ErrInspectionNotFound
	}

	q := `
		INSERT INTO maintenance_records(id, inspection_number, transformer_number, inspector_name, transformer_status, voltage, current, recommended_action, additional_remarks, other_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, inspection_number, transformer_number, inspector_name, transformer_status, voltage, current, recommended_action, additional_remarks, other_notes, created_at`

	insertArgs := []any{
		uuid.New(),
		insp.InspectionNumber,
		insp.TransformerNumber,
		cmd.InspectorName,
		cmd.TransformerStatus,
		cmd.Voltage,
		cmd.Current,
		cmd.RecommendedAction,
		cmd.AdditionalRemarks,
		cmd.OtherNotes,
	}

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanRecord)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrInspectionNotFound, ErrNotFound)
	}

	r.logger.Info(
		"maintenance record created",
		"id", m.ID,
		"inspection", inspectionNumber,
	)
	return &m, nil
}

func (r *repo) Report(ctx context.Context, id uuid.UUID) (*Report, error) {
	record, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &Report{Record: *record}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		insp, err := r.inspections.Find(gctx, record.InspectionNumber)
		if err != nil {
			return fmt.Errorf("report inspection: %w", err)
		}
		report.Inspection = insp
		return nil
	})

	g.Go(func() error {
		tf, err := r.transformers.Find(gctx, record.TransformerNumber)
		if err != nil {
			return fmt.Errorf("report transformer: %w", err)
		}
		report.Transformer = tf
		return nil
	})

	g.Go(func() error {
		det, err := r.detections.ListByInspection(gctx, record.InspectionNumber)
		if err != nil {
			return fmt.Errorf("report detections: %w", err)
		}
		report.Detections = det
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}
