package detections

import (
	"context"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/internal/vision"
)

// Analyzer is the detection-model collaborator used by Analyze.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (*vision.Result, error)
}

// System defines the public contract for detection lifecycle operations.
type System interface {
	Handler() *Handler

	ListByInspection(ctx context.Context, inspectionNumber string) ([]Detection, error)
	Find(ctx context.Context, id uuid.UUID) (*Detection, error)

	// Ingest stores a model result batch for an inspection in a single
	// transaction. Outputs without a prediction block are skipped. No
	// timeline events are written; ingestion is not an annotation.
	Ingest(ctx context.Context, inspectionNumber string, result *vision.Result) ([]Detection, error)

	// Analyze runs the detection model against the inspection's stored
	// image and ingests the resulting batch.
	Analyze(ctx context.Context, inspectionNumber string) ([]Detection, error)

	Add(ctx context.Context, inspectionNumber string, cmd AddCommand) (*Detection, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Detection, error)
	Delete(ctx context.Context, id uuid.UUID, cmd DeleteCommand) error

	// DeleteAllByInspection removes every detection for an inspection.
	// Timeline events survive with their detection reference cleared.
	// Removing zero rows is not an error.
	DeleteAllByInspection(ctx context.Context, inspectionNumber string) error
}
