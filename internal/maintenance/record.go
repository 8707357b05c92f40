// Package maintenance implements maintenance records and report
// assembly for GridSight. A record captures the electrical readings and
// recommendations from a completed maintenance visit; a report joins the
// record with its inspection, transformer, and current detections.
package maintenance

import (
	"time"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/internal/detections"
	"github.com/gridsight/gridsight/internal/inspections"
	"github.com/gridsight/gridsight/internal/transformers"
)

// Record represents a completed maintenance visit for an inspection.
type Record struct {
	ID                uuid.UUID `json:"id"`
	InspectionNumber  string    `json:"inspection_number"`
	TransformerNumber string    `json:"transformer_number"`
	InspectorName     string    `json:"inspector_name"`
	TransformerStatus string    `json:"transformer_status"`
	Voltage           *float64  `json:"voltage,omitempty"`
	Current           *float64  `json:"current,omitempty"`
	RecommendedAction string    `json:"recommended_action"`
	AdditionalRemarks string    `json:"additional_remarks"`
	OtherNotes        string    `json:"other_notes"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateCommand carries the data for a new maintenance record. The
// transformer reference is derived from the inspection.
type CreateCommand struct {
	InspectorName     string   `json:"inspector_name"`
	TransformerStatus string   `json:"transformer_status"`
	Voltage           *float64 `json:"voltage,omitempty"`
	Current           *float64 `json:"current,omitempty"`
	RecommendedAction string   `json:"recommended_action"`
	AdditionalRemarks string   `json:"additional_remarks"`
	OtherNotes        string   `json:"other_notes"`
}

// Report joins a maintenance record with the inspection it closed out,
// the transformer involved, and the detections on file.
type Report struct {
	Record      Record                    `json:"record"`
	Inspection  *inspections.Inspection   `json:"inspection"`
	Transformer *transformers.Transformer `json:"transformer"`
	Detections  []detections.Detection    `json:"detections"`
}

func (c CreateCommand) validate() error {
	if c.InspectorName == "" {
		return ErrMissingInspector
	}
	return nil
}
