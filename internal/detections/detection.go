// Package detections implements the detection lifecycle for GridSight.
// Detections enter either as a batch ingested from the detection model
// or as manual annotations. Every manual mutation writes a paired
// timeline event in the same transaction, so the record and its audit
// entry are inseparable.
package detections

import (
	"time"

	"github.com/google/uuid"
)

// Detection is a single thermal anomaly located on an inspection image.
// Geometry is in image pixel coordinates with X/Y at the box center.
// DetectionID is the identifier assigned by the model; manual additions
// reuse the record id.
type Detection struct {
	ID               uuid.UUID `json:"id"`
	InspectionNumber string    `json:"inspection_number"`
	Width            float64   `json:"width"`
	Height           float64   `json:"height"`
	X                float64   `json:"x"`
	Y                float64   `json:"y"`
	Confidence       float64   `json:"confidence"`
	ClassID          int       `json:"class_id"`
	ClassName        string    `json:"class_name"`
	DetectionID      string    `json:"detection_id"`
	ParentID         *string   `json:"parent_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// AddCommand carries a manual annotation along with the author and
// comment recorded on its timeline event.
type AddCommand struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name"`
	Author     string  `json:"author"`
	Comment    string  `json:"comment"`
}

// UpdateCommand overwrites a detection's geometry, confidence, and class
// id. Class name, model identifiers, and provenance fields are fixed at
// creation. Author and Comment go to the paired timeline event.
type UpdateCommand struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
	ClassID    int     `json:"class_id"`
	Author     string  `json:"author"`
	Comment    string  `json:"comment"`
}

// DeleteCommand carries the author and comment for a deletion's timeline
// event.
type DeleteCommand struct {
	Author  string `json:"author"`
	Comment string `json:"comment"`
}
