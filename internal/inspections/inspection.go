// Package inspections implements the inspection domain for GridSight.
// An inspection captures a maintenance visit to a transformer: when it
// happened, which branch performed it, its workflow status, and the
// thermal image the detection model analyzes.
package inspections

import (
	"time"
)

// Workflow statuses an inspection moves through.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Inspection represents a recorded transformer inspection.
type Inspection struct {
	InspectionNumber  string     `json:"inspection_number"`
	TransformerNumber string     `json:"transformer_number"`
	Branch            string     `json:"branch"`
	InspectedDate     time.Time  `json:"inspected_date"`
	InspectedTime     string     `json:"inspected_time"`
	MaintenanceDate   *time.Time `json:"maintenance_date,omitempty"`
	MaintenanceTime   *string    `json:"maintenance_time,omitempty"`
	Status            string     `json:"status"`
	ImageKey          *string    `json:"image_key,omitempty"`
	ImageContentType  *string    `json:"image_content_type,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CreateCommand carries the data needed to record a new inspection.
// Dates use YYYY-MM-DD; times are free-form strings as recorded in the
// field.
type CreateCommand struct {
	InspectionNumber  string  `json:"inspection_number"`
	TransformerNumber string  `json:"transformer_number"`
	Branch            string  `json:"branch"`
	InspectedDate     string  `json:"inspected_date"`
	InspectedTime     string  `json:"inspected_time"`
	MaintenanceDate   *string `json:"maintenance_date,omitempty"`
	MaintenanceTime   *string `json:"maintenance_time,omitempty"`
}

// UpdateCommand carries a partial inspection update. Nil fields are left
// unchanged.
type UpdateCommand struct {
	Branch          *string `json:"branch,omitempty"`
	InspectedDate   *string `json:"inspected_date,omitempty"`
	InspectedTime   *string `json:"inspected_time,omitempty"`
	MaintenanceDate *string `json:"maintenance_date,omitempty"`
	MaintenanceTime *string `json:"maintenance_time,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// ImageCommand carries an uploaded inspection image. Data holds the raw
// file bytes.
type ImageCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

const dateLayout = "2006-01-02"

func (c CreateCommand) validate() (time.Time, *time.Time, error) {
	if c.InspectionNumber == "" {
		return time.Time{}, nil, ErrMissingNumber
	}
	if c.TransformerNumber == "" {
		return time.Time{}, nil, ErrMissingTransformer
	}

	inspected, err := time.Parse(dateLayout, c.InspectedDate)
	if err != nil {
		return time.Time{}, nil, ErrInvalidDate
	}

	var maintenance *time.Time
	if c.MaintenanceDate != nil && *c.MaintenanceDate != "" {
		m, err := time.Parse(dateLayout, *c.MaintenanceDate)
		if err != nil {
			return time.Time{}, nil, ErrInvalidDate
		}
		maintenance = &m
	}

	return inspected, maintenance, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
