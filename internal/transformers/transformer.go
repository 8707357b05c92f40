// Package transformers implements the transformer registry for GridSight.
// It provides types, data access, and business logic for the distribution
// transformers that inspections are recorded against, including baseline
// image storage.
package transformers

import (
	"time"
)

// Transformer represents a registered distribution transformer.
type Transformer struct {
	TransformerNumber string    `json:"transformer_number"`
	PoleNumber        string    `json:"pole_number"`
	Region            string    `json:"region"`
	Type              string    `json:"type"`
	LocationDetails   string    `json:"location_details"`
	ImageKey          *string   `json:"image_key,omitempty"`
	ImageContentType  *string   `json:"image_content_type,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to register a new transformer.
type CreateCommand struct {
	TransformerNumber string `json:"transformer_number"`
	PoleNumber        string `json:"pole_number"`
	Region            string `json:"region"`
	Type              string `json:"type"`
	LocationDetails   string `json:"location_details"`
}

// ImageCommand carries an uploaded baseline image. Data holds the raw
// file bytes.
type ImageCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

func (c CreateCommand) validate() error {
	if c.TransformerNumber == "" {
		return ErrMissingNumber
	}
	return nil
}
