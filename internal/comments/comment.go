// Package comments implements free-text inspection comments for
// GridSight. Comments are standalone notes on an inspection, separate
// from the detection timeline.
package comments

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single note recorded against an inspection.
type Comment struct {
	ID               uuid.UUID `json:"id"`
	InspectionNumber string    `json:"inspection_number"`
	Topic            string    `json:"topic"`
	Author           string    `json:"author"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateCommand carries the data for a new comment.
type CreateCommand struct {
	Topic   string `json:"topic"`
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

// UpdateCommand overwrites a comment's topic and text. Authorship and
// timestamps are fixed at creation.
type UpdateCommand struct {
	Topic   string `json:"topic"`
	Comment string `json:"comment"`
}

func (c CreateCommand) validate() error {
	if c.Author == "" {
		return ErrMissingAuthor
	}
	if c.Comment == "" {
		return ErrMissingComment
	}
	return nil
}
