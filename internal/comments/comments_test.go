package comments

import (
	"errors"
	"net/http"
	"testing"
)

func TestCreateCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateCommand
		err  error
	}{
		{
			name: "valid",
			cmd:  CreateCommand{Topic: "access", Author: "jdoe", Comment: "gate was locked"},
		},
		{
			name: "topic optional",
			cmd:  CreateCommand{Author: "jdoe", Comment: "gate was locked"},
		},
		{
			name: "missing author",
			cmd:  CreateCommand{Comment: "gate was locked"},
			err:  ErrMissingAuthor,
		},
		{
			name: "missing text",
			cmd:  CreateCommand{Author: "jdoe"},
			err:  ErrMissingComment,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cmd.validate(); !errors.Is(err, tc.err) {
				t.Errorf("validate() = %v; expected %v", err, tc.err)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: ErrNotFound, status: http.StatusNotFound},
		{name: "missing inspection", err: ErrInspectionNotFound, status: http.StatusNotFound},
		{name: "missing author", err: ErrMissingAuthor, status: http.StatusBadRequest},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if status := MapHTTPStatus(tc.err); status != tc.status {
				t.Errorf("MapHTTPStatus() = %d; expected %d", status, tc.status)
			}
		})
	}
}
