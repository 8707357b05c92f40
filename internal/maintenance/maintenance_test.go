package maintenance

import (
	"errors"
	"net/http"
	"testing"
)

func TestCreateCommandValidate(t *testing.T) {
	voltage := 33.2

	tests := []struct {
		name string
		cmd  CreateCommand
		err  error
	}{
		{
			name: "valid",
			cmd: CreateCommand{
				InspectorName:     "jdoe",
				TransformerStatus: "operational",
				Voltage:           &voltage,
				RecommendedAction: "monitor",
			},
		},
		{
			name: "readings optional",
			cmd:  CreateCommand{InspectorName: "jdoe"},
		},
		{
			name: "missing inspector",
			cmd:  CreateCommand{TransformerStatus: "operational"},
			err:  ErrMissingInspector,
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
		{name: "missing inspector", err: ErrMissingInspector, status: http.StatusBadRequest},
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
