package inspections

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestCreateCommandValidate(t *testing.T) {
	maintenance := "2025-03-10"
	bad := "tomorrow"

	tests := []struct {
		name string
		cmd  CreateCommand
		err  error
	}{
		{
			name: "valid",
			cmd: CreateCommand{
				InspectionNumber:  "INS-001",
				TransformerNumber: "TX-100",
				InspectedDate:     "2025-03-01",
			},
		},
		{
			name: "valid with maintenance date",
			cmd: CreateCommand{
				InspectionNumber:  "INS-001",
				TransformerNumber: "TX-100",
				InspectedDate:     "2025-03-01",
				MaintenanceDate:   &maintenance,
			},
		},
		{
			name: "missing inspection number",
			cmd: CreateCommand{
				TransformerNumber: "TX-100",
				InspectedDate:     "2025-03-01",
			},
			err: ErrMissingNumber,
		},
		{
			name: "missing transformer number",
			cmd: CreateCommand{
				InspectionNumber: "INS-001",
				InspectedDate:    "2025-03-01",
			},
			err: ErrMissingTransformer,
		},
		{
			name: "bad inspected date",
			cmd: CreateCommand{
				InspectionNumber:  "INS-001",
				TransformerNumber: "TX-100",
				InspectedDate:     "03/01/2025",
			},
			err: ErrInvalidDate,
		},
		{
			name: "bad maintenance date",
			cmd: CreateCommand{
				InspectionNumber:  "INS-001",
				TransformerNumber: "TX-100",
				InspectedDate:     "2025-03-01",
				MaintenanceDate:   &bad,
			},
			err: ErrInvalidDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inspected, maint, err := tc.cmd.validate()
			if !errors.Is(err, tc.err) {
				t.Fatalf("validate() = %v; expected %v", err, tc.err)
			}
			if err != nil {
				return
			}

			if inspected.Format(dateLayout) != tc.cmd.InspectedDate {
				t.Errorf("inspected = %v; expected %s", inspected, tc.cmd.InspectedDate)
			}
			if tc.cmd.MaintenanceDate != nil && maint == nil {
				t.Error("expected parsed maintenance date")
			}
		})
	}
}

func TestApplyUpdate(t *testing.T) {
	branch := "North"
	status := StatusCompleted
	clear := ""

	base := func() *Inspection {
		m := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		return &Inspection{
			InspectionNumber: "INS-001",
			Branch:           "South",
			InspectedDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			MaintenanceDate:  &m,
			Status:           StatusPending,
		}
	}

	t.Run("partial update", func(t *testing.T) {
		i := base()
		if err := applyUpdate(i, UpdateCommand{Branch: &branch, Status: &status}); err != nil {
			t.Fatalf("applyUpdate: %v", err)
		}
		if i.Branch != "North" {
			t.Errorf("branch = %s; expected North", i.Branch)
		}
		if i.Status != StatusCompleted {
			t.Errorf("status = %s; expected %s", i.Status, StatusCompleted)
		}
		if i.InspectedDate.Day() != 1 {
			t.Error("inspected date changed unexpectedly")
		}
	})

	t.Run("clear maintenance date", func(t *testing.T) {
		i := base()
		if err := applyUpdate(i, UpdateCommand{MaintenanceDate: &clear}); err != nil {
			t.Fatalf("applyUpdate: %v", err)
		}
		if i.MaintenanceDate != nil {
			t.Error("expected maintenance date cleared")
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		bad := "done"
		i := base()
		if err := applyUpdate(i, UpdateCommand{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("applyUpdate = %v; expected ErrInvalidStatus", err)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: ErrNotFound, status: http.StatusNotFound},
		{name: "missing transformer reference", err: ErrTransformerMissing, status: http.StatusNotFound},
		{name: "duplicate", err: ErrDuplicate, status: http.StatusConflict},
		{name: "invalid date", err: ErrInvalidDate, status: http.StatusBadRequest},
		{name: "invalid status", err: ErrInvalidStatus, status: http.StatusBadRequest},
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
