package transformers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gridsight/gridsight/pkg/query"
)

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("region", "Nugegoda")
	values.Set("type", "Distribution")
	values.Set("pole_number", "EN-12")

	f := FiltersFromQuery(values)

	if f.Region == nil || *f.Region != "Nugegoda" {
		t.Errorf("region = %v; expected Nugegoda", f.Region)
	}
	if f.Type == nil || *f.Type != "Distribution" {
		t.Errorf("type = %v; expected Distribution", f.Type)
	}
	if f.PoleNumber == nil || *f.PoleNumber != "EN-12" {
		t.Errorf("pole_number = %v; expected EN-12", f.PoleNumber)
	}
	if f.LocationDetails != nil {
		t.Errorf("location_details = %v; expected nil", f.LocationDetails)
	}
}

func TestFiltersApply(t *testing.T) {
	region := "Colombo"
	pole := "A-7"

	qb := query.NewBuilder(projection, defaultSort)
	Filters{Region: &region, PoleNumber: &pole}.Apply(qb)

	sql, args := qb.Build()

	if !strings.Contains(sql, "t.region = $1") {
		t.Errorf("expected region equality clause, received: %s", sql)
	}
	if !strings.Contains(sql, "t.pole_number ILIKE $2") {
		t.Errorf("expected pole_number contains clause, received: %s", sql)
	}
	if len(args) != 2 {
		t.Fatalf("args = %d; expected 2", len(args))
	}
	if args[1] != "%A-7%" {
		t.Errorf("pole arg = %v; expected %%A-7%%", args[1])
	}
}

func TestCreateCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateCommand
		err  error
	}{
		{
			name: "valid",
			cmd:  CreateCommand{TransformerNumber: "TX-100", Region: "Colombo"},
		},
		{
			name: "missing number",
			cmd:  CreateCommand{Region: "Colombo"},
			err:  ErrMissingNumber,
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
		{name: "no image", err: ErrNoImage, status: http.StatusNotFound},
		{name: "duplicate", err: ErrDuplicate, status: http.StatusConflict},
		{name: "missing number", err: ErrMissingNumber, status: http.StatusBadRequest},
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

func TestBuildImageKey(t *testing.T) {
	key := buildImageKey("TX-100", sanitizeFilename("../../evil baseline.jpg"))
	if key != "transformers/TX-100/evil%20baseline.jpg" {
		t.Errorf("unexpected key: %s", key)
	}
}
