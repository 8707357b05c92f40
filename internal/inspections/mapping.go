package inspections

import (
	"net/url"

	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "inspections", "i").
	Project("inspection_number", "InspectionNumber").
	Project("transformer_number", "TransformerNumber").
	Project("branch", "Branch").
	Project("inspected_date", "InspectedDate").
	Project("inspected_time", "InspectedTime").
	Project("maintenance_date", "MaintenanceDate").
	Project("maintenance_time", "MaintenanceTime").
	Project("status", "Status").
	Project("image_key", "ImageKey").
	Project("image_content_type", "ImageContentType").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "InspectedDate",
	Descending: true,
}

// Filters contains optional filtering criteria for inspection queries.
// Nil fields are ignored. TransformerNumber and Status use exact matching;
// Branch uses case-insensitive contains matching.
type Filters struct {
	TransformerNumber *string `json:"transformer_number,omitempty"`
	Status            *string `json:"status,omitempty"`
	Branch            *string `json:"branch,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TransformerNumber", f.TransformerNumber).
		WhereEquals("Status", f.Status).
		WhereContains("Branch", f.Branch)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if tn := values.Get("transformer_number"); tn != "" {
		f.TransformerNumber = &tn
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if b := values.Get("branch"); b != "" {
		f.Branch = &b
	}

	return f
}

func scanInspection(s repository.Scanner) (Inspection, error) {
	var i Inspection
	err := s.Scan(
		&i.InspectionNumber,
		&i.TransformerNumber,
		&i.Branch,
		&i.InspectedDate,
		&i.InspectedTime,
		&i.MaintenanceDate,
		&i.MaintenanceTime,
		&i.Status,
		&i.ImageKey,
		&i.ImageContentType,
		&i.CreatedAt,
	)
	return i, err
}
