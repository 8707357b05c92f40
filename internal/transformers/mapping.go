package transformers

import (
	"net/url"

	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "transformers", "t").
	Project("transformer_number", "TransformerNumber").
	Project("pole_number", "PoleNumber").
	Project("region", "Region").
	Project("type", "Type").
	Project("location_details", "LocationDetails").
	Project("image_key", "ImageKey").
	Project("image_content_type", "ImageContentType").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "TransformerNumber",
}

// Filters contains optional filtering criteria for transformer queries.
// Nil fields are ignored. Region and Type use exact matching; PoleNumber
// and LocationDetails use case-insensitive contains matching.
type Filters struct {
	Region          *string `json:"region,omitempty"`
	Type            *string `json:"type,omitempty"`
	PoleNumber      *string `json:"pole_number,omitempty"`
	LocationDetails *string `json:"location_details,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Region", f.Region).
		WhereEquals("Type", f.Type).
		WhereContains("PoleNumber", f.PoleNumber).
		WhereContains("LocationDetails", f.LocationDetails)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if r := values.Get("region"); r != "" {
		f.Region = &r
	}

	if tp := values.Get("type"); tp != "" {
		f.Type = &tp
	}

	if pn := values.Get("pole_number"); pn != "" {
		f.PoleNumber = &pn
	}

	if ld := values.Get("location_details"); ld != "" {
		f.LocationDetails = &ld
	}

	return f
}

func scanTransformer(s repository.Scanner) (Transformer, error) {
	var t Transformer
	err := s.Scan(
		&t.TransformerNumber,
		&t.PoleNumber,
		&t.Region,
		&t.Type,
		&t.LocationDetails,
		&t.ImageKey,
		&t.ImageContentType,
		&t.CreatedAt,
	)
	return t, err
}
