package timeline

import (
	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "detection_events", "e").
	Project("id", "ID").
	Project("seq", "Seq").
	Project("detection_id", "DetectionID").
	Project("inspection_number", "InspectionNumber").
	Project("kind", "Kind").
	Project("author", "Author").
	Project("comment", "Comment").
	Project("created_at", "CreatedAt")

// Newest first; seq breaks ties between events created in the same
// instant, so later insertions always sort ahead.
var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "Seq", Descending: true},
}

func scanEvent(s repository.Scanner) (Event, error) {
	var e Event
	err := s.Scan(
		&e.ID,
		&e.Seq,
		&e.DetectionID,
		&e.InspectionNumber,
		&e.Kind,
		&e.Author,
		&e.Comment,
		&e.CreatedAt,
	)
	return e, err
}
