package detections

import (
	"github.com/gridsight/gridsight/pkg/query"
	"github.com/gridsight/gridsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "detections", "d").
	Project("id", "ID").
	Project("inspection_number", "InspectionNumber").
	Project("width", "Width").
	Project("height", "Height").
	Project("x", "X").
	Project("y", "Y").
	Project("confidence", "Confidence").
	Project("class_id", "ClassID").
	Project("class_name", "ClassName").
	Project("detection_id", "DetectionID").
	Project("parent_id", "ParentID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "CreatedAt",
}

func scanDetection(s repository.Scanner) (Detection, error) {
	var d Detection
	err := s.Scan(
		&d.ID,
		&d.InspectionNumber,
		&d.Width,
		&d.Height,
		&d.X,
		&d.Y,
		&d.Confidence,
		&d.ClassID,
		&d.ClassName,
		&d.DetectionID,
		&d.ParentID,
		&d.CreatedAt,
	)
	return d, err
}
