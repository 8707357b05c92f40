package api

import (
	"github.com/gridsight/gridsight/internal/comments"
	"github.com/gridsight/gridsight/internal/config"
	"github.com/gridsight/gridsight/internal/detections"
	"github.com/gridsight/gridsight/internal/inspections"
	"github.com/gridsight/gridsight/internal/maintenance"
	"github.com/gridsight/gridsight/internal/timeline"
	"github.com/gridsight/gridsight/internal/transformers"
	"github.com/gridsight/gridsight/internal/vision"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Transformers transformers.System
	Inspections  inspections.System
	Detections   detections.System
	Timeline     timeline.System
	Comments     comments.System
	Maintenance  maintenance.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	transformersSystem := transformers.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	inspectionsSystem := inspections.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	visionClient := vision.NewClient(&cfg.Vision, runtime.Logger)

	detectionsSystem := detections.New(
		db,
		inspectionsSystem,
		visionClient,
		runtime.Logger,
	)

	timelineSystem := timeline.New(db, runtime.Logger)

	commentsSystem := comments.New(db, runtime.Logger)

	maintenanceSystem := maintenance.New(
		db,
		inspectionsSystem,
		transformersSystem,
		detectionsSystem,
		runtime.Logger,
	)

	return &Domain{
		Transformers: transformersSystem,
		Inspections:  inspectionsSystem,
		Detections:   detectionsSystem,
		Timeline:     timelineSystem,
		Comments:     commentsSystem,
		Maintenance:  maintenanceSystem,
	}
}
