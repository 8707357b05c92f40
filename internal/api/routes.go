package api

import (
	"net/http"

	"github.com/gridsight/gridsight/internal/config"
	"github.com/gridsight/gridsight/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	maxUpload := cfg.API.MaxUploadSizeBytes()

	transformers := domain.Transformers.Handler(maxUpload)
	inspections := domain.Inspections.Handler(maxUpload)
	detections := domain.Detections.Handler()
	timeline := domain.Timeline.Handler()
	comments := domain.Comments.Handler()
	maintenance := domain.Maintenance.Handler()

	routes.Register(
		mux,
		transformers.Routes(),
		inspections.Routes(),
		inspections.TransformerRoutes(),
		detections.Routes(),
		detections.InspectionRoutes(),
		timeline.InspectionRoutes(),
		timeline.DetectionRoutes(),
		comments.Routes(),
		comments.InspectionRoutes(),
		maintenance.Routes(),
		maintenance.InspectionRoutes(),
	)
}
