package handler

import "github.com/thurahtetaung/universal-yoga/internal/service"

// Handler aggregates every handler.
type Handler struct {
	Course *CourseHandler
	Class  *ClassHandler
	Search *SearchHandler
	Sync   *SyncHandler
	Export *ExportHandler
}

// NewHandler creates the aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course: NewCourseHandler(svc.Course, svc.CourseEdit),
		Class:  NewClassHandler(svc.Class),
		Search: NewSearchHandler(svc.Search),
		Sync:   NewSyncHandler(svc.Sync),
		Export: NewExportHandler(svc.Export),
	}
}
