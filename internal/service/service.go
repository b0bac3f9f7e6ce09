package service

import (
	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/config"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	"github.com/thurahtetaung/universal-yoga/pkg/network"
)

// Service aggregates every service.
type Service struct {
	Course     CourseService
	Class      ClassService
	CourseEdit CourseEditService
	Search     SearchService
	Sync       SyncService
	Export     ExportService
}

// NewService wires the services. decisions holds pending day changes;
// uploader and prober back the sync upload.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	decisions DecisionStore,
	uploader Uploader,
	prober network.Prober,
	logger *zap.Logger,
) *Service {
	return &Service{
		Course:     NewCourseService(repo, logger),
		Class:      NewClassService(repo, logger),
		CourseEdit: NewCourseEditService(repo, decisions, cfg.Decision.TTL, logger),
		Search:     NewSearchService(repo, logger),
		Sync:       NewSyncService(repo, uploader, prober, &cfg.Sync, logger),
		Export:     NewExportService(repo, logger),
	}
}
