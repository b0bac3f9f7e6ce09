package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/config"
	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	"github.com/thurahtetaung/universal-yoga/pkg/network"
	"github.com/thurahtetaung/universal-yoga/pkg/syncclient"
)

// ── Sync errors ──

var (
	ErrNoConnectivity = errors.New("no internet connection available")
)

const (
	syncSuccessMessage = "Data uploaded successfully"
	syncUnknownError   = "Unknown error"
)

// TransportError means the upload never produced a usable server reply.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerRejectedError carries the server's refusal message.
type ServerRejectedError struct {
	Message string
}

func (e *ServerRejectedError) Error() string {
	return e.Message
}

// Uploader sends a payload to the sync server.
type Uploader interface {
	Upload(ctx context.Context, payload any) (*syncclient.UploadResponse, error)
}

// SyncService uploads the whole local dataset. It never writes locally.
type SyncService interface {
	Upload(ctx context.Context) (*dto.SyncResultResponse, error)
	// UploadAsync runs Upload in the background and reports to done, which
	// may be nil.
	UploadAsync(ctx context.Context, done func(*dto.SyncResultResponse, error))
	BuildPayload(ctx context.Context) (*dto.SyncPayload, error)
}

type syncService struct {
	repo     *repository.Repository
	uploader Uploader
	prober   network.Prober
	cfg      *config.SyncConfig
	logger   *zap.Logger
}

// NewSyncService creates a SyncService.
func NewSyncService(repo *repository.Repository, uploader Uploader, prober network.Prober, cfg *config.SyncConfig, logger *zap.Logger) SyncService {
	return &syncService{
		repo:     repo,
		uploader: uploader,
		prober:   prober,
		cfg:      cfg,
		logger:   logger,
	}
}

// ────────────────────── Upload ──────────────────────

func (s *syncService) Upload(ctx context.Context) (*dto.SyncResultResponse, error) {
	if !s.prober.Available(ctx) {
		return nil, ErrNoConnectivity
	}

	payload, err := s.BuildPayload(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("uploading dataset",
		zap.Int("courses", len(payload.Courses)),
		zap.Int("classes", len(payload.Classes)),
	)

	resp, err := s.uploader.Upload(ctx, payload)
	if err != nil {
		s.logger.Warn("upload failed", zap.Error(err))
		return nil, &TransportError{Err: err}
	}

	if !resp.Success {
		msg := syncUnknownError
		if resp.Message != nil {
			msg = *resp.Message
		}
		s.logger.Warn("upload rejected", zap.String("message", msg))
		return nil, &ServerRejectedError{Message: msg}
	}

	return &dto.SyncResultResponse{
		Message: syncSuccessMessage,
		Courses: len(payload.Courses),
		Classes: len(payload.Classes),
	}, nil
}

func (s *syncService) UploadAsync(ctx context.Context, done func(*dto.SyncResultResponse, error)) {
	// Detach from the caller so the upload outlives the request.
	bg := context.WithoutCancel(ctx)
	go func() {
		result, err := s.Upload(bg)
		if err != nil {
			s.logger.Warn("background upload finished with error", zap.Error(err))
		} else {
			s.logger.Info("background upload finished", zap.String("message", result.Message))
		}
		if done != nil {
			done(result, err)
		}
	}()
}

// ────────────────────── Payload ──────────────────────

func (s *syncService) BuildPayload(ctx context.Context) (*dto.SyncPayload, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("read courses for upload failed", zap.Error(err))
		return nil, err
	}
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("read classes for upload failed", zap.Error(err))
		return nil, err
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })

	payload := &dto.SyncPayload{
		Courses: make([]dto.SyncCourse, 0, len(courses)),
		Classes: make([]dto.SyncClass, 0, len(classes)),
	}
	for _, c := range courses {
		var price any = c.Price
		if s.cfg.PriceAsString {
			price = fmt.Sprintf("%.2f", c.Price)
		}
		payload.Courses = append(payload.Courses, dto.SyncCourse{
			ID:          c.ID,
			Type:        c.Type,
			DayOfWeek:   c.DayOfWeek,
			TimeOfDay:   c.TimeOfDay,
			Duration:    c.Duration,
			Capacity:    c.Capacity,
			Price:       price,
			Description: c.Description,
		})
	}
	for _, cl := range classes {
		payload.Classes = append(payload.Classes, dto.SyncClass{
			ID:       cl.ID,
			CourseID: cl.CourseID,
			Date:     cl.Date,
			Teacher:  cl.Teacher,
			Comments: cl.Comments,
		})
	}
	return payload, nil
}
