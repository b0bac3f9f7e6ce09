package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// ── Course errors ──

var (
	ErrCourseNotFound = errors.New("course not found")
)

// CourseService covers course create, read and delete. Edits go through
// CourseEditService because a day change may need a decision.
type CourseService interface {
	Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	// Delete removes the course together with all of its classes.
	Delete(ctx context.Context, id int64) (*dto.DeleteCourseResponse, error)
	// ListClasses returns the course's classes by calendar date.
	ListClasses(ctx context.Context, id int64) ([]dto.ClassResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates a CourseService.
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("create course failed", zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, err
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id int64) (*dto.DeleteCourseResponse, error) {
	n, removed, err := s.repo.Course.DeleteWithClasses(ctx, id)
	if err != nil {
		s.logger.Error("delete course failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}
	if n == 0 {
		return nil, ErrCourseNotFound
	}

	s.logger.Info("course deleted",
		zap.Int64("course_id", id),
		zap.Int64("classes_removed", removed),
	)
	return &dto.DeleteCourseResponse{CourseID: id, ClassesRemoved: int(removed)}, nil
}

// ────────────────────── ListClasses ──────────────────────

func (s *courseService) ListClasses(ctx context.Context, id int64) ([]dto.ClassResponse, error) {
	if _, err := s.loadCourse(ctx, id); err != nil {
		return nil, err
	}

	classes, err := s.repo.Class.ListByCourse(ctx, id)
	if err != nil {
		s.logger.Error("list classes failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}

	sortClassesByDate(classes)

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result, nil
}

// ── helpers ──

func (s *courseService) loadCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("get course failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// courseFromRequest validates the course form and normalises day and time
// to their canonical spellings.
func courseFromRequest(req *dto.CourseRequest) (*model.Course, error) {
	typ := strings.TrimSpace(req.Type)
	if typ == "" {
		return nil, pkgerrors.NewValidation("type", "is required")
	}

	day, ok := model.CanonicalWeekday(req.DayOfWeek)
	if !ok {
		return nil, pkgerrors.NewValidation("day_of_week", "must be a day name from Monday to Sunday")
	}

	clock, err := model.ParseTimeOfDay(req.TimeOfDay)
	if err != nil {
		return nil, pkgerrors.NewValidation("time_of_day", err.Error())
	}

	if req.Duration <= 0 {
		return nil, pkgerrors.NewValidation("duration", "must be a positive number of minutes")
	}
	if req.Capacity <= 0 {
		return nil, pkgerrors.NewValidation("capacity", "must be positive")
	}
	if req.Price == nil {
		return nil, pkgerrors.NewValidation("price", "is required")
	}
	if *req.Price < 0 {
		return nil, pkgerrors.NewValidation("price", "must not be negative")
	}

	return &model.Course{
		Type:        typ,
		DayOfWeek:   day,
		TimeOfDay:   model.FormatTimeOfDay(clock),
		Duration:    req.Duration,
		Capacity:    req.Capacity,
		Price:       *req.Price,
		Description: optionalText(req.Description),
	}, nil
}

// optionalText trims s and maps blank to nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func sortClassesByDate(classes []model.Class) {
	sort.SliceStable(classes, func(i, j int) bool {
		if cmp := model.CompareClassDates(classes[i].Date, classes[j].Date); cmp != 0 {
			return cmp < 0
		}
		return classes[i].ID < classes[j].ID
	})
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:          c.ID,
		Type:        c.Type,
		DayOfWeek:   c.DayOfWeek,
		TimeOfDay:   c.TimeOfDay,
		Duration:    c.Duration,
		Capacity:    c.Capacity,
		Price:       c.Price,
		Description: c.Description,
	}
}

func toClassResponse(c *model.Class) *dto.ClassResponse {
	return &dto.ClassResponse{
		ID:       c.ID,
		CourseID: c.CourseID,
		Date:     c.Date,
		Teacher:  c.Teacher,
		Comments: c.Comments,
	}
}
