package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// ── Class errors ──

var (
	ErrClassNotFound = errors.New("class not found")
)

// ClassService manages the dated occurrences of a course. Every date written
// must pass the class-date policy for the owning course's weekday.
type ClassService interface {
	Create(ctx context.Context, courseID int64, req *dto.ClassRequest) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ClassResponse, error)
	Update(ctx context.Context, id int64, req *dto.ClassRequest) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id int64) error
	UpcomingDates(ctx context.Context, courseID int64, req *dto.ClassDatesRequest) (*dto.ClassDatesResponse, error)
	ValidateDate(ctx context.Context, courseID int64, date string) (*dto.ValidateClassDateResponse, error)
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewClassService creates a ClassService.
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *classService) Create(ctx context.Context, courseID int64, req *dto.ClassRequest) (*dto.ClassResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	class, err := s.classFromRequest(req, course)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("create class failed", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	return toClassResponse(class), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *classService) GetByID(ctx context.Context, id int64) (*dto.ClassResponse, error) {
	class, err := s.loadClass(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClassResponse(class), nil
}

// ────────────────────── Update ──────────────────────

func (s *classService) Update(ctx context.Context, id int64, req *dto.ClassRequest) (*dto.ClassResponse, error) {
	existing, err := s.loadClass(ctx, id)
	if err != nil {
		return nil, err
	}

	course, err := s.loadCourse(ctx, existing.CourseID)
	if err != nil {
		return nil, err
	}

	class, err := s.classFromRequest(req, course)
	if err != nil {
		return nil, err
	}
	class.ID = id

	n, err := s.repo.Class.Update(ctx, id, class)
	if err != nil {
		s.logger.Error("update class failed", zap.Int64("class_id", id), zap.Error(err))
		return nil, err
	}
	if n == 0 {
		return nil, ErrClassNotFound
	}

	return toClassResponse(class), nil
}

// ────────────────────── Delete ──────────────────────

func (s *classService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Class.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete class failed", zap.Int64("class_id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrClassNotFound
	}
	return nil
}

// ────────────────────── Date picker ──────────────────────

func (s *classService) UpcomingDates(ctx context.Context, courseID int64, req *dto.ClassDatesRequest) (*dto.ClassDatesResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	from := today
	if strings.TrimSpace(req.From) != "" {
		t, err := model.ParseClassDate(req.From)
		if err != nil {
			return nil, pkgerrors.NewValidation("from", err.Error())
		}
		from = t
	}
	// Nothing before today is ever offered.
	if model.CalendarDay(from).Before(model.CalendarDay(today)) {
		from = today
	}

	dates := UpcomingClassDates(course.DayOfWeek, from, req.GetLimit())
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.FormatClassDate(d))
	}

	return &dto.ClassDatesResponse{
		CourseID:  course.ID,
		DayOfWeek: course.DayOfWeek,
		Dates:     out,
	}, nil
}

func (s *classService) ValidateDate(ctx context.Context, courseID int64, date string) (*dto.ValidateClassDateResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	t, err := model.ParseClassDate(date)
	if err != nil {
		return nil, pkgerrors.NewValidation("date", err.Error())
	}

	return &dto.ValidateClassDateResponse{
		Date:      model.FormatClassDate(t),
		DayOfWeek: course.DayOfWeek,
		Valid:     ValidClassDateOn(t, course.DayOfWeek, s.now()),
	}, nil
}

// ── helpers ──

func (s *classService) classFromRequest(req *dto.ClassRequest, course *model.Course) (*model.Class, error) {
	teacher := strings.TrimSpace(req.Teacher)
	if teacher == "" {
		return nil, pkgerrors.NewValidation("teacher", "is required")
	}

	date, err := checkClassDate(req.Date, course.DayOfWeek, s.now())
	if err != nil {
		return nil, err
	}

	return &model.Class{
		CourseID: course.ID,
		Date:     date,
		Teacher:  teacher,
		Comments: optionalText(req.Comments),
	}, nil
}

func (s *classService) loadCourse(ctx context.Context, id int64) (*model.Course, error) {
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

func (s *classService) loadClass(ctx context.Context, id int64) (*model.Class, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("get class failed", zap.Int64("class_id", id), zap.Error(err))
		return nil, err
	}
	return class, nil
}
