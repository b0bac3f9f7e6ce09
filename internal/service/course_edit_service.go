package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// ── Course edit errors ──

var (
	ErrDecisionNotFound = errors.New("pending course edit not found or already resolved")
	ErrEditConflict     = errors.New("course changed since the edit was requested")
)

// CourseEditService confirms course edits.
//
// An edit that keeps the weekday, or a course without classes, is written
// at once. Moving a course with classes to another weekday leaves those
// classes on dates that no longer match, so the edit is parked and a token
// returned; Resolve then applies it with one of three outcomes:
//   - keep: write the course, leave the classes as they are
//   - delete_all: write the course and drop its classes in one transaction
//   - cancel: write nothing
//
// A token nobody resolves never mutates anything. A token whose course was
// written after it was issued is refused with ErrEditConflict.
type CourseEditService interface {
	Edit(ctx context.Context, id int64, req *dto.CourseRequest) (*dto.CourseEditResponse, error)
	Resolve(ctx context.Context, token string, resolution string) (*dto.CourseEditResponse, error)
}

type courseEditService struct {
	repo      *repository.Repository
	decisions DecisionStore
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewCourseEditService creates a CourseEditService. ttl <= 0 keeps pending
// edits until resolved.
func NewCourseEditService(repo *repository.Repository, decisions DecisionStore, ttl time.Duration, logger *zap.Logger) CourseEditService {
	return &courseEditService{
		repo:      repo,
		decisions: decisions,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// ────────────────────── Edit ──────────────────────

func (s *courseEditService) Edit(ctx context.Context, id int64, req *dto.CourseRequest) (*dto.CourseEditResponse, error) {
	original, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("get course failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}

	edited, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}
	edited.ID = id

	classes, err := s.repo.Class.ListByCourse(ctx, id)
	if err != nil {
		s.logger.Error("list classes failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}

	if strings.EqualFold(original.DayOfWeek, edited.DayOfWeek) || len(classes) == 0 {
		if err := s.apply(ctx, s.repo, edited); err != nil {
			return nil, err
		}
		return &dto.CourseEditResponse{Status: dto.EditApplied, Course: toCourseResponse(edited)}, nil
	}

	pending := &PendingEdit{
		Token:           uuid.New().String(),
		CourseID:        id,
		Original:        *original,
		Edited:          *edited,
		AffectedClasses: len(classes),
		CreatedAt:       s.now(),
	}
	if err := s.decisions.Save(ctx, pending, s.ttl); err != nil {
		s.logger.Error("save pending edit failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("course day change awaiting decision",
		zap.Int64("course_id", id),
		zap.String("from", original.DayOfWeek),
		zap.String("to", edited.DayOfWeek),
		zap.Int("classes", len(classes)),
	)

	return &dto.CourseEditResponse{
		Status:          dto.EditPendingDecision,
		Course:          toCourseResponse(original),
		Token:           pending.Token,
		OriginalDay:     original.DayOfWeek,
		NewDay:          edited.DayOfWeek,
		AffectedClasses: len(classes),
	}, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *courseEditService) Resolve(ctx context.Context, token string, resolution string) (*dto.CourseEditResponse, error) {
	switch resolution {
	case dto.ResolutionKeep, dto.ResolutionDeleteAll, dto.ResolutionCancel:
	default:
		return nil, pkgerrors.NewValidation("resolution", "must be one of keep, delete_all, cancel")
	}

	pending, err := s.decisions.Take(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrDecisionNotFound) {
			s.logger.Error("load pending edit failed", zap.Error(err))
		}
		return nil, err
	}

	edited := pending.Edited
	switch resolution {
	case dto.ResolutionKeep:
		err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			if err := s.checkUnchanged(ctx, txRepo, &pending.Original); err != nil {
				return err
			}
			return s.apply(ctx, txRepo, &edited)
		})
		if err != nil {
			return nil, err
		}
		return &dto.CourseEditResponse{
			Status:          dto.EditAppliedWithStaleClasses,
			Course:          toCourseResponse(&edited),
			AffectedClasses: pending.AffectedClasses,
		}, nil

	case dto.ResolutionDeleteAll:
		var deleted int64
		err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			if err := s.checkUnchanged(ctx, txRepo, &pending.Original); err != nil {
				return err
			}
			if err := s.apply(ctx, txRepo, &edited); err != nil {
				return err
			}
			n, err := txRepo.Class.DeleteByCourse(ctx, edited.ID)
			if err != nil {
				return err
			}
			deleted = n
			return nil
		})
		if err != nil {
			if !errors.Is(err, ErrCourseNotFound) && !errors.Is(err, ErrEditConflict) {
				s.logger.Error("apply day change failed", zap.Int64("course_id", edited.ID), zap.Error(err))
			}
			return nil, err
		}
		s.logger.Info("course day changed, classes cleared",
			zap.Int64("course_id", edited.ID),
			zap.Int64("classes_deleted", deleted),
		)
		return &dto.CourseEditResponse{
			Status:         dto.EditAppliedClassesCleared,
			Course:         toCourseResponse(&edited),
			ClassesDeleted: deleted,
		}, nil

	default:
		original := pending.Original
		return &dto.CourseEditResponse{
			Status: dto.EditAborted,
			Course: toCourseResponse(&original),
		}, nil
	}
}

// checkUnchanged refuses to apply a pending edit over a newer write to the
// same course.
func (s *courseEditService) checkUnchanged(ctx context.Context, repo *repository.Repository, original *model.Course) error {
	current, err := repo.Course.GetByID(ctx, original.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("reload course failed", zap.Int64("course_id", original.ID), zap.Error(err))
		return err
	}
	if !sameCourse(current, original) {
		s.logger.Warn("pending course edit is stale", zap.Int64("course_id", original.ID))
		return ErrEditConflict
	}
	return nil
}

func sameCourse(a, b *model.Course) bool {
	return a.ID == b.ID &&
		a.Type == b.Type &&
		a.DayOfWeek == b.DayOfWeek &&
		a.TimeOfDay == b.TimeOfDay &&
		a.Duration == b.Duration &&
		a.Capacity == b.Capacity &&
		a.Price == b.Price &&
		textOrEmpty(a.Description) == textOrEmpty(b.Description)
}

// apply writes the edited course through repo. A course deleted since the
// edit began reports ErrCourseNotFound and nothing else runs.
func (s *courseEditService) apply(ctx context.Context, repo *repository.Repository, course *model.Course) error {
	n, err := repo.Course.Update(ctx, course.ID, course)
	if err != nil {
		s.logger.Error("update course failed", zap.Int64("course_id", course.ID), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrCourseNotFound
	}
	return nil
}
