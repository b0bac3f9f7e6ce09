package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// SearchService exposes the class lookups. Results are always freshly
// queried; nothing is cached.
type SearchService interface {
	ByTeacher(ctx context.Context, query string) ([]dto.SearchResultResponse, error)
	ByDate(ctx context.Context, date string) ([]dto.SearchResultResponse, error)
	ByDayOfWeek(ctx context.Context, day string) ([]dto.SearchResultResponse, error)
}

type searchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(repo *repository.Repository, logger *zap.Logger) SearchService {
	return &searchService{repo: repo, logger: logger}
}

func (s *searchService) ByTeacher(ctx context.Context, query string) ([]dto.SearchResultResponse, error) {
	if strings.TrimSpace(query) == "" {
		return []dto.SearchResultResponse{}, nil
	}

	results, err := s.repo.Search.ByTeacher(ctx, query)
	if err != nil {
		s.logger.Error("search by teacher failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return toSearchResponses(results), nil
}

func (s *searchService) ByDate(ctx context.Context, date string) ([]dto.SearchResultResponse, error) {
	if _, err := model.ParseClassDate(date); err != nil {
		return nil, pkgerrors.NewValidation("date", err.Error())
	}

	results, err := s.repo.Search.ByDate(ctx, date)
	if err != nil {
		s.logger.Error("search by date failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return toSearchResponses(results), nil
}

func (s *searchService) ByDayOfWeek(ctx context.Context, day string) ([]dto.SearchResultResponse, error) {
	if _, ok := model.CanonicalWeekday(day); !ok {
		return nil, pkgerrors.NewValidation("day", "must be a day name from Monday to Sunday")
	}

	results, err := s.repo.Search.ByDayOfWeek(ctx, day)
	if err != nil {
		s.logger.Error("search by day failed", zap.String("day", day), zap.Error(err))
		return nil, err
	}
	return toSearchResponses(results), nil
}

func toSearchResponses(results []model.SearchResult) []dto.SearchResultResponse {
	out := make([]dto.SearchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.SearchResultResponse{
			ClassID:     r.ClassID,
			CourseID:    r.CourseID,
			CourseType:  r.CourseType,
			ClassDate:   r.ClassDate,
			TeacherName: r.TeacherName,
			CourseTime:  r.CourseTime,
			CourseDay:   r.CourseDay,
		})
	}
	return out
}
