package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/model"
)

// SearchRepository runs the read-only class lookups. Every row joins a class
// with its parent course.
type SearchRepository interface {
	// ByTeacher matches a case-insensitive substring of the teacher name,
	// ordered by class date. The query is matched as given, surrounding
	// spaces included. A blank query matches nothing.
	ByTeacher(ctx context.Context, query string) ([]model.SearchResult, error)
	// ByDate matches the canonical class date exactly, ordered by course time.
	ByDate(ctx context.Context, date string) ([]model.SearchResult, error)
	// ByDayOfWeek matches the course's weekday (not the class date's),
	// ordered by course time, then class date.
	ByDayOfWeek(ctx context.Context, day string) ([]model.SearchResult, error)
}

const searchSelect = `
	SELECT %s
		c.id           AS class_id,
		c.date         AS class_date,
		c.teacher      AS teacher_name,
		co.id          AS course_id,
		co.type        AS course_type,
		co.time_of_day AS course_time,
		co.day_of_week AS course_day
	FROM classes c
	INNER JOIN courses co ON c.course_id = co.id
`

type searchRepo struct {
	db *gorm.DB
}

// NewSearchRepo creates a SearchRepository.
func NewSearchRepo(db *gorm.DB) SearchRepository {
	return &searchRepo{db: db}
}

func (r *searchRepo) ByTeacher(ctx context.Context, query string) ([]model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []model.SearchResult{}, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	results, err := r.run(ctx, false, `WHERE LOWER(c.teacher) LIKE ? ESCAPE '\'`, pattern)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return lessByDate(results[i], results[j])
	})
	return results, nil
}

func (r *searchRepo) ByDate(ctx context.Context, date string) ([]model.SearchResult, error) {
	canonical, err := model.CanonicalClassDate(date)
	if err != nil {
		// Nothing stored can match a date that does not parse.
		return []model.SearchResult{}, nil
	}

	results, err := r.run(ctx, false, "WHERE c.date = ?", canonical)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if cmp := model.CompareTimesOfDay(results[i].CourseTime, results[j].CourseTime); cmp != 0 {
			return cmp < 0
		}
		return results[i].ClassID < results[j].ClassID
	})
	return results, nil
}

func (r *searchRepo) ByDayOfWeek(ctx context.Context, day string) ([]model.SearchResult, error) {
	canonical, ok := model.CanonicalWeekday(day)
	if !ok {
		return []model.SearchResult{}, nil
	}

	results, err := r.run(ctx, true, "WHERE co.day_of_week = ? COLLATE NOCASE", canonical)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if cmp := model.CompareTimesOfDay(results[i].CourseTime, results[j].CourseTime); cmp != 0 {
			return cmp < 0
		}
		return lessByDate(results[i], results[j])
	})
	return results, nil
}

func (r *searchRepo) run(ctx context.Context, distinct bool, where string, args ...interface{}) ([]model.SearchResult, error) {
	modifier := ""
	if distinct {
		modifier = "DISTINCT"
	}
	stmt := fmt.Sprintf(searchSelect, modifier) + where

	results := []model.SearchResult{}
	if err := r.db.WithContext(ctx).Raw(stmt, args...).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func lessByDate(a, b model.SearchResult) bool {
	if cmp := model.CompareClassDates(a.ClassDate, b.ClassDate); cmp != 0 {
		return cmp < 0
	}
	return a.ClassID < b.ClassID
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
