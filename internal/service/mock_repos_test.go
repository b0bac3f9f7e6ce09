package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/internal/repository"
	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// testToday is a Friday; the Monday after it is November 4, 2024.
var testToday = time.Date(2024, time.November, 1, 15, 30, 0, 0, time.Local)

func fixedNow() time.Time { return testToday }

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[int64]*model.Course
	nextID  int64
	classes *mockClassRepo
	updates int
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) (int64, error) {
	m.nextID++
	row := *course
	row.ID = m.nextID
	m.courses[row.ID] = &row
	course.ID = row.ID
	return row.ID, nil
}

func (m *mockCourseRepo) Update(_ context.Context, id int64, course *model.Course) (int64, error) {
	if _, ok := m.courses[id]; !ok {
		return 0, nil
	}
	row := *course
	row.ID = id
	m.courses[id] = &row
	m.updates++
	return 1, nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) (int64, error) {
	n, _, err := m.DeleteWithClasses(ctx, id)
	return n, err
}

func (m *mockCourseRepo) DeleteWithClasses(ctx context.Context, id int64) (int64, int64, error) {
	if _, ok := m.courses[id]; !ok {
		return 0, 0, nil
	}
	removed, _ := m.classes.DeleteByCourse(ctx, id)
	delete(m.courses, id)
	return 1, removed, nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes           map[int64]*model.Class
	nextID            int64
	courses           *mockCourseRepo
	deleteByCourseErr error
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) (int64, error) {
	if _, ok := m.courses.courses[class.CourseID]; !ok {
		return 0, pkgerrors.ErrIntegrity
	}
	m.nextID++
	row := *class
	row.ID = m.nextID
	m.classes[row.ID] = &row
	class.ID = row.ID
	return row.ID, nil
}

func (m *mockClassRepo) Update(_ context.Context, id int64, class *model.Class) (int64, error) {
	if _, ok := m.classes[id]; !ok {
		return 0, nil
	}
	if _, ok := m.courses.courses[class.CourseID]; !ok {
		return 0, pkgerrors.ErrIntegrity
	}
	row := *class
	row.ID = id
	m.classes[id] = &row
	return 1, nil
}

func (m *mockClassRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.classes[id]; !ok {
		return 0, nil
	}
	delete(m.classes, id)
	return 1, nil
}

func (m *mockClassRepo) DeleteByCourse(_ context.Context, courseID int64) (int64, error) {
	if m.deleteByCourseErr != nil {
		return 0, m.deleteByCourseErr
	}
	var n int64
	for id, c := range m.classes {
		if c.CourseID == courseID {
			delete(m.classes, id)
			n++
		}
	}
	return n, nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id int64) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) ListByCourse(_ context.Context, courseID int64) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if c.CourseID == courseID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		result = append(result, *c)
	}
	// Map order is random; keep List deterministic like the store.
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock SearchRepository ──

type mockSearchRepo struct {
	results []model.SearchResult
	calls   []string
}

func (m *mockSearchRepo) ByTeacher(_ context.Context, query string) ([]model.SearchResult, error) {
	m.calls = append(m.calls, "teacher:"+query)
	return m.results, nil
}

func (m *mockSearchRepo) ByDate(_ context.Context, date string) ([]model.SearchResult, error) {
	m.calls = append(m.calls, "date:"+date)
	return m.results, nil
}

func (m *mockSearchRepo) ByDayOfWeek(_ context.Context, day string) ([]model.SearchResult, error) {
	m.calls = append(m.calls, "day:"+day)
	return m.results, nil
}

// ── Fixture ──

type mockStore struct {
	repo    *repository.Repository
	courses *mockCourseRepo
	classes *mockClassRepo
	search  *mockSearchRepo
}

func newMockStore() *mockStore {
	courses := &mockCourseRepo{courses: make(map[int64]*model.Course)}
	classes := &mockClassRepo{classes: make(map[int64]*model.Class), courses: courses}
	courses.classes = classes
	search := &mockSearchRepo{}
	return &mockStore{
		repo: &repository.Repository{
			Course: courses,
			Class:  classes,
			Search: search,
		},
		courses: courses,
		classes: classes,
		search:  search,
	}
}

func (s *mockStore) addCourse(day, timeOfDay string) *model.Course {
	c := &model.Course{
		Type:      "Flow Yoga",
		DayOfWeek: day,
		TimeOfDay: timeOfDay,
		Duration:  60,
		Capacity:  20,
		Price:     12.5,
	}
	s.courses.Create(context.Background(), c)
	return c
}

func (s *mockStore) addClass(courseID int64, date, teacher string) *model.Class {
	cl := &model.Class{CourseID: courseID, Date: date, Teacher: teacher}
	s.classes.Create(context.Background(), cl)
	return cl
}

var testLogger = zap.NewNop()
