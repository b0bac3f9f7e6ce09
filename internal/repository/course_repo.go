package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/model"
)

// CourseRepository is the course half of the schedule store.
type CourseRepository interface {
	// Create inserts the course and returns the id assigned by the store.
	Create(ctx context.Context, course *model.Course) (int64, error)
	// Update replaces every mutable column of course id. 0 means no row matched.
	Update(ctx context.Context, id int64, course *model.Course) (int64, error)
	// Delete removes the course and all of its classes in one transaction.
	Delete(ctx context.Context, id int64) (int64, error)
	// DeleteWithClasses is Delete that also reports how many classes the
	// same transaction removed.
	DeleteWithClasses(ctx context.Context, id int64) (courses int64, classes int64, err error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates a CourseRepository.
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) (int64, error) {
	row := *course
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, translateError(err)
	}
	course.ID = row.ID
	return row.ID, nil
}

func (r *courseRepo) Update(ctx context.Context, id int64, course *model.Course) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"type":        course.Type,
			"day_of_week": course.DayOfWeek,
			"time_of_day": course.TimeOfDay,
			"duration":    course.Duration,
			"capacity":    course.Capacity,
			"price":       course.Price,
			"description": course.Description,
		})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *courseRepo) Delete(ctx context.Context, id int64) (int64, error) {
	courses, _, err := r.DeleteWithClasses(ctx, id)
	return courses, err
}

func (r *courseRepo) DeleteWithClasses(ctx context.Context, id int64) (int64, int64, error) {
	var courses, classes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first; ON DELETE CASCADE would do the same, this keeps the
		// unit explicit and the count exact.
		res := tx.Where("course_id = ?", id).Delete(&model.Class{})
		if res.Error != nil {
			return res.Error
		}
		classes = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&model.Course{})
		if res.Error != nil {
			return res.Error
		}
		courses = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, translateError(err)
	}
	return courses, classes, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).Find(&courses).Error
	return courses, err
}
