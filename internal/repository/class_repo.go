package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thurahtetaung/universal-yoga/internal/model"
)

// ClassRepository is the class half of the schedule store. None of its
// deletes cascade.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) (int64, error)
	Update(ctx context.Context, id int64, class *model.Class) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByCourse(ctx context.Context, courseID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Class, error)
	// ListByCourse is unordered; callers sort by date.
	ListByCourse(ctx context.Context, courseID int64) ([]model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo creates a ClassRepository.
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) (int64, error) {
	row := *class
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, translateError(err)
	}
	class.ID = row.ID
	return row.ID, nil
}

func (r *classRepo) Update(ctx context.Context, id int64, class *model.Class) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"course_id": class.CourseID,
			"date":      class.Date,
			"teacher":   class.Teacher,
			"comments":  class.Comments,
		})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *classRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Class{})
	return res.RowsAffected, res.Error
}

func (r *classRepo) DeleteByCourse(ctx context.Context, courseID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("course_id = ?", courseID).Delete(&model.Class{})
	return res.RowsAffected, res.Error
}

func (r *classRepo) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ListByCourse(ctx context.Context, courseID int64) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) List(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).Find(&classes).Error
	return classes, err
}
