package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// Repository aggregates every repository over one connection.
type Repository struct {
	Course CourseRepository
	Class  ClassRepository
	Search SearchRepository

	db *gorm.DB
}

// NewRepository creates the aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course: NewCourseRepo(db),
		Class:  NewClassRepo(db),
		Search: NewSearchRepo(db),
		db:     db,
	}
}

// WithTx returns an aggregate whose repositories run on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn on a transactional aggregate and commits when fn
// returns nil. An aggregate built without a connection (unit tests wiring
// mocks) runs fn on itself.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// translateError maps driver errors onto the shared taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return pkgerrors.ErrIntegrity
	}
	return err
}
