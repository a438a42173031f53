package repository

import (
	"context"
	"time"

	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// store holds the single-table operations every repository shares.
type store[T any] struct {
	db *gorm.DB
}

func (s store[T]) findByID(ctx context.Context, id string) (*T, error) {
	var row T
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s store[T]) create(ctx context.Context, row *T) error {
	return s.db.WithContext(ctx).Create(row).Error
}

// update writes only the columns in p and always refreshes updated_at.
func (s store[T]) update(ctx context.Context, id string, p patch.Patch) error {
	values := make(map[string]any, len(p)+1)
	for col, v := range p {
		values[col] = v
	}
	values["updated_at"] = time.Now()

	return s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values).Error
}

func (s store[T]) delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s store[T]) exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
