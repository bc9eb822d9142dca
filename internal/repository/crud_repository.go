package repository

import (
	"context"

	"gorm.io/gorm"
)

// CrudRepository implements the plain create/read/update/delete calls shared
// by the content tables.
type CrudRepository[T any] struct {
	DB *gorm.DB
}

func (r *CrudRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.DB.WithContext(ctx).Create(entity).Error
}

func (r *CrudRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.DB.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *CrudRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.DB.WithContext(ctx).Save(entity).Error
}

func (r *CrudRepository[T]) Delete(ctx context.Context, id uint) error {
	var entity T
	res := r.DB.WithContext(ctx).Delete(&entity, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBy returns rows where column = value, ordered by sort_order then id.
func (r *CrudRepository[T]) ListBy(ctx context.Context, column string, value interface{}) ([]T, error) {
	var list []T
	err := r.DB.WithContext(ctx).
		Where(column+" = ?", value).
		Order("sort_order ASC, id ASC").
		Find(&list).Error
	return list, err
}
