package repository

import (
	"aura_edu_backend/internal/model"
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) AddXP(ctx context.Context, userID uint, xp int) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", xp)).
		Error
}

func (r *UserRepository) FindTopByXP(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Where("role = ? AND disabled = ?", model.Student, false).
		Order("xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateSettings(ctx context.Context, userID uint, settings datatypes.JSON) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("settings", settings).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) List(ctx context.Context, role, search string, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id ASC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error
	return users, total, err
}
