package repository

import (
	"aura_edu_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type AuraBotRepository struct {
	DB *gorm.DB
}

func NewAuraBotRepository(db *gorm.DB) *AuraBotRepository {
	return &AuraBotRepository{DB: db}
}

func (r *AuraBotRepository) Create(ctx context.Context, msg *model.AuraBotMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

// ListBySession returns the last limit messages of a session, oldest first.
func (r *AuraBotRepository) ListBySession(ctx context.Context, userID uint, sessionID string, limit int) ([]model.AuraBotMessage, error) {
	var list []model.AuraBotMessage
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (r *AuraBotRepository) ListByUser(ctx context.Context, userID uint) ([]model.AuraBotMessage, error) {
	var list []model.AuraBotMessage
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *AuraBotRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.AuraBotMessage{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AuraBotRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AuraBotMessage{}).Error
}
