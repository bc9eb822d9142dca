package repository

import (
	"aura_edu_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) ListAll(ctx context.Context) ([]model.Achievement, error) {
	var list []model.Achievement
	err := r.DB.WithContext(ctx).Order("criterion ASC, threshold ASC").Find(&list).Error
	return list, err
}

func (r *AchievementRepository) ListEarned(ctx context.Context, userID uint) ([]model.UserAchievement, error) {
	var list []model.UserAchievement
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("earned_at ASC").Find(&list).Error
	return list, err
}

// Award records the badge once; it reports false when the user already had it.
func (r *AchievementRepository) Award(ctx context.Context, userID, achievementID uint, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserAchievement{UserID: userID, AchievementID: achievementID, EarnedAt: at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AchievementRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserAchievement{}).Error
}
