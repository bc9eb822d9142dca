package repository

import (
	"aura_edu_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUserAndActivity returns attempts newest first.
func (r *SubmissionRepository) ListByUserAndActivity(ctx context.Context, userID, activityID uint) ([]model.Submission, error) {
	var list []model.Submission
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *SubmissionRepository) ListByActivity(ctx context.Context, activityID uint, page, limit int) ([]model.Submission, int64, error) {
	var list []model.Submission
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Submission{}).Where("activity_id = ?", activityID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}

// MarkCompleted records the first completion; false means it was already recorded.
func (r *SubmissionRepository) MarkCompleted(ctx context.Context, userID, activityID uint, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ActivityCompletion{UserID: userID, ActivityID: activityID, CompletedAt: at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SubmissionRepository) CountCompletedActivities(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Distinct("activity_id").
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountPerfectActivities(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("user_id = ? AND is_completed = ? AND score = ?", userID, true, 100).
		Distinct("activity_id").
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Submission, error) {
	var list []model.Submission
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *SubmissionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.Submission{}).Error
}
