package repository

import (
	"aura_edu_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.LearningSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) FindByIDAndUserID(ctx context.Context, sessionID, userID uint) (*model.LearningSession, error) {
	var session model.LearningSession
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *model.LearningSession) error {
	return r.DB.WithContext(ctx).Save(session).Error
}

// ListByUser returns sessions started at or after since, oldest first. A zero
// since returns everything.
func (r *SessionRepository) ListByUser(ctx context.Context, userID uint, since time.Time) ([]model.LearningSession, error) {
	var list []model.LearningSession
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("start_time >= ?", since)
	}
	err := query.Order("start_time ASC").Find(&list).Error
	return list, err
}

func (r *SessionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LearningSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.LearningSession{}).Error
}
