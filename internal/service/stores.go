package service

import (
	"aura_edu_backend/internal/model"
	"context"
	"time"

	"gorm.io/datatypes"
)

// 服务依赖的最小存储接口，由 repository 包中的 gorm 实现满足，测试中使用内存实现

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	AddXP(ctx context.Context, userID uint, xp int) error
	FindTopByXP(ctx context.Context, limit int) ([]model.User, error)
	UpdateSettings(ctx context.Context, userID uint, settings datatypes.JSON) error
	List(ctx context.Context, role, search string, page, limit int) ([]model.User, int64, error)
}

type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
	FindByID(ctx context.Context, id uint) (*model.Activity, error)
	Update(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, id uint) error
	ListByLesson(ctx context.Context, lessonID uint) ([]model.Activity, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	ListByUserAndActivity(ctx context.Context, userID, activityID uint) ([]model.Submission, error)
	ListByActivity(ctx context.Context, activityID uint, page, limit int) ([]model.Submission, int64, error)
	MarkCompleted(ctx context.Context, userID, activityID uint, at time.Time) (bool, error)
	CountCompletedActivities(ctx context.Context, userID uint) (int64, error)
	CountPerfectActivities(ctx context.Context, userID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Submission, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type AchievementStore interface {
	ListAll(ctx context.Context) ([]model.Achievement, error)
	ListEarned(ctx context.Context, userID uint) ([]model.UserAchievement, error)
	Award(ctx context.Context, userID, achievementID uint, at time.Time) (bool, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type SessionStore interface {
	Create(ctx context.Context, session *model.LearningSession) error
	FindByIDAndUserID(ctx context.Context, sessionID, userID uint) (*model.LearningSession, error)
	Update(ctx context.Context, session *model.LearningSession) error
	ListByUser(ctx context.Context, userID uint, since time.Time) ([]model.LearningSession, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type AuraBotStore interface {
	Create(ctx context.Context, msg *model.AuraBotMessage) error
	ListBySession(ctx context.Context, userID uint, sessionID string, limit int) ([]model.AuraBotMessage, error)
	ListByUser(ctx context.Context, userID uint) ([]model.AuraBotMessage, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}
