package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/cache"
	"aura_edu_backend/pkg/learnstats"
	"aura_edu_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const analyticsKeyPrefix = "learningAnalytics_"

// AchievementEvaluator 会话变化后触发徽章检查
type AchievementEvaluator interface {
	EvaluateQuietly(ctx context.Context, userID uint) []model.Achievement
}

type AnalyticsService struct {
	SessionRepo  SessionStore
	Cache        cache.Store
	Achievements AchievementEvaluator
	Location     *time.Location
	SnapshotTTL  time.Duration

	now func() time.Time
}

func NewAnalyticsService(sessionRepo SessionStore, store cache.Store, achievements AchievementEvaluator, loc *time.Location, snapshotTTL time.Duration) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{
		SessionRepo:  sessionRepo,
		Cache:        store,
		Achievements: achievements,
		Location:     loc,
		SnapshotTTL:  snapshotTTL,
		now:          time.Now,
	}
}

type StartSessionRequest struct {
	Topic string `json:"topic"`
}

type EndSessionRequest struct {
	QuestionsAsked int `json:"questionsAsked" binding:"min=0"`
}

type RecordSessionRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	DurationSeconds int       `json:"durationSeconds" binding:"required,min=1"`
	Topic           string    `json:"topic"`
	QuestionsAsked  int       `json:"questionsAsked" binding:"min=0"`
}

func analyticsKey(userID uint) string {
	return fmt.Sprintf("%s%d", analyticsKeyPrefix, userID)
}

func (s *AnalyticsService) StartSession(ctx context.Context, userID uint, req StartSessionRequest) (*model.LearningSession, error) {
	session := &model.LearningSession{
		UserID:    userID,
		Topic:     strings.TrimSpace(req.Topic),
		StartTime: s.now(),
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.afterSessionChange(ctx, userID)
	return session, nil
}

// EndSession 结束一次学习会话，时长由服务端按开始时间计算
func (s *AnalyticsService) EndSession(ctx context.Context, userID, sessionID uint, req EndSessionRequest) (*model.LearningSession, error) {
	session, err := s.SessionRepo.FindByIDAndUserID(ctx, sessionID, userID)
	if err != nil {
		return nil, notFound(err, util.ErrSessionNotFound)
	}
	if session.EndTime != nil {
		return nil, util.ErrSessionEnded
	}

	end := s.now()
	session.EndTime = &end
	session.Duration = max(0, int(end.Sub(session.StartTime).Seconds()))
	session.QuestionsAsked = req.QuestionsAsked
	if err := s.SessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	s.afterSessionChange(ctx, userID)
	return session, nil
}

// RecordSession 保存客户端已完成的会话
func (s *AnalyticsService) RecordSession(ctx context.Context, userID uint, req RecordSessionRequest) (*model.LearningSession, error) {
	if req.DurationSeconds <= 0 {
		return nil, util.ErrInvalidDuration
	}
	end := req.Date.Add(time.Duration(req.DurationSeconds) * time.Second)
	session := &model.LearningSession{
		UserID:         userID,
		Topic:          strings.TrimSpace(req.Topic),
		StartTime:      req.Date,
		EndTime:        &end,
		Duration:       req.DurationSeconds,
		QuestionsAsked: req.QuestionsAsked,
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.afterSessionChange(ctx, userID)
	return session, nil
}

// Dashboard 优先读取缓存快照，未命中时全量重算
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uint) (*learnstats.Dashboard, error) {
	raw, err := s.Cache.Get(ctx, analyticsKey(userID))
	if err == nil {
		var d learnstats.Dashboard
		if jsonErr := json.Unmarshal(raw, &d); jsonErr == nil {
			return &d, nil
		}
		logger.Log.Warn("Discarding corrupt analytics snapshot", zap.Uint("userID", userID))
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Log.Warn("Analytics cache read failed", zap.Error(err))
	}
	return s.Refresh(ctx, userID)
}

// Refresh 重新计算并覆盖快照，后写入者生效
func (s *AnalyticsService) Refresh(ctx context.Context, userID uint) (*learnstats.Dashboard, error) {
	sessions, err := s.SessionRepo.ListByUser(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	d := learnstats.Summarize(toStatSessions(sessions, s.Location), s.now().In(s.Location))

	if raw, err := json.Marshal(d); err == nil {
		if err := s.Cache.Set(ctx, analyticsKey(userID), raw, s.SnapshotTTL); err != nil {
			logger.Log.Warn("Analytics cache write failed", zap.Error(err))
		}
	}
	return &d, nil
}

func (s *AnalyticsService) Invalidate(ctx context.Context, userID uint) error {
	return s.Cache.Delete(ctx, analyticsKey(userID))
}

func (s *AnalyticsService) afterSessionChange(ctx context.Context, userID uint) {
	if _, err := s.Refresh(ctx, userID); err != nil {
		logger.Log.Warn("Analytics refresh failed", zap.Uint("userID", userID), zap.Error(err))
	}
	if s.Achievements != nil {
		s.Achievements.EvaluateQuietly(ctx, userID)
	}
}

func toStatSessions(list []model.LearningSession, loc *time.Location) []learnstats.Session {
	out := make([]learnstats.Session, 0, len(list))
	for _, ls := range list {
		out = append(out, learnstats.Session{
			Date:           ls.StartTime.In(loc),
			Duration:       time.Duration(ls.Duration) * time.Second,
			Topic:          ls.Topic,
			QuestionsAsked: ls.QuestionsAsked,
		})
	}
	return out
}
