package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/learnstats"
	"aura_edu_backend/pkg/logger"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	xpPerLevel       = 200
	leaderboardLimit = 10
)

type AchievementService struct {
	AchievementRepo AchievementStore
	UserRepo        UserStore
	SubmissionRepo  SubmissionStore
	SessionRepo     SessionStore
	AuraBotRepo     AuraBotStore
	Location        *time.Location

	now func() time.Time
}

func NewAchievementService(
	achievementRepo AchievementStore,
	userRepo UserStore,
	submissionRepo SubmissionStore,
	sessionRepo SessionStore,
	auraBotRepo AuraBotStore,
	loc *time.Location,
) *AchievementService {
	if loc == nil {
		loc = time.Local
	}
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		SubmissionRepo:  submissionRepo,
		SessionRepo:     sessionRepo,
		AuraBotRepo:     auraBotRepo,
		Location:        loc,
		now:             time.Now,
	}
}

type BadgeStatus struct {
	model.Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
	Current  int        `json:"current"`
	Progress int        `json:"progress"`
}

type AchievementSummary struct {
	TotalXP      int                `json:"totalXp"`
	CurrentLevel int                `json:"currentLevel"`
	NextLevelXP  int                `json:"nextLevelXp"`
	EarnedCount  int                `json:"earnedCount"`
	Badges       []BadgeStatus      `json:"badges"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Rank int    `json:"rank"`
	User string `json:"user"`
	XP   int    `json:"xp"`
}

// Summary 返回用户的全部徽章（已获得与未解锁）、等级和排行榜
func (s *AchievementService) Summary(ctx context.Context, userID uint) (*AchievementSummary, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	all, err := s.AchievementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.earnedIndex(ctx, userID)
	if err != nil {
		return nil, err
	}
	counters, err := s.counters(ctx, userID)
	if err != nil {
		return nil, err
	}

	badges := make([]BadgeStatus, 0, len(all))
	for _, a := range all {
		b := BadgeStatus{Achievement: a, Current: counters[a.Criterion]}
		if at, ok := earned[a.ID]; ok {
			b.Earned = true
			b.EarnedAt = &at
			b.Progress = 100
		} else if a.Threshold > 0 {
			b.Progress = min(100, b.Current*100/a.Threshold)
		}
		badges = append(badges, b)
	}

	leaderboard, err := s.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	level, nextLevelXP := calculateLevel(user.XP)
	return &AchievementSummary{
		TotalXP:      user.XP,
		CurrentLevel: level,
		NextLevelXP:  nextLevelXP,
		EarnedCount:  len(earned),
		Badges:       badges,
		Leaderboard:  leaderboard,
	}, nil
}

func (s *AchievementService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank: i + 1,
			User: user.Name,
			XP:   user.XP,
		}
	}
	return leaderboard, nil
}

// Evaluate 检查所有未获得的徽章，达到阈值的立即授予并累加 XP
func (s *AchievementService) Evaluate(ctx context.Context, userID uint) ([]model.Achievement, error) {
	all, err := s.AchievementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.earnedIndex(ctx, userID)
	if err != nil {
		return nil, err
	}
	counters, err := s.counters(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var awarded []model.Achievement
	for _, a := range all {
		if _, ok := earned[a.ID]; ok {
			continue
		}
		if counters[a.Criterion] < a.Threshold {
			continue
		}
		created, err := s.AchievementRepo.Award(ctx, userID, a.ID, now)
		if err != nil {
			return awarded, fmt.Errorf("award %s: %w", a.Code, err)
		}
		if !created {
			continue
		}
		if a.XP > 0 {
			if err := s.UserRepo.AddXP(ctx, userID, a.XP); err != nil {
				return awarded, fmt.Errorf("add achievement xp: %w", err)
			}
		}
		logger.Log.Info("Achievement unlocked",
			zap.Uint("userID", userID),
			zap.String("code", a.Code),
			zap.String("tier", string(a.Tier)))
		awarded = append(awarded, a)
	}
	return awarded, nil
}

// EvaluateQuietly 用于主流程之后的附带评估，失败只记录日志
func (s *AchievementService) EvaluateQuietly(ctx context.Context, userID uint) []model.Achievement {
	awarded, err := s.Evaluate(ctx, userID)
	if err != nil {
		logger.Log.Warn("Achievement evaluation failed", zap.Uint("userID", userID), zap.Error(err))
	}
	return awarded
}

func (s *AchievementService) earnedIndex(ctx context.Context, userID uint) (map[uint]time.Time, error) {
	list, err := s.AchievementRepo.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]time.Time, len(list))
	for _, ua := range list {
		index[ua.AchievementID] = ua.EarnedAt
	}
	return index, nil
}

func (s *AchievementService) counters(ctx context.Context, userID uint) (map[model.AchievementCriterion]int, error) {
	completed, err := s.SubmissionRepo.CountCompletedActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	perfect, err := s.SubmissionRepo.CountPerfectActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.AuraBotRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.SessionRepo.ListByUser(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	streak := learnstats.Streaks(toStatSessions(sessions, s.Location), s.now().In(s.Location))

	return map[model.AchievementCriterion]int{
		model.CriterionActivitiesCompleted: int(completed),
		model.CriterionPerfectScores:       int(perfect),
		model.CriterionQuestionsAsked:      int(questions),
		model.CriterionStreakDays:          max(streak.Current, streak.Longest),
	}, nil
}

func calculateLevel(xp int) (int, int) {
	// 每200XP升一级
	level := xp / xpPerLevel
	nextLevelXP := (level + 1) * xpPerLevel
	return level, nextLevelXP
}
