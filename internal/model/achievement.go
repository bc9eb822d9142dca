package model

import "time"

type AchievementTier string

const (
	TierBronze   AchievementTier = "bronze"
	TierSilver   AchievementTier = "silver"
	TierGold     AchievementTier = "gold"
	TierPlatinum AchievementTier = "platinum"
)

type AchievementCriterion string

const (
	CriterionActivitiesCompleted AchievementCriterion = "activities_completed"
	CriterionPerfectScores       AchievementCriterion = "perfect_scores"
	CriterionStreakDays          AchievementCriterion = "streak_days"
	CriterionQuestionsAsked      AchievementCriterion = "questions_asked"
)

// swagger:model Achievement
type Achievement struct {
	BaseModel
	Code        string               `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string               `gorm:"size:100;not null" json:"name"`
	Description string               `gorm:"size:255" json:"description"`
	Tier        AchievementTier      `gorm:"size:20;not null" json:"tier"`
	Criterion   AchievementCriterion `gorm:"size:50;not null" json:"criterion"`
	Threshold   int                  `gorm:"not null" json:"threshold"`
	XP          int                  `gorm:"default:0" json:"xp"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementID uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// DefaultAchievements seeds the badge catalogue on first migration.
var DefaultAchievements = []Achievement{
	{Code: "first_steps", Name: "First Steps", Description: "Complete your first activity", Tier: TierBronze, Criterion: CriterionActivitiesCompleted, Threshold: 1, XP: 10},
	{Code: "builder", Name: "Builder", Description: "Complete 10 activities", Tier: TierSilver, Criterion: CriterionActivitiesCompleted, Threshold: 10, XP: 50},
	{Code: "architect", Name: "Architect", Description: "Complete 25 activities", Tier: TierGold, Criterion: CriterionActivitiesCompleted, Threshold: 25, XP: 100},
	{Code: "pixel_perfect", Name: "Pixel Perfect", Description: "Score 100% on an activity", Tier: TierSilver, Criterion: CriterionPerfectScores, Threshold: 1, XP: 30},
	{Code: "flawless", Name: "Flawless", Description: "Score 100% on 10 activities", Tier: TierPlatinum, Criterion: CriterionPerfectScores, Threshold: 10, XP: 200},
	{Code: "on_a_roll", Name: "On a Roll", Description: "Study 3 days in a row", Tier: TierBronze, Criterion: CriterionStreakDays, Threshold: 3, XP: 15},
	{Code: "habit_formed", Name: "Habit Formed", Description: "Study 7 days in a row", Tier: TierGold, Criterion: CriterionStreakDays, Threshold: 7, XP: 75},
	{Code: "curious_mind", Name: "Curious Mind", Description: "Ask AuraBot 5 questions", Tier: TierBronze, Criterion: CriterionQuestionsAsked, Threshold: 5, XP: 10},
}
