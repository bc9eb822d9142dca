package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Activity
type Activity struct {
	BaseModel
	LessonID      uint   `gorm:"index;not null" json:"lessonId"`
	Title         string `gorm:"size:200;not null" json:"title"`
	Instructions  string `gorm:"type:text" json:"instructions"`
	StarterCode   string `gorm:"type:text" json:"starterCode"`
	ExpectedHTML  string `gorm:"column:expected_html;type:text;not null" json:"expectedHtml,omitempty"`
	PassThreshold int    `gorm:"default:0" json:"passThreshold"`
	XP            int    `gorm:"default:0" json:"xp"`
}

func (Activity) TableName() string {
	return "activities"
}

type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusFailed    CompletionStatus = "failed"
)

// Submission records one attempt at an activity. IsCompleted and
// CompletionStatus are always written explicitly; a non-zero score alone
// never means the activity was passed.
//
// swagger:model Submission
type Submission struct {
	UUIDBase
	ActivityID       uint             `gorm:"index;not null" json:"activityId"`
	UserID           uint             `gorm:"index;not null" json:"userId"`
	Code             string           `gorm:"type:text" json:"code"` // 上限 util.MaxSubmissionBytes，低于 TEXT 的 65535
	Score            int              `gorm:"default:0" json:"score"`
	IsCompleted      bool             `gorm:"not null;default:false" json:"is_completed"`
	CompletionStatus CompletionStatus `gorm:"size:20;not null" json:"completion_status"`
	Feedback         string           `gorm:"type:text" json:"feedback"`
	LintErrors       datatypes.JSON   `json:"lintErrors"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ActivityCompletion marks the first time a user passed an activity. It
// survives clearing submissions so activity XP is granted once per user.
type ActivityCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_activity_completion;not null" json:"userId"`
	ActivityID  uint      `gorm:"uniqueIndex:idx_user_activity_completion;not null" json:"activityId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (ActivityCompletion) TableName() string {
	return "activity_completions"
}
