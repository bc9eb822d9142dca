package model

import "time"

// LearningSession is the server-side record of a study session.
type LearningSession struct {
	BaseModel
	UserID         uint       `gorm:"index;not null" json:"userId"`
	Topic          string     `gorm:"size:100" json:"topic"`
	StartTime      time.Time  `gorm:"index" json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	Duration       int        `gorm:"default:0" json:"durationSeconds"`
	QuestionsAsked int        `gorm:"default:0" json:"questionsAsked"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}
