package model

import "time"

// AuraBotMessage stores one assistant question/answer pair.
type AuraBotMessage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index" json:"userId"`
	SessionID   string    `gorm:"size:64;index" json:"sessionId"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	Answer      string    `gorm:"type:text;not null" json:"answer"`
	HadHTML     bool      `json:"hadHtml"`
	HadFeedback bool      `json:"hadFeedback"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (AuraBotMessage) TableName() string {
	return "aurabot_messages"
}
