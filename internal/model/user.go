package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string         `gorm:"size:100;not null" json:"name"`
	Email    string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string         `gorm:"size:100;not null" json:"-"`
	Role     UserRole       `gorm:"size:20;default:'student'" json:"role"`
	XP       int            `gorm:"default:0" json:"xp"`
	Settings datatypes.JSON `json:"settings"`
	Disabled bool           `gorm:"default:false" json:"disabled"`
	LastSeen *time.Time     `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
