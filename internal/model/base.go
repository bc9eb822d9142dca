package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timestamps 由 gorm 自动维护，删除为软删除
type Timestamps struct {
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BaseModel 自增主键，用于课程内容与用户等后台可编辑的数据
type BaseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamps
}

// UUIDBase 用于对外暴露且不应被枚举的记录，例如提交
type UUIDBase struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Timestamps
}

func (b *UUIDBase) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

func NewID() string {
	return uuid.NewString()
}
