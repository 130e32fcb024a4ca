package models

import "time"

// BaseModel mirrors gorm.Model without the soft-delete column so that
// deleted rows release their unique index entries immediately.
type BaseModel struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
