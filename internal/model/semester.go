package model

import (
	"time"
)

type Semester struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Session   string    `json:"session" gorm:"not null"` // "2025/2026"
	Name      string    `json:"name" gorm:"not null"`    // "First Semester", "Second Semester"
	IsCurrent bool      `json:"is_current" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
