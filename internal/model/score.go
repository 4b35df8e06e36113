package model

import (
	"time"

	"gorm.io/gorm"
)

// Score is a written-exam record entered by an instructor. It is read by result
// aggregation but owned by the records module, not by the attempt lifecycle.
type Score struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	StudentID  uint           `json:"student_id" gorm:"not null;index"`
	CourseID   uint           `json:"course_id" gorm:"not null;index"`
	SemesterID uint           `json:"semester_id" gorm:"not null;index"`
	Title      string         `json:"title" gorm:"not null"`
	Value      float64        `json:"value" gorm:"not null"`
	MaxValue   float64        `json:"max_value" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
