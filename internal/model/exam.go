package model

import (
	"time"

	"gorm.io/gorm"
)

// Exam categories; they decide which aggregation bucket an attempt's score lands in.
const (
	CategoryTest = "test"
	CategoryExam = "exam"
)

type Exam struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CourseID        uint           `json:"course_id" gorm:"not null;index"`
	Course          Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	SemesterID      uint           `json:"semester_id" gorm:"not null;index"`
	Semester        Semester       `json:"semester,omitempty" gorm:"foreignKey:SemesterID"`
	Title           string         `json:"title" gorm:"not null"`
	Category        string         `json:"category" gorm:"not null;default:'exam'"` // "test" or "exam"
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	TotalMarks      float64        `json:"total_marks" gorm:"not null"`
	PassMark        float64        `json:"pass_mark" gorm:"not null"` // percentage, inclusive boundary
	StartWindow     *time.Time     `json:"start_window,omitempty"`
	EndWindow       *time.Time     `json:"end_window,omitempty"`
	AllowReview     bool           `json:"allow_review" gorm:"default:false"`
	IsPublished     bool           `json:"is_published" gorm:"default:false;index"`
	Questions       []ExamQuestion `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
