package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is one student's single run through one exam. The unique index on
// (exam_id, student_id) is the authoritative at-most-one-attempt guarantee;
// racing Start calls degrade to a rejected insert, never a duplicate row.
type Attempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ExamID      uint           `json:"exam_id" gorm:"not null;uniqueIndex:idx_exam_student"`
	Exam        Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	StudentID   uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_exam_student"`
	Student     Student        `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	StartedAt   time.Time      `json:"started_at" gorm:"not null"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	IsCompleted bool           `json:"is_completed" gorm:"default:false;index"`
	Score       *float64       `json:"score,omitempty"`
	Percentage  *float64       `json:"percentage,omitempty"`
	IsPassed    bool           `json:"is_passed" gorm:"default:false"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
