package model

import (
	"time"
)

// Answer stores one selection within an attempt. Rows written while the attempt is
// in progress are advisory resume data; the set is replaced wholesale when the
// attempt is graded, at which point IsCorrect is frozen.
type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AttemptID  uint      `json:"attempt_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Selected   string    `json:"selected" gorm:"not null"` // "A".."D"
	IsCorrect  bool      `json:"is_correct" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
