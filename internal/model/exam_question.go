package model

import (
	"time"
)

// ExamQuestion fixes a question into an exam at a position. The set of question IDs
// is frozen at exam creation; question content is not snapshotted.
type ExamQuestion struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ExamID     uint      `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_exam_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;index;uniqueIndex:idx_exam_question"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Position   int       `json:"position" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
