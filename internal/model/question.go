package model

import (
	"time"

	"gorm.io/gorm"
)

// Valid values for Question.CorrectOption and Answer.Selected.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CourseID      uint           `json:"course_id" gorm:"not null;index"`
	TopicID       *uint          `json:"topic_id,omitempty" gorm:"index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"not null"`
	OptionB       string         `json:"option_b" gorm:"not null"`
	OptionC       string         `json:"option_c" gorm:"not null"`
	OptionD       string         `json:"option_d" gorm:"not null"`
	CorrectOption string         `json:"correct_option" gorm:"not null"` // "A".."D"
	Marks         float64        `json:"marks" gorm:"not null"`          // may be fractional, e.g. 0.5
	Difficulty    string         `json:"difficulty,omitempty"`           // "easy", "medium", "hard"
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
