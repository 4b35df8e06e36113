package dto

import "time"

// QuestionCreateDTO is used by instructors to add a question to the bank.
type QuestionCreateDTO struct {
	CourseID      uint    `json:"course_id" binding:"required"`
	TopicID       *uint   `json:"topic_id"`
	Text          string  `json:"text" binding:"required"`
	OptionA       string  `json:"option_a" binding:"required"`
	OptionB       string  `json:"option_b" binding:"required"`
	OptionC       string  `json:"option_c" binding:"required"`
	OptionD       string  `json:"option_d" binding:"required"`
	CorrectOption string  `json:"correct_option" binding:"required,oneof=A B C D"`
	Marks         float64 `json:"marks" binding:"required,gt=0"`
	Difficulty    string  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// QuestionResponseDTO is the instructor-facing view, correct option included.
type QuestionResponseDTO struct {
	ID            uint      `json:"id"`
	CourseID      uint      `json:"course_id"`
	TopicID       *uint     `json:"topic_id,omitempty"`
	Text          string    `json:"text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectOption string    `json:"correct_option"`
	Marks         float64   `json:"marks"`
	Difficulty    string    `json:"difficulty,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExamQuestionDTO is the student-facing view of a question inside a started
// attempt. The correct option never appears here.
type ExamQuestionDTO struct {
	ID       uint    `json:"id"`
	Position int     `json:"position"`
	Text     string  `json:"text"`
	OptionA  string  `json:"option_a"`
	OptionB  string  `json:"option_b"`
	OptionC  string  `json:"option_c"`
	OptionD  string  `json:"option_d"`
	Marks    float64 `json:"marks"`
}

type TopicCreateDTO struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type TopicResponseDTO struct {
	ID       uint   `json:"id"`
	CourseID uint   `json:"course_id"`
	Name     string `json:"name"`
}
