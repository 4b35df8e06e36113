package dto

import "time"

// AttemptStartResponseDTO is returned by the start endpoint, for both a fresh
// attempt and a resumed one. Remaining seconds are computed from StartedAt so a
// client crash never resets the clock.
type AttemptStartResponseDTO struct {
	AttemptID        uint              `json:"attempt_id"`
	ExamID           uint              `json:"exam_id"`
	ExamTitle        string            `json:"exam_title"`
	DurationMinutes  int               `json:"duration_minutes"`
	TotalMarks       float64           `json:"total_marks"`
	StartedAt        time.Time         `json:"started_at"`
	RemainingSeconds int64             `json:"remaining_seconds"`
	Resumed          bool              `json:"resumed"`
	Questions        []ExamQuestionDTO `json:"questions"`
	SavedAnswers     []SavedAnswerDTO  `json:"saved_answers,omitempty"`
}

// SavedAnswerDTO echoes advisory selections back to a resuming client.
type SavedAnswerDTO struct {
	QuestionID uint   `json:"question_id"`
	Selected   string `json:"selected"`
}

type AnswerSaveDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Selected   string `json:"selected" binding:"required,oneof=A B C D"`
}

type AnswerSubmitDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Selected   string `json:"selected" binding:"required,oneof=A B C D"`
}

type AttemptSubmitDTO struct {
	Answers []AnswerSubmitDTO `json:"answers" binding:"dive"`
}

type AttemptResultDTO struct {
	AttemptID   uint              `json:"attempt_id"`
	ExamID      uint              `json:"exam_id"`
	ExamTitle   string            `json:"exam_title"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	Score       float64           `json:"score"`
	TotalMarks  float64           `json:"total_marks"`
	Percentage  float64           `json:"percentage"`
	IsPassed    bool              `json:"is_passed"`
	Answers     []AnswerReviewDTO `json:"answers,omitempty"` // only when the exam allows review
}

type AnswerReviewDTO struct {
	QuestionID    uint    `json:"question_id"`
	Text          string  `json:"text"`
	Selected      string  `json:"selected"`
	CorrectOption string  `json:"correct_option"`
	IsCorrect     bool    `json:"is_correct"`
	Marks         float64 `json:"marks"`
}
