package dto

import "time"

// ExamCreateDTO creates an exam with either an explicit ordered question list or
// pooling parameters (TopicIDs + NumQuestions). When pooling is used the drawn
// subset becomes the exam's fixed question list; it is never re-rolled per student.
type ExamCreateDTO struct {
	CourseID        uint       `json:"course_id" binding:"required"`
	SemesterID      uint       `json:"semester_id" binding:"required"`
	Title           string     `json:"title" binding:"required"`
	Category        string     `json:"category" binding:"required,oneof=test exam"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,gt=0"`
	TotalMarks      float64    `json:"total_marks" binding:"required,gt=0"`
	PassMark        float64    `json:"pass_mark" binding:"gte=0,lte=100"`
	StartWindow     *time.Time `json:"start_window"`
	EndWindow       *time.Time `json:"end_window"`
	AllowReview     bool       `json:"allow_review"`

	QuestionIDs  []uint `json:"question_ids"`
	TopicIDs     []uint `json:"topic_ids"`
	NumQuestions int    `json:"num_questions"`
}

// ExamUpdateDTO updates exam metadata; the question set is replaced separately.
// Nil fields are left unchanged. For the windows, the zero time clears the
// bound; any other value replaces it.
type ExamUpdateDTO struct {
	Title           *string    `json:"title"`
	Category        *string    `json:"category" binding:"omitempty,oneof=test exam"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gt=0"`
	TotalMarks      *float64   `json:"total_marks" binding:"omitempty,gt=0"`
	PassMark        *float64   `json:"pass_mark" binding:"omitempty,gte=0,lte=100"`
	StartWindow     *time.Time `json:"start_window"`
	EndWindow       *time.Time `json:"end_window"`
	AllowReview     *bool      `json:"allow_review"`
	IsPublished     *bool      `json:"is_published"`
}

type ExamQuestionsReplaceDTO struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

type ExamResponseDTO struct {
	ID              uint       `json:"id"`
	CourseID        uint       `json:"course_id"`
	SemesterID      uint       `json:"semester_id"`
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalMarks      float64    `json:"total_marks"`
	PassMark        float64    `json:"pass_mark"`
	StartWindow     *time.Time `json:"start_window,omitempty"`
	EndWindow       *time.Time `json:"end_window,omitempty"`
	AllowReview     bool       `json:"allow_review"`
	IsPublished     bool       `json:"is_published"`
	QuestionCount   int        `json:"question_count"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ExamResultRowDTO is one attempt row in the instructor results listing.
type ExamResultRowDTO struct {
	AttemptID    uint       `json:"attempt_id"`
	StudentID    uint       `json:"student_id"`
	MatricNumber string     `json:"matric_number"`
	StudentName  string     `json:"student_name"`
	StartedAt    time.Time  `json:"started_at"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	IsCompleted  bool       `json:"is_completed"`
	Score        *float64   `json:"score,omitempty"`
	Percentage   *float64   `json:"percentage,omitempty"`
	IsPassed     bool       `json:"is_passed"`
}
