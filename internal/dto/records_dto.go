package dto

type DepartmentCreateDTO struct {
	Name string `json:"name" binding:"required"`
}

type CourseCreateDTO struct {
	Code         string `json:"code" binding:"required"`
	Title        string `json:"title" binding:"required"`
	DepartmentID uint   `json:"department_id" binding:"required"`
	Level        int    `json:"level" binding:"required,gt=0"`
}

type StudentCreateDTO struct {
	MatricNumber string `json:"matric_number" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	DepartmentID uint   `json:"department_id" binding:"required"`
	Level        int    `json:"level" binding:"required,gt=0"`
}

type SemesterCreateDTO struct {
	Session   string `json:"session" binding:"required"`
	Name      string `json:"name" binding:"required"`
	IsCurrent bool   `json:"is_current"`
}

type ScoreCreateDTO struct {
	StudentID  uint    `json:"student_id" binding:"required"`
	CourseID   uint    `json:"course_id" binding:"required"`
	SemesterID uint    `json:"semester_id" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Value      float64 `json:"value" binding:"gte=0"`
	MaxValue   float64 `json:"max_value" binding:"required,gt=0"`
}

type AttendanceUpsertDTO struct {
	StudentID       uint `json:"student_id" binding:"required"`
	CourseID        uint `json:"course_id" binding:"required"`
	SemesterID      uint `json:"semester_id" binding:"required"`
	TotalSessions   int  `json:"total_sessions" binding:"gte=0"`
	PresentSessions int  `json:"present_sessions" binding:"gte=0"`
}
