package dto

// StudentCourseResultDTO is one row of the aggregate results roll-up: one student
// in one course for the current semester.
type StudentCourseResultDTO struct {
	StudentID       uint    `json:"student_id"`
	MatricNumber    string  `json:"matric_number"`
	StudentName     string  `json:"student_name"`
	CourseID        uint    `json:"course_id"`
	CourseCode      string  `json:"course_code"`
	AttendanceScore float64 `json:"attendance_score"`
	TestScore       float64 `json:"test_score"`
	ExamScore       float64 `json:"exam_score"`
	Total           float64 `json:"total"`
	Grade           string  `json:"grade"`
}
