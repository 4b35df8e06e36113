package model

import (
	"time"
)

// Attendance is the per student/course/semester roll-up read by result aggregation.
type Attendance struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	StudentID       uint      `json:"student_id" gorm:"not null;index;uniqueIndex:idx_attendance_scope"`
	CourseID        uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_attendance_scope"`
	SemesterID      uint      `json:"semester_id" gorm:"not null;uniqueIndex:idx_attendance_scope"`
	TotalSessions   int       `json:"total_sessions" gorm:"not null"`
	PresentSessions int       `json:"present_sessions" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
