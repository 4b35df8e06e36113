package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	Upsert(record *model.Attendance) error
	FindByStudentAndSemester(studentID uint, semesterID uint) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(record *model.Attendance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "semester_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_sessions", "present_sessions", "updated_at"}),
	}).Create(record).Error
}

func (r *attendanceRepository) FindByStudentAndSemester(studentID uint, semesterID uint) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Where("student_id = ? AND semester_id = ?", studentID, semesterID).Find(&records).Error
	return records, err
}
