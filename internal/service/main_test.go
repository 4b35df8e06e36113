package service

import (
	"testing"

	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database and migrates the full
// schema. Capping the pool at one connection keeps every session on the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.Department{},
		&model.Course{},
		&model.Student{},
		&model.Semester{},
		&model.Topic{},
		&model.Question{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.Attempt{},
		&model.Answer{},
		&model.Score{},
		&model.Attendance{},
	); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return db
}

// seedBase inserts the department/course/student/semester scaffolding most
// scenarios need and returns the created rows.
func seedBase(t *testing.T, db *gorm.DB) (model.Course, model.Student, model.Semester) {
	t.Helper()

	department := model.Department{Name: "Computer Science"}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("seeding department: %v", err)
	}
	course := model.Course{Code: "CSC101", Title: "Intro to Computing", DepartmentID: department.ID, Level: 100}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seeding course: %v", err)
	}
	student := model.Student{MatricNumber: "CSC/2026/001", FirstName: "Ada", LastName: "Obi", DepartmentID: department.ID, Level: 100}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seeding student: %v", err)
	}
	semester := model.Semester{Session: "2025/2026", Name: "First Semester", IsCurrent: true}
	if err := db.Create(&semester).Error; err != nil {
		t.Fatalf("seeding semester: %v", err)
	}
	return course, student, semester
}

// seedQuestions inserts n active questions for a course, all worth the given
// marks with correct option "A".
func seedQuestions(t *testing.T, db *gorm.DB, courseID uint, n int, marks float64) []model.Question {
	t.Helper()

	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := model.Question{
			CourseID:      courseID,
			Text:          "What is the answer?",
			OptionA:       "Right",
			OptionB:       "Wrong",
			OptionC:       "Wrong",
			OptionD:       "Wrong",
			CorrectOption: model.OptionA,
			Marks:         marks,
			IsActive:      true,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seeding question %d: %v", i, err)
		}
		questions = append(questions, q)
	}
	return questions
}

// seedExam inserts a published exam over the given questions in order.
func seedExam(t *testing.T, db *gorm.DB, courseID, semesterID uint, questions []model.Question, mutate func(*model.Exam)) model.Exam {
	t.Helper()

	exam := model.Exam{
		CourseID:        courseID,
		SemesterID:      semesterID,
		Title:           "Midterm CBT",
		Category:        model.CategoryTest,
		DurationMinutes: 30,
		TotalMarks:      0,
		PassMark:        40,
		IsPublished:     true,
	}
	for _, q := range questions {
		exam.TotalMarks += q.Marks
	}
	if mutate != nil {
		mutate(&exam)
	}
	for i, q := range questions {
		exam.Questions = append(exam.Questions, model.ExamQuestion{QuestionID: q.ID, Position: i + 1})
	}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seeding exam: %v", err)
	}
	return exam
}
