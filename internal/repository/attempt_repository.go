package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithAnswers(id uint) (*model.Attempt, error)
	FindByExamAndStudent(examID uint, studentID uint) (*model.Attempt, error)
	FindAllByExam(examID uint) ([]model.Attempt, error)
	FindCompletedByStudentAndSemester(studentID uint, semesterID uint) ([]model.Attempt, error)
	FindInProgress() ([]model.Attempt, error)
	Update(attempt *model.Attempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Exam").
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByExamAndStudent(examID uint, studentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("exam_id = ? AND student_id = ?", examID, studentID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByExam(examID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Student").
		Where("exam_id = ?", examID).
		Order("started_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindCompletedByStudentAndSemester(studentID uint, semesterID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Exam").
		Joins("JOIN exams ON exams.id = attempts.exam_id").
		Where("attempts.student_id = ? AND attempts.is_completed = ? AND exams.semester_id = ?", studentID, true, semesterID).
		Find(&attempts).Error
	return attempts, err
}

// FindInProgress returns every attempt not yet completed, with its exam and
// advisory answers preloaded. The expiry sweeper filters these by deadline.
func (r *attemptRepository) FindInProgress() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Exam").
		Preload("Answers").
		Where("is_completed = ?", false).
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	return r.db.Save(attempt).Error
}
