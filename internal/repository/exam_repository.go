package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	FindAll(courseID *uint, semesterID *uint) ([]model.Exam, error)
	Update(exam *model.Exam) error
	ReplaceQuestions(examID uint, questions []model.ExamQuestion) error
	CountQuestions(examID uint) (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// Associated ExamQuestion rows are created alongside the exam.
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_questions.position ASC")
		}).
		Preload("Questions.Question").
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAll(courseID *uint, semesterID *uint) ([]model.Exam, error) {
	var exams []model.Exam
	query := r.db.Order("created_at DESC")
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	if semesterID != nil {
		query = query.Where("semester_id = ?", *semesterID)
	}
	if err := query.Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) ReplaceQuestions(examID uint, questions []model.ExamQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", examID).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *examRepository) CountQuestions(examID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExamQuestion{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
