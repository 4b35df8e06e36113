package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type ScoreRepository interface {
	Create(score *model.Score) error
	FindByStudentAndSemester(studentID uint, semesterID uint) ([]model.Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(score *model.Score) error {
	return r.db.Create(score).Error
}

func (r *scoreRepository) FindByStudentAndSemester(studentID uint, semesterID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.db.Where("student_id = ? AND semester_id = ?", studentID, semesterID).Find(&scores).Error
	return scores, err
}
