package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type SemesterRepository interface {
	Create(semester *model.Semester) error
	FindByID(id uint) (*model.Semester, error)
	FindCurrent() (*model.Semester, error)
	FindAll() ([]model.Semester, error)
	SetCurrent(id uint) error
}

type semesterRepository struct {
	db *gorm.DB
}

func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{db: db}
}

func (r *semesterRepository) Create(semester *model.Semester) error {
	if !semester.IsCurrent {
		return r.db.Create(semester).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Semester{}).Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		return tx.Create(semester).Error
	})
}

func (r *semesterRepository) FindByID(id uint) (*model.Semester, error) {
	var semester model.Semester
	if err := r.db.First(&semester, id).Error; err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepository) FindCurrent() (*model.Semester, error) {
	var semester model.Semester
	if err := r.db.Where("is_current = ?", true).First(&semester).Error; err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepository) FindAll() ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.Order("created_at DESC").Find(&semesters).Error
	return semesters, err
}

// SetCurrent marks one semester current and clears the flag everywhere else.
func (r *semesterRepository) SetCurrent(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Semester{}, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Semester{}).Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Semester{}).Where("id = ?", id).
			Update("is_current", true).Error
	})
}
