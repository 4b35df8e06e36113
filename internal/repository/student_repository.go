package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(student *model.Student) error
	FindByID(id uint) (*model.Student, error)
	FindFiltered(departmentID *uint, level *int) ([]model.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindFiltered(departmentID *uint, level *int) ([]model.Student, error) {
	var students []model.Student
	query := r.db.Order("matric_number ASC")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if level != nil {
		query = query.Where("level = ?", *level)
	}
	err := query.Find(&students).Error
	return students, err
}
