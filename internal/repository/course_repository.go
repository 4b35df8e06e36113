package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindAll(departmentID *uint) ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll(departmentID *uint) ([]model.Course, error) {
	var courses []model.Course
	query := r.db.Order("code ASC")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	err := query.Find(&courses).Error
	return courses, err
}
