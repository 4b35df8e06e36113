package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindAll(courseID *uint, topicID *uint) ([]model.Question, error)
	FindEligible(courseID uint, topicIDs []uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindAll(courseID *uint, topicID *uint) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.Order("created_at desc")
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// FindEligible returns the active questions a pooled exam may draw from. An empty
// topic set means any topic in the course.
func (r *questionRepository) FindEligible(courseID uint, topicIDs []uint) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.Where("course_id = ? AND is_active = ?", courseID, true)
	if len(topicIDs) > 0 {
		query = query.Where("topic_id IN ?", topicIDs)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
