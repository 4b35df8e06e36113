package repository

import (
	"github.com/classify-edu/classify-server/internal/model"
	"gorm.io/gorm"
)

type TopicRepository interface {
	Create(topic *model.Topic) error
	FindByCourseID(courseID uint) ([]model.Topic, error)
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(topic *model.Topic) error {
	return r.db.Create(topic).Error
}

func (r *topicRepository) FindByCourseID(courseID uint) ([]model.Topic, error) {
	var topics []model.Topic
	if err := r.db.Where("course_id = ?", courseID).Order("name ASC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}
