package service

import (
	"errors"
	"fmt"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	GetQuestion(id uint) (*dto.QuestionResponseDTO, error)
	ListQuestions(courseID *uint, topicID *uint) ([]dto.QuestionResponseDTO, error)
	UpdateQuestion(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(id uint) error
	CreateTopic(req dto.TopicCreateDTO) (*dto.TopicResponseDTO, error)
	ListTopics(courseID uint) ([]dto.TopicResponseDTO, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	topicRepo    repository.TopicRepository
	courseRepo   repository.CourseRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	topicRepo repository.TopicRepository,
	courseRepo repository.CourseRepository,
) QuestionService {
	return &questionService{questionRepo: questionRepo, topicRepo: topicRepo, courseRepo: courseRepo}
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		return nil, fmt.Errorf("course %d not found: %w", req.CourseID, err)
	}

	var question model.Question
	if err := copier.Copy(&question, &req); err != nil {
		log.Error().Err(err).Msg("Failed to copy question DTO to model")
		return nil, fmt.Errorf("copying question data: %w", err)
	}
	question.IsActive = true

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	return s.toResponse(&question), nil
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", id, err)
	}
	return s.toResponse(question), nil
}

func (s *questionService) ListQuestions(courseID *uint, topicID *uint) ([]dto.QuestionResponseDTO, error) {
	questions, err := s.questionRepo.FindAll(courseID, topicID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		dtos = append(dtos, *s.toResponse(&questions[i]))
	}
	return dtos, nil
}

func (s *questionService) UpdateQuestion(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question not found with ID %d: %w", id, err)
		}
		return nil, fmt.Errorf("loading question %d: %w", id, err)
	}

	// Edits apply to future grading reads as well: exams freeze question IDs,
	// not question content.
	question.Text = req.Text
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectOption = req.CorrectOption
	question.Marks = req.Marks
	question.Difficulty = req.Difficulty
	question.TopicID = req.TopicID

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question %d: %w", id, err)
	}
	return s.toResponse(question), nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting question %d: %w", id, err)
	}
	return nil
}

func (s *questionService) CreateTopic(req dto.TopicCreateDTO) (*dto.TopicResponseDTO, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		return nil, fmt.Errorf("course %d not found: %w", req.CourseID, err)
	}
	topic := model.Topic{CourseID: req.CourseID, Name: req.Name}
	if err := s.topicRepo.Create(&topic); err != nil {
		return nil, fmt.Errorf("database error creating topic: %w", err)
	}
	return &dto.TopicResponseDTO{ID: topic.ID, CourseID: topic.CourseID, Name: topic.Name}, nil
}

func (s *questionService) ListTopics(courseID uint) ([]dto.TopicResponseDTO, error) {
	topics, err := s.topicRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching topics: %w", err)
	}
	dtos := make([]dto.TopicResponseDTO, 0, len(topics))
	for _, t := range topics {
		dtos = append(dtos, dto.TopicResponseDTO{ID: t.ID, CourseID: t.CourseID, Name: t.Name})
	}
	return dtos, nil
}

func (s *questionService) toResponse(question *model.Question) *dto.QuestionResponseDTO {
	var resp dto.QuestionResponseDTO
	if err := copier.Copy(&resp, question); err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to copy question to DTO")
	}
	return &resp
}
