package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminExamService covers exam definition: creation (explicit question list or
// topic pooling), metadata updates, question-set replacement, and the
// instructor-facing results listing.
type AdminExamService interface {
	CreateExam(req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	UpdateExam(examID uint, req dto.ExamUpdateDTO) (*dto.ExamResponseDTO, error)
	ReplaceQuestions(examID uint, req dto.ExamQuestionsReplaceDTO) error
	GetExam(examID uint) (*dto.ExamResponseDTO, error)
	ListExams(courseID *uint, semesterID *uint) ([]dto.ExamResponseDTO, error)
	GetExamResults(examID uint) ([]dto.ExamResultRowDTO, error)
}

type adminExamService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	courseRepo   repository.CourseRepository
	semesterRepo repository.SemesterRepository
	rng          *rand.Rand
}

func NewAdminExamService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	courseRepo repository.CourseRepository,
	semesterRepo repository.SemesterRepository,
) AdminExamService {
	return &adminExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		courseRepo:   courseRepo,
		semesterRepo: semesterRepo,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *adminExamService) CreateExam(req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		return nil, fmt.Errorf("course %d not found: %w", req.CourseID, err)
	}
	if _, err := s.semesterRepo.FindByID(req.SemesterID); err != nil {
		return nil, fmt.Errorf("semester %d not found: %w", req.SemesterID, err)
	}

	var selected []model.Question
	switch {
	case len(req.QuestionIDs) > 0:
		questions, err := s.questionRepo.FindByIDs(req.QuestionIDs)
		if err != nil {
			return nil, fmt.Errorf("loading questions: %w", err)
		}
		if len(questions) != len(req.QuestionIDs) {
			return nil, fmt.Errorf("exam references %d questions but only %d exist", len(req.QuestionIDs), len(questions))
		}
		byID := make(map[uint]model.Question, len(questions))
		for _, q := range questions {
			byID[q.ID] = q
		}
		// Preserve the caller's ordering.
		for _, id := range req.QuestionIDs {
			selected = append(selected, byID[id])
		}
	case req.NumQuestions > 0:
		eligible, err := s.questionRepo.FindEligible(req.CourseID, req.TopicIDs)
		if err != nil {
			return nil, fmt.Errorf("loading eligible questions: %w", err)
		}
		selected = SelectPool(s.rng, eligible, req.NumQuestions)
		if len(selected) < req.NumQuestions {
			log.Warn().Int("requested", req.NumQuestions).Int("eligible", len(selected)).
				Uint("courseID", req.CourseID).Msg("Pool smaller than requested, truncating")
		}
	default:
		return nil, fmt.Errorf("exam requires either question_ids or pooling parameters (num_questions)")
	}

	if len(selected) == 0 {
		return nil, ErrExamHasNoQuestions
	}

	exam := model.Exam{
		CourseID:        req.CourseID,
		SemesterID:      req.SemesterID,
		Title:           req.Title,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		PassMark:        req.PassMark,
		StartWindow:     req.StartWindow,
		EndWindow:       req.EndWindow,
		AllowReview:     req.AllowReview,
	}
	for i, q := range selected {
		exam.Questions = append(exam.Questions, model.ExamQuestion{
			QuestionID: q.ID,
			Position:   i + 1,
		})
	}

	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Msg("Failed to create exam")
		return nil, fmt.Errorf("database error creating exam: %w", err)
	}

	log.Info().Uint("examID", exam.ID).Int("questions", len(exam.Questions)).
		Str("category", exam.Category).Msg("Exam created")
	return s.toResponse(&exam, len(exam.Questions)), nil
}

func (s *adminExamService) UpdateExam(examID uint, req dto.ExamUpdateDTO) (*dto.ExamResponseDTO, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Category != nil {
		exam.Category = *req.Category
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.TotalMarks != nil {
		exam.TotalMarks = *req.TotalMarks
	}
	if req.PassMark != nil {
		exam.PassMark = *req.PassMark
	}
	if req.StartWindow != nil {
		if req.StartWindow.IsZero() {
			exam.StartWindow = nil
		} else {
			exam.StartWindow = req.StartWindow
		}
	}
	if req.EndWindow != nil {
		if req.EndWindow.IsZero() {
			exam.EndWindow = nil
		} else {
			exam.EndWindow = req.EndWindow
		}
	}
	if req.AllowReview != nil {
		exam.AllowReview = *req.AllowReview
	}
	if req.IsPublished != nil {
		exam.IsPublished = *req.IsPublished
	}

	if err := s.examRepo.Update(exam); err != nil {
		return nil, fmt.Errorf("updating exam %d: %w", examID, err)
	}

	count, err := s.examRepo.CountQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("counting exam questions: %w", err)
	}
	return s.toResponse(exam, int(count)), nil
}

// ReplaceQuestions swaps the fixed question set of an unpublished exam. Once an
// exam is published its question identifiers are locked.
func (s *adminExamService) ReplaceQuestions(examID uint, req dto.ExamQuestionsReplaceDTO) error {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return fmt.Errorf("loading exam %d: %w", examID, err)
	}
	if exam.IsPublished {
		return ErrExamLocked
	}

	questions, err := s.questionRepo.FindByIDs(req.QuestionIDs)
	if err != nil {
		return fmt.Errorf("loading questions: %w", err)
	}
	if len(questions) != len(req.QuestionIDs) {
		return fmt.Errorf("replacement references %d questions but only %d exist", len(req.QuestionIDs), len(questions))
	}

	replacement := make([]model.ExamQuestion, 0, len(req.QuestionIDs))
	for i, id := range req.QuestionIDs {
		replacement = append(replacement, model.ExamQuestion{
			ExamID:     examID,
			QuestionID: id,
			Position:   i + 1,
		})
	}
	return s.examRepo.ReplaceQuestions(examID, replacement)
}

func (s *adminExamService) GetExam(examID uint) (*dto.ExamResponseDTO, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}
	count, err := s.examRepo.CountQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("counting exam questions: %w", err)
	}
	return s.toResponse(exam, int(count)), nil
}

func (s *adminExamService) ListExams(courseID *uint, semesterID *uint) ([]dto.ExamResponseDTO, error) {
	exams, err := s.examRepo.FindAll(courseID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("listing exams: %w", err)
	}
	dtos := make([]dto.ExamResponseDTO, 0, len(exams))
	for i := range exams {
		count, err := s.examRepo.CountQuestions(exams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("counting exam questions: %w", err)
		}
		dtos = append(dtos, *s.toResponse(&exams[i], int(count)))
	}
	return dtos, nil
}

func (s *adminExamService) GetExamResults(examID uint) ([]dto.ExamResultRowDTO, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	attempts, err := s.attemptRepo.FindAllByExam(examID)
	if err != nil {
		return nil, fmt.Errorf("loading attempts for exam %d: %w", examID, err)
	}

	rows := make([]dto.ExamResultRowDTO, 0, len(attempts))
	for _, attempt := range attempts {
		rows = append(rows, dto.ExamResultRowDTO{
			AttemptID:    attempt.ID,
			StudentID:    attempt.StudentID,
			MatricNumber: attempt.Student.MatricNumber,
			StudentName:  attempt.Student.FirstName + " " + attempt.Student.LastName,
			StartedAt:    attempt.StartedAt,
			SubmittedAt:  attempt.SubmittedAt,
			IsCompleted:  attempt.IsCompleted,
			Score:        attempt.Score,
			Percentage:   attempt.Percentage,
			IsPassed:     attempt.IsPassed,
		})
	}
	return rows, nil
}

func (s *adminExamService) toResponse(exam *model.Exam, questionCount int) *dto.ExamResponseDTO {
	var resp dto.ExamResponseDTO
	if err := copier.Copy(&resp, exam); err != nil {
		log.Error().Err(err).Uint("examID", exam.ID).Msg("Failed to copy exam to DTO")
	}
	resp.QuestionCount = questionCount
	return &resp
}
