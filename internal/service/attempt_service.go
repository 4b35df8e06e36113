package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService owns the attempt state machine: start (with resume semantics),
// advisory answer saves, and the one-shot submit that grades the attempt.
type AttemptService interface {
	StartAttempt(examID uint, studentID uint) (*dto.AttemptStartResponseDTO, error)
	SaveAnswer(attemptID uint, studentID uint, req dto.AnswerSaveDTO) error
	SubmitAttempt(attemptID uint, studentID uint, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error)
	GetResult(attemptID uint, studentID uint) (*dto.AttemptResultDTO, error)
}

type attemptService struct {
	examRepo    repository.ExamRepository
	attemptRepo repository.AttemptRepository
	answerRepo  repository.AnswerRepository
	db          *gorm.DB
	now         func() time.Time
}

func NewAttemptService(
	examRepo repository.ExamRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		examRepo:    examRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		db:          db,
		now:         time.Now,
	}
}

// StartAttempt transitions NOT_STARTED -> IN_PROGRESS, or resumes an existing
// in-progress attempt unchanged. Two racing calls are resolved by the unique
// (exam_id, student_id) index: the loser's insert fails and it re-reads the
// winner's row.
func (s *attemptService) StartAttempt(examID uint, studentID uint) (*dto.AttemptStartResponseDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	now := s.now()
	if err := checkStartable(exam, now); err != nil {
		return nil, err
	}
	if len(exam.Questions) == 0 {
		return nil, ErrExamHasNoQuestions
	}

	existing, err := s.attemptRepo.FindByExamAndStudent(examID, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up existing attempt: %w", err)
	}
	if err == nil {
		if existing.IsCompleted {
			return nil, ErrAttemptCompleted
		}
		log.Info().Uint("attemptID", existing.ID).Uint("studentID", studentID).Msg("Resuming in-progress attempt")
		return s.buildStartResponse(exam, existing, now, true)
	}

	attempt := &model.Attempt{
		ExamID:    examID,
		StudentID: studentID,
		StartedAt: now,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		// A concurrent start may have won the insert; the unique index turned
		// that race into this error. Fall back to the row that made it in.
		winner, findErr := s.attemptRepo.FindByExamAndStudent(examID, studentID)
		if findErr != nil {
			return nil, fmt.Errorf("creating attempt: %w", err)
		}
		if winner.IsCompleted {
			return nil, ErrAttemptCompleted
		}
		log.Warn().Uint("attemptID", winner.ID).Msg("Concurrent start detected, returning existing attempt")
		return s.buildStartResponse(exam, winner, now, true)
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("examID", examID).Uint("studentID", studentID).Msg("Attempt started")
	return s.buildStartResponse(exam, attempt, now, false)
}

// SaveAnswer eagerly persists one selection while the attempt is in progress.
// This is advisory resume data; submit-time grading recomputes from its own
// payload, and the sweeper grades from these rows when a client never submits.
func (s *attemptService) SaveAnswer(attemptID uint, studentID uint, req dto.AnswerSaveDTO) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.StudentID != studentID {
		return ErrAttemptForbidden
	}
	if attempt.IsCompleted {
		return ErrAttemptCompleted
	}

	exam, err := s.examRepo.FindByIDWithQuestions(attempt.ExamID)
	if err != nil {
		return fmt.Errorf("loading exam %d: %w", attempt.ExamID, err)
	}
	if !examContains(exam, req.QuestionID) {
		return ErrQuestionNotInExam
	}

	return s.answerRepo.Upsert(&model.Answer{
		AttemptID:  attemptID,
		QuestionID: req.QuestionID,
		Selected:   req.Selected,
	})
}

// SubmitAttempt transitions IN_PROGRESS -> COMPLETED exactly once. Grading uses
// the exam's fixed question set as it exists now; the submitted payload is the
// authoritative answer source and replaces any eagerly saved rows.
func (s *attemptService) SubmitAttempt(attemptID uint, studentID uint, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.StudentID != studentID {
		return nil, ErrAttemptForbidden
	}
	if attempt.IsCompleted {
		return nil, ErrAttemptCompleted
	}

	exam, err := s.examRepo.FindByIDWithQuestions(attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("loading exam %d: %w", attempt.ExamID, err)
	}

	key := answerKeyOf(exam)
	selections := make(map[uint]string, len(req.Answers))
	for _, ans := range req.Answers {
		if _, ok := key[ans.QuestionID]; !ok {
			log.Warn().Uint("questionID", ans.QuestionID).Uint("examID", exam.ID).
				Msg("Submitted answer for a question not in this exam, skipping")
			continue
		}
		selections[ans.QuestionID] = ans.Selected
	}

	result := Grade(selections, key, exam.TotalMarks, exam.PassMark)
	applyGrading(attempt, result, s.now())

	graded := make([]model.Answer, 0, len(selections))
	for questionID, selected := range selections {
		graded = append(graded, model.Answer{
			AttemptID:  attempt.ID,
			QuestionID: questionID,
			Selected:   selected,
			IsCorrect:  selected == key[questionID].Correct,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// The completion flag in the WHERE clause is the real one-shot guard;
		// the in-memory check above only covers the common path. Zero rows
		// affected means a concurrent submit or sweep already graded this
		// attempt, and that grade stands.
		res := tx.Model(&model.Attempt{}).Where("id = ? AND is_completed = ?", attempt.ID, false).
			Updates(map[string]any{
				"score":        attempt.Score,
				"percentage":   attempt.Percentage,
				"is_passed":    attempt.IsPassed,
				"submitted_at": attempt.SubmittedAt,
				"is_completed": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAttemptCompleted
		}
		if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if len(graded) > 0 {
			return tx.Create(&graded).Error
		}
		return nil
	})
	if errors.Is(err, ErrAttemptCompleted) {
		return nil, ErrAttemptCompleted
	}
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to persist graded attempt")
		return nil, fmt.Errorf("persisting graded attempt: %w", err)
	}

	log.Info().Uint("attemptID", attempt.ID).Float64("score", result.Score).
		Float64("percentage", result.Percentage).Bool("passed", result.Passed).Msg("Attempt graded")

	return &dto.AttemptResultDTO{
		AttemptID:   attempt.ID,
		ExamID:      exam.ID,
		ExamTitle:   exam.Title,
		SubmittedAt: attempt.SubmittedAt,
		Score:       result.Score,
		TotalMarks:  exam.TotalMarks,
		Percentage:  result.Percentage,
		IsPassed:    result.Passed,
	}, nil
}

// GetResult returns the graded summary. Per-answer review is withheld unless the
// exam allows it.
func (s *attemptService) GetResult(attemptID uint, studentID uint) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.StudentID != studentID {
		return nil, ErrAttemptForbidden
	}
	if !attempt.IsCompleted {
		return nil, ErrAttemptNotGraded
	}

	resp := &dto.AttemptResultDTO{
		AttemptID:   attempt.ID,
		ExamID:      attempt.ExamID,
		ExamTitle:   attempt.Exam.Title,
		SubmittedAt: attempt.SubmittedAt,
		TotalMarks:  attempt.Exam.TotalMarks,
		IsPassed:    attempt.IsPassed,
	}
	if attempt.Score != nil {
		resp.Score = *attempt.Score
	}
	if attempt.Percentage != nil {
		resp.Percentage = *attempt.Percentage
	}

	if attempt.Exam.AllowReview {
		resp.Answers = make([]dto.AnswerReviewDTO, 0, len(attempt.Answers))
		for _, ans := range attempt.Answers {
			resp.Answers = append(resp.Answers, dto.AnswerReviewDTO{
				QuestionID:    ans.QuestionID,
				Text:          ans.Question.Text,
				Selected:      ans.Selected,
				CorrectOption: ans.Question.CorrectOption,
				IsCorrect:     ans.IsCorrect,
				Marks:         ans.Question.Marks,
			})
		}
	}
	return resp, nil
}

func (s *attemptService) buildStartResponse(exam *model.Exam, attempt *model.Attempt, now time.Time, resumed bool) (*dto.AttemptStartResponseDTO, error) {
	remaining := int64(exam.DurationMinutes)*60 - int64(now.Sub(attempt.StartedAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	questions := make([]dto.ExamQuestionDTO, 0, len(exam.Questions))
	for _, eq := range exam.Questions {
		questions = append(questions, dto.ExamQuestionDTO{
			ID:       eq.QuestionID,
			Position: eq.Position,
			Text:     eq.Question.Text,
			OptionA:  eq.Question.OptionA,
			OptionB:  eq.Question.OptionB,
			OptionC:  eq.Question.OptionC,
			OptionD:  eq.Question.OptionD,
			Marks:    eq.Question.Marks,
		})
	}

	resp := &dto.AttemptStartResponseDTO{
		AttemptID:        attempt.ID,
		ExamID:           exam.ID,
		ExamTitle:        exam.Title,
		DurationMinutes:  exam.DurationMinutes,
		TotalMarks:       exam.TotalMarks,
		StartedAt:        attempt.StartedAt,
		RemainingSeconds: remaining,
		Resumed:          resumed,
		Questions:        questions,
	}

	if resumed {
		saved, err := s.answerRepo.FindByAttemptID(attempt.ID)
		if err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to load saved answers for resume")
			return nil, fmt.Errorf("loading saved answers: %w", err)
		}
		for _, ans := range saved {
			resp.SavedAnswers = append(resp.SavedAnswers, dto.SavedAnswerDTO{
				QuestionID: ans.QuestionID,
				Selected:   ans.Selected,
			})
		}
	}
	return resp, nil
}

func checkStartable(exam *model.Exam, now time.Time) error {
	if !exam.IsPublished {
		return ErrExamNotPublished
	}
	if exam.StartWindow != nil && now.Before(*exam.StartWindow) {
		return ErrExamNotOpenYet
	}
	if exam.EndWindow != nil && now.After(*exam.EndWindow) {
		return ErrExamWindowClosed
	}
	return nil
}

func examContains(exam *model.Exam, questionID uint) bool {
	for _, eq := range exam.Questions {
		if eq.QuestionID == questionID {
			return true
		}
	}
	return false
}
