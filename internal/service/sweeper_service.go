package service

import (
	"fmt"
	"time"

	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptSweeper reclaims attempts abandoned mid-exam. An in-progress attempt
// whose started_at + duration has passed is force-graded from its eagerly saved
// answers, with submitted_at pinned to the deadline rather than sweep time.
type AttemptSweeper interface {
	ExpireOverdue(now time.Time) (int, error)
}

type attemptSweeper struct {
	examRepo    repository.ExamRepository
	attemptRepo repository.AttemptRepository
	db          *gorm.DB
}

func NewAttemptSweeper(
	examRepo repository.ExamRepository,
	attemptRepo repository.AttemptRepository,
	db *gorm.DB,
) AttemptSweeper {
	return &attemptSweeper{examRepo: examRepo, attemptRepo: attemptRepo, db: db}
}

func (s *attemptSweeper) ExpireOverdue(now time.Time) (int, error) {
	attempts, err := s.attemptRepo.FindInProgress()
	if err != nil {
		return 0, fmt.Errorf("loading in-progress attempts: %w", err)
	}

	expired := 0
	for i := range attempts {
		attempt := &attempts[i]
		deadline := attempt.StartedAt.Add(time.Duration(attempt.Exam.DurationMinutes) * time.Minute)
		if now.Before(deadline) {
			continue
		}
		ok, err := s.expireOne(attempt, deadline)
		if err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to expire overdue attempt")
			continue
		}
		if ok {
			expired++
		}
	}

	if expired > 0 {
		log.Info().Int("count", expired).Msg("Expired overdue attempts")
	}
	return expired, nil
}

// expireOne returns false when the attempt was completed between the sweep's
// read and this write: a deadline-edge submit wins, and its grade stands.
func (s *attemptSweeper) expireOne(attempt *model.Attempt, deadline time.Time) (bool, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(attempt.ExamID)
	if err != nil {
		return false, fmt.Errorf("loading exam %d: %w", attempt.ExamID, err)
	}

	key := answerKeyOf(exam)
	selections := make(map[uint]string, len(attempt.Answers))
	for _, ans := range attempt.Answers {
		if _, ok := key[ans.QuestionID]; !ok {
			continue
		}
		selections[ans.QuestionID] = ans.Selected
	}

	result := Grade(selections, key, exam.TotalMarks, exam.PassMark)
	applyGrading(attempt, result, deadline)

	expired := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
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
			return nil
		}
		expired = true
		for _, ans := range attempt.Answers {
			correct := false
			if k, ok := key[ans.QuestionID]; ok {
				correct = ans.Selected == k.Correct
			}
			if err := tx.Model(&model.Answer{}).Where("id = ?", ans.ID).
				Update("is_correct", correct).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return expired, err
}
