package service

import (
	"math"
	"time"

	"github.com/classify-edu/classify-server/internal/model"
)

// QuestionKey is the grading view of one question: its correct option and worth.
type QuestionKey struct {
	Correct string
	Marks   float64
}

type GradeResult struct {
	Score      float64
	Percentage float64
	Passed     bool
}

// Grade scores a set of selections against an answer key. Unanswered questions
// contribute zero; selections for questions outside the key are ignored. The
// pass boundary is inclusive: percentage == passMark passes. A non-positive
// totalMarks yields percentage 0 and a fail rather than NaN.
func Grade(selections map[uint]string, key map[uint]QuestionKey, totalMarks, passMark float64) GradeResult {
	var score float64
	for questionID, selected := range selections {
		k, ok := key[questionID]
		if !ok {
			continue
		}
		if selected == k.Correct {
			score += k.Marks
		}
	}

	var percentage float64
	if totalMarks > 0 {
		percentage = round2(score / totalMarks * 100)
	}

	return GradeResult{
		Score:      score,
		Percentage: percentage,
		Passed:     totalMarks > 0 && percentage >= passMark,
	}
}

// answerKeyOf builds the grading key from an exam's fixed question set. Question
// content is read live, not from a creation-time snapshot.
func answerKeyOf(exam *model.Exam) map[uint]QuestionKey {
	key := make(map[uint]QuestionKey, len(exam.Questions))
	for _, eq := range exam.Questions {
		key[eq.QuestionID] = QuestionKey{Correct: eq.Question.CorrectOption, Marks: eq.Question.Marks}
	}
	return key
}

// applyGrading stamps a grading result onto an attempt.
func applyGrading(attempt *model.Attempt, result GradeResult, submittedAt time.Time) {
	attempt.Score = &result.Score
	attempt.Percentage = &result.Percentage
	attempt.IsPassed = result.Passed
	attempt.SubmittedAt = &submittedAt
	attempt.IsCompleted = true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
