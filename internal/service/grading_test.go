package service

import (
	"testing"
	"time"

	"github.com/classify-edu/classify-server/internal/model"
)

func TestGrade(t *testing.T) {
	key := map[uint]QuestionKey{
		1: {Correct: "A", Marks: 2},
		2: {Correct: "B", Marks: 2},
		3: {Correct: "C", Marks: 2},
		4: {Correct: "D", Marks: 2},
		5: {Correct: "A", Marks: 2},
	}

	tests := []struct {
		name           string
		selections     map[uint]string
		totalMarks     float64
		passMark       float64
		wantScore      float64
		wantPercentage float64
		wantPassed     bool
	}{
		{
			name:           "all correct",
			selections:     map[uint]string{1: "A", 2: "B", 3: "C", 4: "D", 5: "A"},
			totalMarks:     10,
			passMark:       40,
			wantScore:      10,
			wantPercentage: 100,
			wantPassed:     true,
		},
		{
			name:           "all wrong",
			selections:     map[uint]string{1: "B", 2: "C", 3: "D", 4: "A", 5: "B"},
			totalMarks:     10,
			passMark:       40,
			wantScore:      0,
			wantPercentage: 0,
			wantPassed:     false,
		},
		{
			name:           "unanswered questions score zero",
			selections:     map[uint]string{1: "A", 2: "B"},
			totalMarks:     10,
			passMark:       40,
			wantScore:      4,
			wantPercentage: 40,
			wantPassed:     true,
		},
		{
			name:           "exactly at pass mark passes",
			selections:     map[uint]string{1: "A", 2: "B"},
			totalMarks:     10,
			passMark:       40,
			wantScore:      4,
			wantPercentage: 40,
			wantPassed:     true,
		},
		{
			name:           "just below pass mark fails",
			selections:     map[uint]string{1: "A"},
			totalMarks:     10,
			passMark:       40,
			wantScore:      2,
			wantPercentage: 20,
			wantPassed:     false,
		},
		{
			name:           "no answers at all",
			selections:     map[uint]string{},
			totalMarks:     10,
			passMark:       40,
			wantScore:      0,
			wantPercentage: 0,
			wantPassed:     false,
		},
		{
			name:           "zero total marks never divides",
			selections:     map[uint]string{1: "A"},
			totalMarks:     0,
			passMark:       0,
			wantScore:      2,
			wantPercentage: 0,
			wantPassed:     false,
		},
		{
			name:           "selections outside the key are ignored",
			selections:     map[uint]string{1: "A", 99: "A"},
			totalMarks:     10,
			passMark:       40,
			wantScore:      2,
			wantPercentage: 20,
			wantPassed:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(tt.selections, key, tt.totalMarks, tt.passMark)
			if got.Score != tt.wantScore {
				t.Fatalf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Percentage != tt.wantPercentage {
				t.Fatalf("Percentage = %v, want %v", got.Percentage, tt.wantPercentage)
			}
			if got.Passed != tt.wantPassed {
				t.Fatalf("Passed = %v, want %v", got.Passed, tt.wantPassed)
			}
		})
	}
}

func TestGradeFractionalMarks(t *testing.T) {
	key := map[uint]QuestionKey{
		1: {Correct: "A", Marks: 0.5},
		2: {Correct: "B", Marks: 0.5},
		3: {Correct: "C", Marks: 2},
	}
	got := Grade(map[uint]string{1: "A", 2: "B", 3: "D"}, key, 3, 30)
	if got.Score != 1 {
		t.Fatalf("Score = %v, want 1", got.Score)
	}
	// 1/3 rounds to 33.33, which clears a 30% pass mark.
	if got.Percentage != 33.33 {
		t.Fatalf("Percentage = %v, want 33.33", got.Percentage)
	}
	if !got.Passed {
		t.Fatal("expected pass")
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	key := map[uint]QuestionKey{1: {Correct: "A", Marks: 3}, 2: {Correct: "C", Marks: 7}}
	selections := map[uint]string{1: "A", 2: "B"}

	first := Grade(selections, key, 10, 30)
	for i := 0; i < 50; i++ {
		if got := Grade(selections, key, 10, 30); got != first {
			t.Fatalf("iteration %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestApplyGrading(t *testing.T) {
	attempt := &model.Attempt{ID: 7}
	submittedAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	applyGrading(attempt, GradeResult{Score: 8, Percentage: 80, Passed: true}, submittedAt)

	if !attempt.IsCompleted {
		t.Fatal("attempt should be completed")
	}
	if attempt.Score == nil || *attempt.Score != 8 {
		t.Fatalf("Score = %v, want 8", attempt.Score)
	}
	if attempt.Percentage == nil || *attempt.Percentage != 80 {
		t.Fatalf("Percentage = %v, want 80", attempt.Percentage)
	}
	if !attempt.IsPassed {
		t.Fatal("attempt should be passed")
	}
	if attempt.SubmittedAt == nil || !attempt.SubmittedAt.Equal(submittedAt) {
		t.Fatalf("SubmittedAt = %v, want %v", attempt.SubmittedAt, submittedAt)
	}
}

func TestAnswerKeyOf(t *testing.T) {
	exam := &model.Exam{
		Questions: []model.ExamQuestion{
			{QuestionID: 1, Question: model.Question{ID: 1, CorrectOption: "A", Marks: 2}},
			{QuestionID: 2, Question: model.Question{ID: 2, CorrectOption: "D", Marks: 1.5}},
		},
	}
	key := answerKeyOf(exam)
	if len(key) != 2 {
		t.Fatalf("key size = %d, want 2", len(key))
	}
	if key[1] != (QuestionKey{Correct: "A", Marks: 2}) {
		t.Fatalf("key[1] = %+v", key[1])
	}
	if key[2] != (QuestionKey{Correct: "D", Marks: 1.5}) {
		t.Fatalf("key[2] = %+v", key[2])
	}
}
