package service

import (
	"errors"
	"testing"
	"time"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"gorm.io/gorm"
)

func newAttemptServiceAt(db *gorm.DB, now time.Time) (AttemptService, *time.Time) {
	current := now
	svc := NewAttemptService(
		repository.NewExamRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewAnswerRepository(db),
		db,
	)
	svc.(*attemptService).now = func() time.Time { return current }
	return svc, &current
}

func TestStartAttemptCreatesAndResumes(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 3, 2)
	exam := seedExam(t, db, course.ID, semester.ID, questions, nil)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, clock := newAttemptServiceAt(db, start)

	first, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if first.Resumed {
		t.Fatal("first start should not be a resume")
	}
	if len(first.Questions) != 3 {
		t.Fatalf("question count = %d, want 3", len(first.Questions))
	}
	if first.RemainingSeconds != 30*60 {
		t.Fatalf("remaining = %d, want %d", first.RemainingSeconds, 30*60)
	}

	// Ten minutes later the same student starts again: same attempt, same
	// clock, no reset.
	*clock = start.Add(10 * time.Minute)
	second, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !second.Resumed {
		t.Fatal("second start should resume")
	}
	if second.AttemptID != first.AttemptID {
		t.Fatalf("resumed attempt %d, want %d", second.AttemptID, first.AttemptID)
	}
	if !second.StartedAt.Equal(first.StartedAt) {
		t.Fatalf("StartedAt changed on resume: %v vs %v", second.StartedAt, first.StartedAt)
	}
	if second.RemainingSeconds != 20*60 {
		t.Fatalf("remaining = %d, want %d", second.RemainingSeconds, 20*60)
	}

	var count int64
	db.Model(&model.Attempt{}).Where("exam_id = ? AND student_id = ?", exam.ID, student.ID).Count(&count)
	if count != 1 {
		t.Fatalf("attempt rows = %d, want 1", count)
	}
}

func TestStartAttemptResumeReturnsSavedAnswers(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 3, 2)
	exam := seedExam(t, db, course.ID, semester.ID, questions, nil)

	svc, _ := newAttemptServiceAt(db, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	first, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.SaveAnswer(first.AttemptID, student.ID, dto.AnswerSaveDTO{QuestionID: questions[0].ID, Selected: "B"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Overwrite the same question.
	if err := svc.SaveAnswer(first.AttemptID, student.ID, dto.AnswerSaveDTO{QuestionID: questions[0].ID, Selected: "A"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	resumed, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if len(resumed.SavedAnswers) != 1 {
		t.Fatalf("saved answers = %d, want 1", len(resumed.SavedAnswers))
	}
	if resumed.SavedAnswers[0].Selected != "A" {
		t.Fatalf("saved selection = %q, want overwritten value A", resumed.SavedAnswers[0].Selected)
	}
}

func TestStartAttemptGuards(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 2, 5)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newAttemptServiceAt(db, now)

	unpublished := seedExam(t, db, course.ID, semester.ID, questions, func(e *model.Exam) {
		e.IsPublished = false
	})
	if _, err := svc.StartAttempt(unpublished.ID, student.ID); !errors.Is(err, ErrExamNotPublished) {
		t.Fatalf("unpublished exam: got %v, want ErrExamNotPublished", err)
	}

	opensLater := now.Add(time.Hour)
	early := seedExam(t, db, course.ID, semester.ID, questions, func(e *model.Exam) {
		e.StartWindow = &opensLater
	})
	if _, err := svc.StartAttempt(early.ID, student.ID); !errors.Is(err, ErrExamNotOpenYet) {
		t.Fatalf("before window: got %v, want ErrExamNotOpenYet", err)
	}

	closedEarlier := now.Add(-time.Hour)
	late := seedExam(t, db, course.ID, semester.ID, questions, func(e *model.Exam) {
		e.EndWindow = &closedEarlier
	})
	if _, err := svc.StartAttempt(late.ID, student.ID); !errors.Is(err, ErrExamWindowClosed) {
		t.Fatalf("after window: got %v, want ErrExamWindowClosed", err)
	}

	empty := seedExam(t, db, course.ID, semester.ID, nil, nil)
	if _, err := svc.StartAttempt(empty.ID, student.ID); !errors.Is(err, ErrExamHasNoQuestions) {
		t.Fatalf("empty exam: got %v, want ErrExamHasNoQuestions", err)
	}

	if _, err := svc.StartAttempt(99999, student.ID); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("missing exam: got %v, want ErrExamNotFound", err)
	}
}

func TestSubmitAttemptGradesOnce(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 4, 2.5)
	exam := seedExam(t, db, course.ID, semester.ID, questions, nil)

	svc, clock := newAttemptServiceAt(db, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	started, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	*clock = clock.Add(15 * time.Minute)
	result, err := svc.SubmitAttempt(started.AttemptID, student.ID, dto.AttemptSubmitDTO{
		Answers: []dto.AnswerSubmitDTO{
			{QuestionID: questions[0].ID, Selected: "A"},
			{QuestionID: questions[1].ID, Selected: "A"},
			{QuestionID: questions[2].ID, Selected: "B"},
			// questions[3] left unanswered
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 5 {
		t.Fatalf("score = %v, want 5", result.Score)
	}
	if result.Percentage != 50 {
		t.Fatalf("percentage = %v, want 50", result.Percentage)
	}
	if !result.IsPassed {
		t.Fatal("50 percent against a 40 percent pass mark should pass")
	}
	if result.SubmittedAt == nil || !result.SubmittedAt.Equal(*clock) {
		t.Fatalf("SubmittedAt = %v, want %v", result.SubmittedAt, *clock)
	}

	// Second submit is rejected, and so is a restart.
	if _, err := svc.SubmitAttempt(started.AttemptID, student.ID, dto.AttemptSubmitDTO{}); !errors.Is(err, ErrAttemptCompleted) {
		t.Fatalf("resubmit: got %v, want ErrAttemptCompleted", err)
	}
	if _, err := svc.StartAttempt(exam.ID, student.ID); !errors.Is(err, ErrAttemptCompleted) {
		t.Fatalf("restart after submit: got %v, want ErrAttemptCompleted", err)
	}
}

func TestSubmitReplacesAdvisorySaves(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 2, 5)
	exam := seedExam(t, db, course.ID, semester.ID, questions, nil)

	svc, _ := newAttemptServiceAt(db, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	started, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	// Save a wrong answer eagerly, then submit the right one: the submit
	// payload wins.
	if err := svc.SaveAnswer(started.AttemptID, student.ID, dto.AnswerSaveDTO{QuestionID: questions[0].ID, Selected: "C"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	result, err := svc.SubmitAttempt(started.AttemptID, student.ID, dto.AttemptSubmitDTO{
		Answers: []dto.AnswerSubmitDTO{{QuestionID: questions[0].ID, Selected: "A"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 5 {
		t.Fatalf("score = %v, want 5", result.Score)
	}

	var answers []model.Answer
	if err := db.Where("attempt_id = ?", started.AttemptID).Find(&answers).Error; err != nil {
		t.Fatalf("loading answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("answer rows = %d, want 1", len(answers))
	}
	if answers[0].Selected != "A" || !answers[0].IsCorrect {
		t.Fatalf("persisted answer = %+v, want graded A", answers[0])
	}
}

func TestSaveAnswerGuards(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 2, 5)
	outsider := seedQuestions(t, db, course.ID, 1, 5)[0]
	exam := seedExam(t, db, course.ID, semester.ID, questions, nil)

	svc, _ := newAttemptServiceAt(db, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	started, err := svc.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	err = svc.SaveAnswer(started.AttemptID, student.ID, dto.AnswerSaveDTO{QuestionID: outsider.ID, Selected: "A"})
	if !errors.Is(err, ErrQuestionNotInExam) {
		t.Fatalf("foreign question: got %v, want ErrQuestionNotInExam", err)
	}

	err = svc.SaveAnswer(started.AttemptID, student.ID+1, dto.AnswerSaveDTO{QuestionID: questions[0].ID, Selected: "A"})
	if !errors.Is(err, ErrAttemptForbidden) {
		t.Fatalf("wrong student: got %v, want ErrAttemptForbidden", err)
	}

	if _, err := svc.SubmitAttempt(started.AttemptID, student.ID, dto.AttemptSubmitDTO{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	err = svc.SaveAnswer(started.AttemptID, student.ID, dto.AnswerSaveDTO{QuestionID: questions[0].ID, Selected: "A"})
	if !errors.Is(err, ErrAttemptCompleted) {
		t.Fatalf("save after submit: got %v, want ErrAttemptCompleted", err)
	}
}

func TestGetResultReviewVisibility(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 2, 5)

	hidden := seedExam(t, db, course.ID, semester.ID, questions, func(e *model.Exam) {
		e.AllowReview = false
	})
	open := seedExam(t, db, course.ID, semester.ID, questions, func(e *model.Exam) {
		e.AllowReview = true
	})

	svc, _ := newAttemptServiceAt(db, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	for _, exam := range []model.Exam{hidden, open} {
		started, err := svc.StartAttempt(exam.ID, student.ID)
		if err != nil {
			t.Fatalf("start exam %d: %v", exam.ID, err)
		}
		if _, err := svc.GetResult(started.AttemptID, student.ID); !errors.Is(err, ErrAttemptNotGraded) {
			t.Fatalf("result before submit: got %v, want ErrAttemptNotGraded", err)
		}
		if _, err := svc.SubmitAttempt(started.AttemptID, student.ID, dto.AttemptSubmitDTO{
			Answers: []dto.AnswerSubmitDTO{{QuestionID: questions[0].ID, Selected: "A"}},
		}); err != nil {
			t.Fatalf("submit exam %d: %v", exam.ID, err)
		}
	}

	hiddenAttempt, err := svc.StartAttempt(hidden.ID, student.ID)
	if !errors.Is(err, ErrAttemptCompleted) {
		t.Fatalf("expected completed attempt, got %v %v", hiddenAttempt, err)
	}

	var attempts []model.Attempt
	if err := db.Order("id").Find(&attempts).Error; err != nil {
		t.Fatalf("loading attempts: %v", err)
	}

	noReview, err := svc.GetResult(attempts[0].ID, student.ID)
	if err != nil {
		t.Fatalf("result without review: %v", err)
	}
	if len(noReview.Answers) != 0 {
		t.Fatalf("review withheld exam leaked %d answers", len(noReview.Answers))
	}

	withReview, err := svc.GetResult(attempts[1].ID, student.ID)
	if err != nil {
		t.Fatalf("result with review: %v", err)
	}
	if len(withReview.Answers) != 1 {
		t.Fatalf("review answers = %d, want 1", len(withReview.Answers))
	}
	if withReview.Answers[0].CorrectOption != "A" {
		t.Fatalf("review correct option = %q, want A", withReview.Answers[0].CorrectOption)
	}

	if _, err := svc.GetResult(attempts[0].ID, student.ID+1); !errors.Is(err, ErrAttemptForbidden) {
		t.Fatalf("foreign result read: got %v, want ErrAttemptForbidden", err)
	}
}
