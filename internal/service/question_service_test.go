package service

import (
	"testing"
	"time"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/repository"
	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) QuestionService {
	return NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewTopicRepository(db),
		repository.NewCourseRepository(db),
	)
}

func TestQuestionCRUD(t *testing.T) {
	db := newTestDB(t)
	course, _, _ := seedBase(t, db)
	svc := newQuestionService(db)

	created, err := svc.CreateQuestion(dto.QuestionCreateDTO{
		CourseID:      course.ID,
		Text:          "2 + 2?",
		OptionA:       "4",
		OptionB:       "3",
		OptionC:       "5",
		OptionD:       "22",
		CorrectOption: "A",
		Marks:         2,
		Difficulty:    "easy",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.IsActive {
		t.Fatal("new questions default to active")
	}

	fetched, err := svc.GetQuestion(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.CorrectOption != "A" || fetched.Marks != 2 {
		t.Fatalf("fetched = %+v", fetched)
	}

	req := dto.QuestionCreateDTO{
		CourseID:      course.ID,
		Text:          "2 + 2?",
		OptionA:       "4",
		OptionB:       "3",
		OptionC:       "5",
		OptionD:       "22",
		CorrectOption: "B",
		Marks:         3,
	}
	updated, err := svc.UpdateQuestion(created.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CorrectOption != "B" || updated.Marks != 3 {
		t.Fatalf("updated = %+v", updated)
	}

	if err := svc.DeleteQuestion(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetQuestion(created.ID); err == nil {
		t.Fatal("deleted question still readable")
	}

	list, err := svc.ListQuestions(&course.ID, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list after delete = %d, want 0", len(list))
	}
}

func TestTopics(t *testing.T) {
	db := newTestDB(t)
	course, _, _ := seedBase(t, db)
	svc := newQuestionService(db)

	if _, err := svc.CreateTopic(dto.TopicCreateDTO{CourseID: 99999, Name: "Orphan"}); err == nil {
		t.Fatal("topic for a missing course should fail")
	}

	created, err := svc.CreateTopic(dto.TopicCreateDTO{CourseID: course.ID, Name: "Recursion"})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	topics, err := svc.ListTopics(course.ID)
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != created.ID {
		t.Fatalf("topics = %+v", topics)
	}
}

// Grading reads question content live: an edit between start and submit changes
// the key, because exams freeze IDs only.
func TestGradingReadsLiveQuestionContent(t *testing.T) {
	db := newTestDB(t)
	course, student, semester := seedBase(t, db)
	questions := seedQuestions(t, db, course.ID, 1, 10) // correct option A
	exam := seedExam(t, db, course.ID, semester.ID, questions, nil)

	attempts, _ := newAttemptServiceAt(db, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	started, err := attempts.StartAttempt(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err = newQuestionService(db).UpdateQuestion(questions[0].ID, dto.QuestionCreateDTO{
		CourseID:      course.ID,
		Text:          questions[0].Text,
		OptionA:       questions[0].OptionA,
		OptionB:       questions[0].OptionB,
		OptionC:       questions[0].OptionC,
		OptionD:       questions[0].OptionD,
		CorrectOption: "B",
		Marks:         questions[0].Marks,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	result, err := attempts.SubmitAttempt(started.AttemptID, student.ID, dto.AttemptSubmitDTO{
		Answers: []dto.AnswerSubmitDTO{{QuestionID: questions[0].ID, Selected: "B"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 10 {
		t.Fatalf("score = %v, want 10 against the edited key", result.Score)
	}
}
