package service

import "errors"

// State-conflict and precondition errors surfaced to controllers, which map them
// onto 403/404/409 responses. Anything else falls through as a 500.
var (
	ErrExamNotFound       = errors.New("exam not found")
	ErrExamNotPublished   = errors.New("exam is not published")
	ErrExamNotOpenYet     = errors.New("exam has not started yet")
	ErrExamWindowClosed   = errors.New("exam window has closed")
	ErrExamHasNoQuestions = errors.New("exam has no questions")
	ErrExamLocked         = errors.New("published exam questions cannot be replaced")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptForbidden   = errors.New("attempt belongs to another student")
	ErrAttemptCompleted   = errors.New("attempt has already been completed")
	ErrAttemptNotGraded   = errors.New("attempt has not been submitted yet")
	ErrQuestionNotInExam  = errors.New("question is not part of this exam")
	ErrNoCurrentSemester  = errors.New("no current semester is set")
)
