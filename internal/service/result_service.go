package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/classify-edu/classify-server/config"
	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResultFilter narrows the aggregate roll-up. A nil field means no filtering on
// that dimension.
type ResultFilter struct {
	StudentID    *uint
	CourseID     *uint
	DepartmentID *uint
	Level        *int
}

// ResultService is the read-only roll-up over attendance, CBT attempts and
// written scores for the current semester. Stateless; recomputed per request.
// Grading weights arrive via injected config, never from mutable globals.
type ResultService interface {
	Aggregate(filter ResultFilter) ([]dto.StudentCourseResultDTO, error)
}

type resultService struct {
	studentRepo    repository.StudentRepository
	courseRepo     repository.CourseRepository
	semesterRepo   repository.SemesterRepository
	attemptRepo    repository.AttemptRepository
	scoreRepo      repository.ScoreRepository
	attendanceRepo repository.AttendanceRepository
	gradeScale     GradeScaleService
	grading        config.Grading
}

func NewResultService(
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	semesterRepo repository.SemesterRepository,
	attemptRepo repository.AttemptRepository,
	scoreRepo repository.ScoreRepository,
	attendanceRepo repository.AttendanceRepository,
	gradeScale GradeScaleService,
	cfg *config.Config,
) ResultService {
	return &resultService{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		semesterRepo:   semesterRepo,
		attemptRepo:    attemptRepo,
		scoreRepo:      scoreRepo,
		attendanceRepo: attendanceRepo,
		gradeScale:     gradeScale,
		grading:        cfg.Grading,
	}
}

func (s *resultService) Aggregate(filter ResultFilter) ([]dto.StudentCourseResultDTO, error) {
	semester, err := s.semesterRepo.FindCurrent()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentSemester
		}
		return nil, fmt.Errorf("loading current semester: %w", err)
	}

	students, err := s.resolveStudents(filter)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.FindAll(nil)
	if err != nil {
		return nil, fmt.Errorf("loading courses: %w", err)
	}
	courseByID := make(map[uint]model.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	var rows []dto.StudentCourseResultDTO
	for _, student := range students {
		studentRows, err := s.aggregateStudent(student, semester.ID, filter.CourseID, courseByID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, studentRows...)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MatricNumber != rows[j].MatricNumber {
			return rows[i].MatricNumber < rows[j].MatricNumber
		}
		return rows[i].CourseCode < rows[j].CourseCode
	})
	return rows, nil
}

func (s *resultService) resolveStudents(filter ResultFilter) ([]model.Student, error) {
	if filter.StudentID != nil {
		student, err := s.studentRepo.FindByID(*filter.StudentID)
		if err != nil {
			return nil, fmt.Errorf("student %d not found: %w", *filter.StudentID, err)
		}
		return []model.Student{*student}, nil
	}
	students, err := s.studentRepo.FindFiltered(filter.DepartmentID, filter.Level)
	if err != nil {
		return nil, fmt.Errorf("loading students: %w", err)
	}
	return students, nil
}

// aggregateStudent folds one student's attendance, CBT attempts and written
// scores into per-course rows.
func (s *resultService) aggregateStudent(student model.Student, semesterID uint, courseID *uint, courseByID map[uint]model.Course) ([]dto.StudentCourseResultDTO, error) {
	rowFor := make(map[uint]*dto.StudentCourseResultDTO)
	row := func(cID uint) *dto.StudentCourseResultDTO {
		if r, ok := rowFor[cID]; ok {
			return r
		}
		r := &dto.StudentCourseResultDTO{
			StudentID:    student.ID,
			MatricNumber: student.MatricNumber,
			StudentName:  student.FirstName + " " + student.LastName,
			CourseID:     cID,
			CourseCode:   courseByID[cID].Code,
		}
		rowFor[cID] = r
		return r
	}
	skip := func(cID uint) bool { return courseID != nil && cID != *courseID }

	attendance, err := s.attendanceRepo.FindByStudentAndSemester(student.ID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("loading attendance for student %d: %w", student.ID, err)
	}
	for _, record := range attendance {
		if skip(record.CourseID) {
			continue
		}
		// Zero scheduled sessions yields zero, not a division error.
		if record.TotalSessions > 0 {
			row(record.CourseID).AttendanceScore = round2(
				float64(record.PresentSessions) / float64(record.TotalSessions) * s.grading.AttendanceWeight)
		} else {
			row(record.CourseID).AttendanceScore = 0
		}
	}

	attempts, err := s.attemptRepo.FindCompletedByStudentAndSemester(student.ID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("loading attempts for student %d: %w", student.ID, err)
	}
	for _, attempt := range attempts {
		if skip(attempt.Exam.CourseID) || attempt.Score == nil {
			continue
		}
		r := row(attempt.Exam.CourseID)
		switch attempt.Exam.Category {
		case model.CategoryTest:
			r.TestScore += *attempt.Score
		case model.CategoryExam:
			r.ExamScore += *attempt.Score
		default:
			log.Warn().Uint("examID", attempt.ExamID).Str("category", attempt.Exam.Category).
				Msg("Attempt for exam with unknown category, counting toward exam bucket")
			r.ExamScore += *attempt.Score
		}
	}

	scores, err := s.scoreRepo.FindByStudentAndSemester(student.ID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("loading written scores for student %d: %w", student.ID, err)
	}
	for _, score := range scores {
		if skip(score.CourseID) {
			continue
		}
		row(score.CourseID).ExamScore += score.Value
	}

	rows := make([]dto.StudentCourseResultDTO, 0, len(rowFor))
	for _, r := range rowFor {
		r.TestScore = round2(r.TestScore)
		r.ExamScore = round2(r.ExamScore)
		r.Total = round2(r.AttendanceScore + r.TestScore + r.ExamScore)
		r.Grade = s.gradeScale.LetterFor(r.Total)
		rows = append(rows, *r)
	}
	return rows, nil
}
