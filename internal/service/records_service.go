package service

import (
	"fmt"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/rs/zerolog/log"
)

// RecordsService covers the supporting reference data the attempt lifecycle and
// result aggregation consume: departments, courses, students, semesters, written
// scores and attendance roll-ups. Deliberately minimal CRUD.
type RecordsService interface {
	CreateDepartment(req dto.DepartmentCreateDTO) (*model.Department, error)
	ListDepartments() ([]model.Department, error)
	CreateCourse(req dto.CourseCreateDTO) (*model.Course, error)
	ListCourses(departmentID *uint) ([]model.Course, error)
	CreateStudent(req dto.StudentCreateDTO) (*model.Student, error)
	ListStudents(departmentID *uint, level *int) ([]model.Student, error)
	CreateSemester(req dto.SemesterCreateDTO) (*model.Semester, error)
	ListSemesters() ([]model.Semester, error)
	SetCurrentSemester(id uint) error
	CreateScore(req dto.ScoreCreateDTO) (*model.Score, error)
	UpsertAttendance(req dto.AttendanceUpsertDTO) (*model.Attendance, error)
}

type recordsService struct {
	departmentRepo repository.DepartmentRepository
	courseRepo     repository.CourseRepository
	studentRepo    repository.StudentRepository
	semesterRepo   repository.SemesterRepository
	scoreRepo      repository.ScoreRepository
	attendanceRepo repository.AttendanceRepository
}

func NewRecordsService(
	departmentRepo repository.DepartmentRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	semesterRepo repository.SemesterRepository,
	scoreRepo repository.ScoreRepository,
	attendanceRepo repository.AttendanceRepository,
) RecordsService {
	return &recordsService{
		departmentRepo: departmentRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		semesterRepo:   semesterRepo,
		scoreRepo:      scoreRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *recordsService) CreateDepartment(req dto.DepartmentCreateDTO) (*model.Department, error) {
	department := model.Department{Name: req.Name}
	if err := s.departmentRepo.Create(&department); err != nil {
		return nil, fmt.Errorf("database error creating department: %w", err)
	}
	return &department, nil
}

func (s *recordsService) ListDepartments() ([]model.Department, error) {
	return s.departmentRepo.FindAll()
}

func (s *recordsService) CreateCourse(req dto.CourseCreateDTO) (*model.Course, error) {
	course := model.Course{
		Code:         req.Code,
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Str("code", req.Code).Msg("Failed to create course")
		return nil, fmt.Errorf("database error creating course: %w", err)
	}
	return &course, nil
}

func (s *recordsService) ListCourses(departmentID *uint) ([]model.Course, error) {
	return s.courseRepo.FindAll(departmentID)
}

func (s *recordsService) CreateStudent(req dto.StudentCreateDTO) (*model.Student, error) {
	student := model.Student{
		MatricNumber: req.MatricNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
	}
	if err := s.studentRepo.Create(&student); err != nil {
		log.Error().Err(err).Str("matric", req.MatricNumber).Msg("Failed to create student")
		return nil, fmt.Errorf("database error creating student: %w", err)
	}
	return &student, nil
}

func (s *recordsService) ListStudents(departmentID *uint, level *int) ([]model.Student, error) {
	return s.studentRepo.FindFiltered(departmentID, level)
}

func (s *recordsService) CreateSemester(req dto.SemesterCreateDTO) (*model.Semester, error) {
	semester := model.Semester{Session: req.Session, Name: req.Name, IsCurrent: req.IsCurrent}
	if err := s.semesterRepo.Create(&semester); err != nil {
		return nil, fmt.Errorf("database error creating semester: %w", err)
	}
	return &semester, nil
}

func (s *recordsService) ListSemesters() ([]model.Semester, error) {
	return s.semesterRepo.FindAll()
}

func (s *recordsService) SetCurrentSemester(id uint) error {
	if err := s.semesterRepo.SetCurrent(id); err != nil {
		return fmt.Errorf("setting current semester %d: %w", id, err)
	}
	return nil
}

func (s *recordsService) CreateScore(req dto.ScoreCreateDTO) (*model.Score, error) {
	score := model.Score{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		SemesterID: req.SemesterID,
		Title:      req.Title,
		Value:      req.Value,
		MaxValue:   req.MaxValue,
	}
	if err := s.scoreRepo.Create(&score); err != nil {
		return nil, fmt.Errorf("database error creating score: %w", err)
	}
	return &score, nil
}

func (s *recordsService) UpsertAttendance(req dto.AttendanceUpsertDTO) (*model.Attendance, error) {
	record := model.Attendance{
		StudentID:       req.StudentID,
		CourseID:        req.CourseID,
		SemesterID:      req.SemesterID,
		TotalSessions:   req.TotalSessions,
		PresentSessions: req.PresentSessions,
	}
	if err := s.attendanceRepo.Upsert(&record); err != nil {
		return nil, fmt.Errorf("database error saving attendance: %w", err)
	}
	return &record, nil
}
