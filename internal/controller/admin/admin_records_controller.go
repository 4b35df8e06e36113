package admin

import (
	"net/http"
	"strconv"

	"github.com/classify-edu/classify-server/internal/controller"
	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminRecordsController exposes the supporting reference data: departments,
// courses, students, semesters, written scores, attendance, and the aggregate
// results roll-up.
type AdminRecordsController struct {
	recordsService service.RecordsService
	resultService  service.ResultService
}

func NewAdminRecordsController(recordsService service.RecordsService, resultService service.ResultService) *AdminRecordsController {
	return &AdminRecordsController{recordsService: recordsService, resultService: resultService}
}

// CreateDepartment godoc
// @Summary (Admin) Create a department
// @Tags Admin - Records
// @Accept json
// @Produce json
// @Param department body dto.DepartmentCreateDTO true "Department data"
// @Success 201 {object} model.Department
// @Router /admin/departments [post]
func (c *AdminRecordsController) CreateDepartment(ctx *gin.Context) {
	var req dto.DepartmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	department, err := c.recordsService.CreateDepartment(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, department)
}

// ListDepartments godoc
// @Summary (Admin) List departments
// @Tags Admin - Records
// @Produce json
// @Success 200 {array} model.Department
// @Router /admin/departments [get]
func (c *AdminRecordsController) ListDepartments(ctx *gin.Context) {
	departments, err := c.recordsService.ListDepartments()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, departments)
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Records
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course data"
// @Success 201 {object} model.Course
// @Router /admin/courses [post]
func (c *AdminRecordsController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	course, err := c.recordsService.CreateCourse(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary (Admin) List courses
// @Tags Admin - Records
// @Produce json
// @Param department_id query int false "Filter by department"
// @Success 200 {array} model.Course
// @Router /admin/courses [get]
func (c *AdminRecordsController) ListCourses(ctx *gin.Context) {
	departmentID, ok := queryID(ctx, "department_id")
	if !ok {
		return
	}
	courses, err := c.recordsService.ListCourses(departmentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// CreateStudent godoc
// @Summary (Admin) Register a student
// @Tags Admin - Records
// @Accept json
// @Produce json
// @Param student body dto.StudentCreateDTO true "Student data"
// @Success 201 {object} model.Student
// @Router /admin/students [post]
func (c *AdminRecordsController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	student, err := c.recordsService.CreateStudent(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, student)
}

// ListStudents godoc
// @Summary (Admin) List students
// @Tags Admin - Records
// @Produce json
// @Param department_id query int false "Filter by department"
// @Param level query int false "Filter by level"
// @Success 200 {array} model.Student
// @Router /admin/students [get]
func (c *AdminRecordsController) ListStudents(ctx *gin.Context) {
	departmentID, ok := queryID(ctx, "department_id")
	if !ok {
		return
	}
	level, ok := queryInt(ctx, "level")
	if !ok {
		return
	}
	students, err := c.recordsService.ListStudents(departmentID, level)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// CreateSemester godoc
// @Summary (Admin) Create a semester
// @Tags Admin - Records
// @Accept json
// @Produce json
// @Param semester body dto.SemesterCreateDTO true "Semester data"
// @Success 201 {object} model.Semester
// @Router /admin/semesters [post]
func (c *AdminRecordsController) CreateSemester(ctx *gin.Context) {
	var req dto.SemesterCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	semester, err := c.recordsService.CreateSemester(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, semester)
}

// ListSemesters godoc
// @Summary (Admin) List semesters
// @Tags Admin - Records
// @Produce json
// @Success 200 {array} model.Semester
// @Router /admin/semesters [get]
func (c *AdminRecordsController) ListSemesters(ctx *gin.Context) {
	semesters, err := c.recordsService.ListSemesters()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, semesters)
}

// SetCurrentSemester godoc
// @Summary (Admin) Mark a semester as current
// @Description Clears the current flag on every other semester. The current semester gates result aggregation.
// @Tags Admin - Records
// @Param semester_id path int true "Semester ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /admin/semesters/{semester_id}/current [put]
func (c *AdminRecordsController) SetCurrentSemester(ctx *gin.Context) {
	semesterID, ok := pathID(ctx, "semester_id")
	if !ok {
		return
	}
	if err := c.recordsService.SetCurrentSemester(semesterID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateScore godoc
// @Summary (Admin) Record a written-exam score
// @Tags Admin - Records
// @Accept json
// @Produce json
// @Param score body dto.ScoreCreateDTO true "Score data"
// @Success 201 {object} model.Score
// @Router /admin/scores [post]
func (c *AdminRecordsController) CreateScore(ctx *gin.Context) {
	var req dto.ScoreCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	score, err := c.recordsService.CreateScore(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, score)
}

// UpsertAttendance godoc
// @Summary (Admin) Record attendance totals for a student/course/semester
// @Tags Admin - Records
// @Accept json
// @Produce json
// @Param attendance body dto.AttendanceUpsertDTO true "Attendance roll-up"
// @Success 200 {object} model.Attendance
// @Router /admin/attendance [put]
func (c *AdminRecordsController) UpsertAttendance(ctx *gin.Context) {
	var req dto.AttendanceUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	record, err := c.recordsService.UpsertAttendance(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// AggregateResults godoc
// @Summary (Admin) Aggregate results for the current semester
// @Description Per student/course roll-up of attendance, CBT test and exam scores plus written scores, with letter grades.
// @Tags Admin - Results
// @Produce json
// @Param student_id query int false "Filter by student"
// @Param course_id query int false "Filter by course"
// @Param department_id query int false "Filter by department"
// @Param level query int false "Filter by level"
// @Success 200 {array} dto.StudentCourseResultDTO
// @Failure 400 {object} dto.ErrorResponse "No current semester set"
// @Router /admin/students/results/aggregate [get]
func (c *AdminRecordsController) AggregateResults(ctx *gin.Context) {
	studentID, ok := queryID(ctx, "student_id")
	if !ok {
		return
	}
	courseID, ok := queryID(ctx, "course_id")
	if !ok {
		return
	}
	departmentID, ok := queryID(ctx, "department_id")
	if !ok {
		return
	}
	level, ok := queryInt(ctx, "level")
	if !ok {
		return
	}

	rows, err := c.resultService.Aggregate(service.ResultFilter{
		StudentID:    studentID,
		CourseID:     courseID,
		DepartmentID: departmentID,
		Level:        level,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// queryInt parses an optional int query parameter, writing a 400 on failure.
func queryInt(ctx *gin.Context, name string) (*int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return nil, false
	}
	return &val, true
}
