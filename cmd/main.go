package main

import (
	"context"
	"net/http"
	"time"

	"github.com/classify-edu/classify-server/config"
	"github.com/classify-edu/classify-server/database"
	_ "github.com/classify-edu/classify-server/docs" // Swagger docs - auto-generated
	adminctrl "github.com/classify-edu/classify-server/internal/controller/admin"
	studentctrl "github.com/classify-edu/classify-server/internal/controller/student"
	"github.com/classify-edu/classify-server/internal/logger"
	"github.com/classify-edu/classify-server/internal/middleware"
	"github.com/classify-edu/classify-server/internal/model"
	"github.com/classify-edu/classify-server/internal/repository"
	"github.com/classify-edu/classify-server/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// How often the sweeper checks for attempts whose clock has run out.
const sweepInterval = time.Minute

// @title Classify Campus API
// @version 1.0
// @description Campus management API: question bank, CBT exams, attempt lifecycle, and result aggregation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewDepartmentRepository,
			repository.NewCourseRepository,
			repository.NewStudentRepository,
			repository.NewSemesterRepository,
			repository.NewTopicRepository,
			repository.NewQuestionRepository,
			repository.NewExamRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewScoreRepository,
			repository.NewAttendanceRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionService,
			service.NewAdminExamService,
			service.NewAttemptService,
			service.NewAttemptSweeper,
			service.NewGradeScaleService,
			service.NewResultService,
			service.NewRecordsService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminQuestionController,
			adminctrl.NewAdminExamController,
			adminctrl.NewAdminRecordsController,
			studentctrl.NewStudentAttemptController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RunAttemptSweeper),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *adminctrl.AdminQuestionController,
	examCtrl *adminctrl.AdminExamController,
	recordsCtrl *adminctrl.AdminRecordsController,
	attemptCtrl *studentctrl.StudentAttemptController,
) {
	// Admin/instructor routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	adminAPIGroup.Use(middleware.RequireRole(cfg.Auth.JWTSecret, middleware.RoleAdmin, middleware.RoleInstructor))
	{
		adminAPIGroup.POST("/departments", recordsCtrl.CreateDepartment)
		adminAPIGroup.GET("/departments", recordsCtrl.ListDepartments)
		adminAPIGroup.POST("/courses", recordsCtrl.CreateCourse)
		adminAPIGroup.GET("/courses", recordsCtrl.ListCourses)
		adminAPIGroup.POST("/students", recordsCtrl.CreateStudent)
		adminAPIGroup.GET("/students", recordsCtrl.ListStudents)
		adminAPIGroup.POST("/semesters", recordsCtrl.CreateSemester)
		adminAPIGroup.GET("/semesters", recordsCtrl.ListSemesters)
		adminAPIGroup.PUT("/semesters/:semester_id/current", recordsCtrl.SetCurrentSemester)
		adminAPIGroup.POST("/scores", recordsCtrl.CreateScore)
		adminAPIGroup.PUT("/attendance", recordsCtrl.UpsertAttendance)
		adminAPIGroup.GET("/students/results/aggregate", recordsCtrl.AggregateResults)

		adminAPIGroup.POST("/topics", questionCtrl.CreateTopic)
		adminAPIGroup.GET("/topics", questionCtrl.ListTopics)
		adminAPIGroup.POST("/questions", questionCtrl.CreateQuestion)
		adminAPIGroup.GET("/questions", questionCtrl.ListQuestions)
		adminAPIGroup.GET("/questions/:question_id", questionCtrl.GetQuestion)
		adminAPIGroup.PUT("/questions/:question_id", questionCtrl.UpdateQuestion)
		adminAPIGroup.DELETE("/questions/:question_id", questionCtrl.DeleteQuestion)

		adminAPIGroup.POST("/exams", examCtrl.CreateExam)
		adminAPIGroup.GET("/exams", examCtrl.ListExams)
		adminAPIGroup.GET("/exams/:exam_id", examCtrl.GetExam)
		adminAPIGroup.PUT("/exams/:exam_id", examCtrl.UpdateExam)
		adminAPIGroup.POST("/exams/:exam_id/questions", examCtrl.ReplaceQuestions)
		adminAPIGroup.GET("/exams/:exam_id/results", examCtrl.GetExamResults)
	}

	// Student routes (prefixed with /api/v1)
	studentAPIGroup := router.Group("/api/v1")
	studentAPIGroup.Use(middleware.RequireRole(cfg.Auth.JWTSecret, middleware.RoleStudent))
	{
		studentAPIGroup.POST("/exams/:exam_id/start", attemptCtrl.StartAttempt)
		studentAPIGroup.POST("/attempts/:attempt_id/answers", attemptCtrl.SaveAnswer)
		studentAPIGroup.POST("/attempts/:attempt_id/submit", attemptCtrl.SubmitAttempt)
		studentAPIGroup.GET("/attempts/:attempt_id/result", attemptCtrl.GetResult)
		studentAPIGroup.GET("/my-results", attemptCtrl.MyResults)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Classify API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// RunAttemptSweeper force-grades overdue attempts on a fixed interval so
// abandoned attempts cannot stay in progress forever.
func RunAttemptSweeper(lc fx.Lifecycle, sweeper service.AttemptSweeper) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ticker := time.NewTicker(sweepInterval)
			go func() {
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case now := <-ticker.C:
						if _, err := sweeper.ExpireOverdue(now); err != nil {
							log.Error().Err(err).Msg("Attempt sweep failed")
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Department{},
		&model.Course{},
		&model.Student{},
		&model.Semester{},
		&model.Topic{},
		&model.Question{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.Attempt{},
		&model.Answer{},
		&model.Score{},
		&model.Attendance{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
