package routes

import (
	"github.com/brainometer/practice-api/internal/application/reports"
	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/brainometer/practice-api/internal/infrastructure/email"
	"github.com/brainometer/practice-api/internal/interfaces/http/handlers"
	"github.com/brainometer/practice-api/internal/interfaces/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	app.Use(middleware.PerformanceLogger())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	practiceRepo := repositories.NewPracticeRepository(db)
	childRepo := repositories.NewChildRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	responseRepo := repositories.NewSurveyResponseRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Collaborators
	assembler := reports.NewAssembler(assessmentRepo, responseRepo, childRepo)
	mailer := email.NewLogSender()

	// Use Cases
	authUseCase := usecases.NewAuthUseCase(userRepo)
	practiceUseCase := usecases.NewPracticeUseCase(practiceRepo, assessmentRepo, reportRepo)
	childUseCase := usecases.NewChildUseCase(childRepo)
	assessmentUseCase := usecases.NewAssessmentUseCase(assessmentRepo, childRepo, responseRepo)
	submissionUseCase := usecases.NewSubmissionUseCase(assessmentRepo, responseRepo, reportRepo, practiceRepo, assembler, mailer)
	reportUseCase := usecases.NewReportUseCase(assessmentRepo, reportRepo, assembler)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUseCase)
	practiceHandler := handlers.NewPracticeHandler(practiceUseCase)
	childHandler := handlers.NewChildHandler(childUseCase)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentUseCase, submissionUseCase)
	reportHandler := handlers.NewReportHandler(reportUseCase)

	// Routes
	groups := middleware.SetupRouteGroups(app)

	// Autenticação
	groups.Public.Post("/auth/register", authHandler.Register)
	groups.Public.Post("/auth/login", authHandler.Login)

	// Avaliações: intake, consulta e submissão
	groups.Assessment.Post("/", assessmentHandler.StartAssessment)
	groups.Assessment.Get("/", assessmentHandler.ListAssessments)
	groups.Assessment.Get("/:id", assessmentHandler.GetAssessment)
	groups.Assessment.Post("/:id/submit", assessmentHandler.SubmitAssessment)

	// Relatórios (dados derivados, regeneráveis na leitura)
	groups.Assessment.Get("/:id/report", reportHandler.GetReport)
	groups.Assessment.Post("/:id/report/regenerate", reportHandler.RegenerateReport)

	// Crianças
	groups.Children.Post("/", childHandler.CreateChild)
	groups.Children.Get("/", childHandler.ListChildren)
	groups.Children.Get("/:id", childHandler.GetChild)
	groups.Children.Put("/:id", childHandler.UpdateChild)

	// Clínicas
	groups.Practice.Post("/", practiceHandler.CreatePractice)
	groups.Practice.Get("/", practiceHandler.ListPractices)
	groups.Practice.Get("/:id", practiceHandler.GetPractice)
	groups.Practice.Put("/:id", practiceHandler.UpdatePractice)
	groups.Practice.Get("/:id/stats", practiceHandler.GetPracticeStats)
}
