package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eremean89/poetry/internal/middleware"
	"github.com/eremean89/poetry/internal/services"
	"github.com/eremean89/poetry/internal/utils"
)

type HandlerManager struct {
	poetHandler *PoetHandler
	quizHandler *QuizHandler
	auth        *middleware.Authenticator
}

func NewHandlerManager(
	poetService services.PoetService,
	authoringService services.QuizAuthoringService,
	takingService services.QuizTakingService,
	exportService services.QuizExportService,
	auth *middleware.Authenticator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		poetHandler: NewPoetHandler(poetService, logger),
		quizHandler: NewQuizHandler(authoringService, takingService, exportService, logger),
		auth:        auth,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public content routes
		poets := v1.Group("/poets")
		{
			poets.GET("", hm.poetHandler.ListPoets)
			poets.GET("/search", hm.poetHandler.SearchPoets)
			poets.GET("/:id", hm.poetHandler.GetPoet)
		}

		works := v1.Group("/works")
		{
			works.GET("", hm.poetHandler.ListWorks)
			works.GET("/:id", hm.poetHandler.GetWork)
		}

		// Quiz taking, behind auth
		quizzes := v1.Group("/quizzes")
		quizzes.Use(hm.auth.RequireAuth())
		{
			quizzes.GET("/:poet_id", hm.quizHandler.GetQuizForTaking)
			quizzes.POST("/:poet_id/submit", hm.quizHandler.SubmitQuiz)
			quizzes.GET("/history", hm.quizHandler.GetHistory)
		}

		// Quiz authoring, behind auth plus admin role
		admin := v1.Group("/admin/quizzes")
		admin.Use(hm.auth.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/:poet_id", hm.quizHandler.GetQuizForAuthoring)
			admin.POST("/:poet_id", hm.quizHandler.SaveQuiz)
			admin.GET("/:poet_id/export", hm.quizHandler.ExportQuiz)
		}
	}
}

// HealthCheck returns service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "poetry-service",
	})
}
