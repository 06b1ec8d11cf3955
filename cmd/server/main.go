package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/eremean89/poetry/internal/config"
	"github.com/eremean89/poetry/internal/handlers"
	"github.com/eremean89/poetry/internal/middleware"
	"github.com/eremean89/poetry/internal/repositories/postgres"
	"github.com/eremean89/poetry/internal/services"
	"github.com/eremean89/poetry/internal/utils"
	"github.com/eremean89/poetry/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}
	if err := pkg.AutoMigrate(db); err != nil {
		log.Fatalf("Could not migrate the database: %v", err)
	}

	repo := postgres.NewRepository(db)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		log.Fatalf("Could not create event publisher: %v", err)
	}
	defer publisher.Close()

	validator := utils.NewValidator()

	poetService := services.NewPoetService(repo, slogger)
	authoringService := services.NewQuizAuthoringService(repo, publisher, slogger, validator)
	takingService := services.NewQuizTakingService(repo, publisher, slogger, validator)
	exportService := services.NewQuizExportService(repo, slogger)

	auth := middleware.NewAuthenticator(cfg.Casdoor, repo, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	hm := handlers.NewHandlerManager(poetService, authoringService, takingService, exportService, auth, logger)
	hm.SetupRoutes(router)

	logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
