package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sinataee/ielts-reading-app/internal/adapter"
	"github.com/sinataee/ielts-reading-app/internal/cache"
	"github.com/sinataee/ielts-reading-app/internal/config"
	"github.com/sinataee/ielts-reading-app/internal/database"
	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/handler"
	"github.com/sinataee/ielts-reading-app/internal/logger"
	"github.com/sinataee/ielts-reading-app/internal/middleware"
	"github.com/sinataee/ielts-reading-app/internal/repository"
	"github.com/sinataee/ielts-reading-app/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Package storage (JSON files)
	packageStore, err := repository.NewFilePackageStore(cfg.Storage.PackagesDir)
	if err != nil {
		appLogger.Fatal("Failed to open package store", zap.Error(err))
	}

	// Attempt history (sqlite)
	db, err := database.NewSQLXSqliteDB(cfg.Storage.SQLitePath)
	if err != nil {
		appLogger.Fatal("Failed to open attempt database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	attemptRepository := repository.NewSQLXAttemptRepository(db)

	// Report cache (redis, optional)
	var reportCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		reportCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Report cache enabled", zap.String("redis_address", cfg.Redis.Address))
	} else {
		appLogger.Info("Report cache disabled, no redis address configured")
	}

	// Initialize services
	packageService := service.NewPackageService(packageStore)
	examService := service.NewExamService(packageStore, attemptRepository, reportCache, cfg.ExamDuration(), cfg.Exam.ReportCacheTTL)

	// Initialize handlers
	packageHandler := handler.NewPackageHandler(packageService)
	examHandler := handler.NewExamHandler(examService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Package authoring routes
	apiGroup.Post("/packages", packageHandler.CreatePackage)
	apiGroup.Get("/packages", packageHandler.ListPackages)
	apiGroup.Get("/packages/:id", packageHandler.GetPackage)

	// Exam session routes
	apiGroup.Post("/exams", examHandler.CreateExam)
	apiGroup.Get("/exams/:id", examHandler.GetExam)
	apiGroup.Post("/exams/:id/start", examHandler.StartExam)
	apiGroup.Post("/exams/:id/pause", examHandler.PauseExam)
	apiGroup.Post("/exams/:id/resume", examHandler.ResumeExam)
	apiGroup.Post("/exams/:id/answers", examHandler.RecordAnswer)
	apiGroup.Post("/exams/:id/highlights", examHandler.RecordHighlight)
	apiGroup.Post("/exams/:id/end", examHandler.EndExam)
	apiGroup.Get("/exams/:id/result", examHandler.GetResult)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Failed to close attempt database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
