package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/driverdash/backend/internal/delivery/http"
	"github.com/driverdash/backend/internal/domain"
	"github.com/driverdash/backend/internal/repository/jsonfile"
	"github.com/driverdash/backend/internal/repository/postgres"
	"github.com/driverdash/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Reference data source: Postgres when configured, a JSON fixture
	// directory as the middle ground, built-in seed data otherwise.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo domain.ReferenceRepository
	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			log.Println("Running with seed data only")
			repo = postgres.NewMockRepository()
		} else {
			defer pool.Close()
			log.Println("Connected to PostgreSQL")
			repo = postgres.NewPostgresRepository(pool)
		}
	case cfg.DataDir != "":
		log.Printf("Loading reference data from %s", cfg.DataDir)
		repo = jsonfile.NewJSONRepository(cfg.DataDir)
	default:
		log.Println("No data source configured, running with seed data")
		repo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	mapSvc := service.NewMapService(repo)
	if err := mapSvc.Load(ctx); err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	chatSvc := service.NewChatService(nil)
	recommendSvc := service.NewRecommendService(mapSvc)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "DriverDash API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, mapSvc, chatSvc, recommendSvc, repo)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Abort in-flight recognition so no final result lands after teardown
	chatSvc.CloseAll()

	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL string
	DataDir     string
	Port        string
	Env         string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DataDir:     getEnv("DATA_DIR", ""),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
