package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/bootcampfinder/backend/docs"
	"github.com/bootcampfinder/backend/internal/auth"
	"github.com/bootcampfinder/backend/internal/config"
	"github.com/bootcampfinder/backend/internal/geocoder"
	"github.com/bootcampfinder/backend/internal/handlers"
	"github.com/bootcampfinder/backend/internal/logger"
	"github.com/bootcampfinder/backend/internal/mailer"
	"github.com/bootcampfinder/backend/internal/middleware"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/repositories"
	"github.com/bootcampfinder/backend/internal/services"
	"github.com/bootcampfinder/backend/internal/storage"
)

// @title BootcampFinder API
// @version 1.0
// @description REST API for browsing bootcamps, their courses and reviews

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting BootcampFinder API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize outbound clients
	geoClient := geocoder.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey)
	mailClient := mailer.New(cfg.SMTP)
	uploadStorage := storage.NewLocalStorage(cfg.Upload.Path)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	bootcampRepo := repositories.NewBootcampRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, mailClient)
	userService := services.NewUserService(userRepo)
	bootcampService := services.NewBootcampService(bootcampRepo, geoClient, uploadStorage, cfg.Upload.MaxFileSize)
	courseService := services.NewCourseService(courseRepo, bootcampRepo)
	reviewService := services.NewReviewService(reviewRepo, bootcampRepo)

	// Initialize auth middleware
	protect := middleware.Protect(tokenGenerator, userRepo)
	authorizePublish := middleware.Authorize(models.RolePublisher, models.RoleAdmin)
	authorizeReview := middleware.Authorize(models.RoleUser, models.RoleAdmin)
	authorizeAdmin := middleware.Authorize(models.RoleAdmin)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, protect, cfg.JWT.CookieExpireDays, cfg.IsProduction(), logger.Logger)
	userHandler := handlers.NewUserHandler(userService, protect, authorizeAdmin, logger.Logger)
	bootcampHandler := handlers.NewBootcampHandler(bootcampService, protect, authorizePublish, cfg.Upload.MaxFileSize, logger.Logger)
	courseHandler := handlers.NewCourseHandler(courseService, protect, authorizePublish, logger.Logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, protect, authorizeReview, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, 10*time.Minute))
	r.Use(middleware.RequestSizeLimit(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Uploaded bootcamp photos
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Path))))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		bootcampHandler.RegisterRoutes(r,
			courseHandler.RegisterNestedRoutes,
			reviewHandler.RegisterNestedRoutes,
		)
		courseHandler.RegisterRoutes(r)
		reviewHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
