package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-doctor-directory/config"
	deliveryHttp "go-doctor-directory/internal/delivery/http"
	"go-doctor-directory/internal/delivery/http/handler"
	"go-doctor-directory/internal/delivery/http/middleware"
	domainRepo "go-doctor-directory/internal/domain/repository"
	"go-doctor-directory/internal/infrastructure/cache"
	"go-doctor-directory/internal/infrastructure/datasource"
	"go-doctor-directory/internal/infrastructure/metrics"
	"go-doctor-directory/internal/repository"
	"go-doctor-directory/internal/service"
	"go-doctor-directory/internal/usecase"
	"go-doctor-directory/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DoctorRepo  domainRepo.DoctorRepository
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	setLogLevel(cfg.Log)
	logrus.Info("Configuration loaded successfully")

	// Initialize Redis view cache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	}

	// Initialize all layers
	app.Server = app.initializeServer(cfg)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func setLogLevel(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, keeping %s", cfg.Level, logrus.GetLevel())
		return
	}
	logrus.SetLevel(level)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorSource := datasource.NewDoctorSource(cfg.Data)
	doctorRepo := repository.NewDoctorRepository(doctorSource, customValidator, log)
	app.DoctorRepo = doctorRepo

	// Initialize services
	viewCache := service.NewViewCache(app.RedisClient, cfg.Cache.TTL, log)

	// Initialize metrics
	registry := metrics.NewRegistry()
	metrics.RegisterStoreMetrics(registry, doctorRepo)

	// Initialize usecases
	directoryUsecase := usecase.NewDoctorDirectoryUsecase(log, doctorRepo, viewCache, cfg.Data.SuggestionLimit)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(directoryUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware(registry)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, metrics.Handler(registry), corsMiddleware, loggingMiddleware, metricsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run loads the directory in the background, starts the HTTP server and handles graceful shutdown.
// Requests that arrive before the directory is ready are answered with 503.
func (app *App) Run() {
	go func() {
		if err := app.DoctorRepo.Load(context.Background()); err != nil {
			logrus.Errorf("Doctor directory unavailable until restart: %v", err)
		}
	}()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the Redis connection when the view cache is enabled
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
