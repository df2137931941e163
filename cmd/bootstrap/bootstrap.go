package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-records/config"
	deliveryHttp "clinic-records/internal/delivery/http"
	"clinic-records/internal/delivery/http/handler"
	"clinic-records/internal/delivery/http/middleware"
	"clinic-records/internal/infrastructure/cache"
	"clinic-records/internal/infrastructure/database"
	"clinic-records/internal/repository"
	"clinic-records/internal/service"
	"clinic-records/internal/usecase"
	"clinic-records/pkg/jwt"
	"clinic-records/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, db, err := connect()
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.DB = db

	if err := database.AutoMigrate(db); err != nil {
		app.Close()
		return nil, err
	}
	logrus.Info("Database schema is up to date")

	// Redis only backs the login rate limiter; a nil client disables it
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// Seed migrates the schema and inserts the reference rows registration depends on.
func Seed() error {
	_, db, err := connect()
	if err != nil {
		return err
	}
	app := &App{DB: db}
	defer app.Close()

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if err := database.Seed(db); err != nil {
		return err
	}

	logrus.Info("Seed completed")
	return nil
}

func connect() (*config.Config, *gorm.DB, error) {
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, cfg.IsProduction())
	if err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	specializationRepo := repository.NewSpecializationRepository()
	diagnosisRepo := repository.NewDiagnosisRepository()
	examinationRepo := repository.NewExaminationRepository()
	sickLeaveRepo := repository.NewSickLeaveRepository()
	statisticsRepo := repository.NewStatisticsRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo, jwtService, auditService)
	doctorUsecase := usecase.NewDoctorProfileUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo, examinationRepo, auditService)
	patientUsecase := usecase.NewPatientProfileUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, specializationRepo, examinationRepo, sickLeaveRepo, auditService)
	examinationUsecase := usecase.NewExaminationUsecase(db, log, examinationRepo, doctorProfileRepo, patientProfileRepo, diagnosisRepo, sickLeaveRepo, auditService)
	sickLeaveUsecase := usecase.NewSickLeaveUsecase(db, log, sickLeaveRepo, examinationRepo, auditService)
	diagnosisUsecase := usecase.NewDiagnosisUsecase(db, log, diagnosisRepo)
	specializationUsecase := usecase.NewSpecializationUsecase(db, log, specializationRepo)
	roleUsecase := usecase.NewRoleUsecase(db, log, roleRepo)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, roleRepo, auditService)
	statisticsUsecase := usecase.NewStatisticsUsecase(db, log, statisticsRepo, doctorProfileRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	router := deliveryHttp.NewRouter(deliveryHttp.RouterConfig{
		AuthHandler:           handler.NewAuthHandler(authUsecase, customValidator, log),
		DoctorHandler:         handler.NewDoctorHandler(doctorUsecase, statisticsUsecase, customValidator, log),
		PatientHandler:        handler.NewPatientHandler(patientUsecase, customValidator, log),
		ExaminationHandler:    handler.NewExaminationHandler(examinationUsecase, statisticsUsecase, customValidator, log),
		DiagnosisHandler:      handler.NewDiagnosisHandler(diagnosisUsecase, statisticsUsecase, customValidator, log),
		SickLeaveHandler:      handler.NewSickLeaveHandler(sickLeaveUsecase, statisticsUsecase, customValidator, log),
		SpecializationHandler: handler.NewSpecializationHandler(specializationUsecase, customValidator, log),
		RoleHandler:           handler.NewRoleHandler(roleUsecase, customValidator, log),
		UserHandler:           handler.NewUserHandler(userUsecase, customValidator, log),
		AuditLogHandler:       handler.NewAuditLogHandler(auditLogUsecase, log),
		AuthMiddleware:        middleware.NewAuthMiddleware(jwtService, log),
		CORSMiddleware:        middleware.NewCORSMiddleware(cfg.App.CORSOrigin),
		LoggingMiddleware:     middleware.NewLoggingMiddleware(log),
		LoginRateLimiter:      middleware.NewRateLimiter(redisClient, log, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.ReadTimeout,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
