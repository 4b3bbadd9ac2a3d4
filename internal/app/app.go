package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"quizzer_backend/internal/config"
	"quizzer_backend/internal/controller"
	"quizzer_backend/internal/repository"
	"quizzer_backend/internal/service"
	"quizzer_backend/pkg/configwatcher"
	"quizzer_backend/pkg/database"
	"quizzer_backend/pkg/logger"
	"quizzer_backend/pkg/monitoring"
	"quizzer_backend/pkg/security"
	"quizzer_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	quiz        *repository.QuizRepository
	convocatory *repository.ConvocatoryRepository
	submission  *repository.SubmissionRepository
	certificate *repository.CertificateRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	quiz        *service.QuizService
	convocatory *service.ConvocatoryService
	attempt     *service.AttemptService
	certificate *service.CertificateService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	quiz        *controller.QuizController
	convocatory *controller.ConvocatoryController
	attempt     *controller.AttemptController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		quiz:        repository.NewQuizRepository(db),
		convocatory: repository.NewConvocatoryRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		certificate: repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.quiz = service.NewQuizService(repos.quiz, db)
	s.convocatory = service.NewConvocatoryService(repos.convocatory, repos.submission, repos.user)
	s.attempt = service.NewAttemptService(db, cfg.Quiz.PassingScore)
	s.certificate = service.NewCertificateService(repos.certificate, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		quiz:        controller.NewQuizController(s.quiz),
		convocatory: controller.NewConvocatoryController(s.convocatory),
		attempt:     controller.NewAttemptController(s.attempt),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchPassingScore re-reads the config file whenever it changes and pushes
// the new passing score into the attempt service.
func (a *App) watchPassingScore(configDir string) {
	go configwatcher.Watch(filepath.Join(configDir, "config.yaml"), func() {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			logger.Log.Error("config reload failed", zap.Error(err))
			return
		}
		a.services.attempt.SetPassingScore(cfg.Quiz.PassingScore)
		logger.Log.Info("passing score reloaded",
			zap.Float64("passing_score", cfg.Quiz.PassingScore))
	})
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	if err := database.SeedRootUser(db, cfg.Quiz.RootUserEmail, cfg.Quiz.RootUserName); err != nil {
		logger.Log.Fatal("Failed to seed root user", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quizzer", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.watchPassingScore(configPath)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
