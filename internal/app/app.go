package app

import (
	"bootcamp_lms_backend/internal/config"
	"bootcamp_lms_backend/internal/controller"
	"bootcamp_lms_backend/internal/repository"
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/pkg/database"
	"bootcamp_lms_backend/pkg/logger"
	"bootcamp_lms_backend/pkg/monitoring"
	"bootcamp_lms_backend/pkg/security"
	"bootcamp_lms_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	cohort       *repository.CohortRepository
	course       *repository.CourseRepository
	module       *repository.ModuleRepository
	lesson       *repository.LessonRepository
	project      *repository.ProjectRepository
	progress     *repository.ProgressRepository
	submission   *repository.SubmissionRepository
	conversation *repository.ConversationRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	cohort     *service.CohortService
	content    *service.ContentService
	progress   *service.ProgressService
	submission *service.SubmissionService
	quiz       *service.QuizService
	assistant  *service.AssistantService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	content    *controller.ContentController
	submission *controller.SubmissionController
	review     *controller.ReviewController
	cohort     *controller.CohortController
	user       *controller.UserController
	assistant  *controller.AssistantController
	upload     *controller.UploadController
	health     *controller.HealthController
}

// RegisterConfigCallback subscribes a component to config file reloads.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		cohort:       repository.NewCohortRepository(db),
		course:       repository.NewCourseRepository(db),
		module:       repository.NewModuleRepository(db),
		lesson:       repository.NewLessonRepository(db),
		project:      repository.NewProjectRepository(db),
		progress:     repository.NewProgressRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		conversation: repository.NewConversationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.cohort)
	s.content = service.NewContentService(repos.course, repos.module, repos.lesson, repos.project, rdb)
	s.progress = service.NewProgressService(repos.lesson, repos.module, repos.progress)
	s.cohort = service.NewCohortService(repos.cohort, s.progress)
	s.submission = service.NewSubmissionService(repos.submission, repos.project, repos.lesson, s.progress)
	s.quiz = service.NewQuizService(repos.lesson, repos.submission, s.progress)
	s.assistant = service.NewAssistantService(repos.conversation, service.NewAIService(cfg.Assistant))

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.content, s.progress),
		content:    controller.NewContentController(s.content),
		submission: controller.NewSubmissionController(s.submission, s.quiz),
		review:     controller.NewReviewController(s.submission, s.cohort),
		cohort:     controller.NewCohortController(s.cohort),
		user:       controller.NewUserController(s.user),
		assistant:  controller.NewAssistantController(s.assistant),
		upload:     controller.NewUploadController(s.storage),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	settings := security.NewSettings(
		cfg.CORS.AllowedOrigins,
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)
	// Config reloads swap the allowlist and the limits under the running
	// middleware.
	a.RegisterConfigCallback(func(next *config.Config) {
		settings.Update(
			next.CORS.AllowedOrigins,
			next.RateLimit.MaxRequests,
			time.Duration(next.RateLimit.WindowMinutes)*time.Minute,
		)
	})

	router.Use(security.CORS(settings))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(settings))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.Seed(db); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("bootcamp-lms", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

	log.Println("Server exiting")
}
