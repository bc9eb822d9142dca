package app

import (
	"aura_edu_backend/internal/config"
	"aura_edu_backend/internal/controller"
	"aura_edu_backend/internal/repository"
	"aura_edu_backend/internal/service"
	"aura_edu_backend/pkg/cache"
	"aura_edu_backend/pkg/configwatcher"
	"aura_edu_backend/pkg/database"
	"aura_edu_backend/pkg/logger"
	"aura_edu_backend/pkg/monitoring"
	"aura_edu_backend/pkg/security"
	"aura_edu_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configMu        sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	lesson      *repository.LessonRepository
	topic       *repository.TopicRepository
	codeExample *repository.CodeExampleRepository
	activity    *repository.ActivityRepository
	submission  *repository.SubmissionRepository
	achievement *repository.AchievementRepository
	session     *repository.SessionRepository
	auraBot     *repository.AuraBotRepository
}

type services struct {
	auth        *service.AuthService
	content     *service.ContentService
	activity    *service.ActivityService
	achievement *service.AchievementService
	analytics   *service.AnalyticsService
	auraBot     *service.AuraBotService
	user        *service.UserService
	comparison  *service.ComparisonService
	storage     *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	health       *controller.HealthController
	course       *controller.CourseController
	activity     *controller.ActivityController
	achievement  *controller.AchievementController
	analytics    *controller.AnalyticsController
	auraBot      *controller.AuraBotController
	user         *controller.UserController
	adminContent *controller.AdminContentController
	adminUser    *controller.AdminUserController
	compare      *controller.CompareController
}

// RegisterConfigCallback 注册配置热更新回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.configMu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.configMu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		lesson:      repository.NewLessonRepository(db),
		topic:       repository.NewTopicRepository(db),
		codeExample: repository.NewCodeExampleRepository(db),
		activity:    repository.NewActivityRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		achievement: repository.NewAchievementRepository(db),
		session:     repository.NewSessionRepository(db),
		auraBot:     repository.NewAuraBotRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	store := cache.New(rdb)
	loc := cfg.Analytics.Location()

	prompts, err := service.LoadAuraBotPrompts(cfg.AuraBot.PromptFile)
	if err != nil {
		logger.Log.Warn("Failed to load AuraBot prompts, using defaults",
			zap.String("path", cfg.AuraBot.PromptFile), zap.Error(err))
		prompts = service.DefaultAuraBotPrompts()
	}

	s := &services{}
	s.storage = service.NewStorageService(context.Background(), &cfg.Storage)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.course, repos.lesson, repos.topic, repos.codeExample, repos.activity)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user, repos.submission, repos.session, repos.auraBot, loc)
	s.activity = service.NewActivityService(repos.activity, repos.submission, repos.user, s.achievement, cfg.Activity)
	s.analytics = service.NewAnalyticsService(repos.session, store, s.achievement, loc,
		time.Duration(cfg.Analytics.SnapshotTTLMinutes)*time.Minute)
	s.auraBot = service.NewAuraBotService(repos.auraBot, service.NewAIService(cfg.AI), store, prompts, s.achievement,
		cfg.AuraBot.SessionQuota, time.Duration(cfg.AuraBot.SessionTTLHours)*time.Hour)
	s.user = service.NewUserService(repos.user, repos.submission, repos.session, repos.auraBot, repos.achievement, s.storage, store)
	s.comparison = service.NewComparisonService(repos.submission, repos.activity)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		health:       controller.NewHealthController(db, rdb),
		course:       controller.NewCourseController(s.content),
		activity:     controller.NewActivityController(s.activity),
		achievement:  controller.NewAchievementController(s.achievement),
		analytics:    controller.NewAnalyticsController(s.analytics),
		auraBot:      controller.NewAuraBotController(s.auraBot),
		user:         controller.NewUserController(s.user),
		adminContent: controller.NewAdminContentController(s.content, s.activity),
		adminUser:    controller.NewAdminUserController(s.user),
		compare:      controller.NewCompareController(s.comparison),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerConfigCallbacks 限流与 AuraBot 配额支持热更新，其余配置需要重启
func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.rateLimiter.Update(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.auraBot.SetQuota(cfg.AuraBot.SessionQuota)
		logger.Log.Info("AuraBot quota updated", zap.Int("quota", a.services.auraBot.Quota()))
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认跳过迁移，除非显式指定 -migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
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
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerConfigCallbacks()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 配置热更新
	go func() {
		if err := configwatcher.WatchConfig(ctx, configDir, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
}

// Close 释放后台资源
func (a *App) Close(ctx context.Context) {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
