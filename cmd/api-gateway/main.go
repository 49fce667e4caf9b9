package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/KhobaitUddinSimran/Student-Management-System/api/swagger"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/handler"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/repository"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/cache"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/config"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/database"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/logger"
	corsmiddleware "github.com/KhobaitUddinSimran/Student-Management-System/pkg/middleware/cors"
	reqidmiddleware "github.com/KhobaitUddinSimran/Student-Management-System/pkg/middleware/requestid"
)

// @title Student Management System API
// @version 1.0.0
// @description School management backend: users, grades, attendance, notifications, analytics
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	classRepo := repository.NewClassRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheEnabled := cfg.Analytics.CacheEnabled && redisClient != nil
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cacheEnabled)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)

	publisher := service.NewGradePublisher(logr, metricsSvc)
	publisher.Subscribe(service.NewEmailNotificationObserver(userRepo, logr, cfg.Notifications.EmailsEnabled))
	publisher.Subscribe(service.NewParentPortalObserver(userRepo, notificationRepo, metricsSvc, logr))

	gradeSvc := service.NewGradeService(gradeRepo, userRepo, publisher, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, notificationRepo, metricsSvc, validate, logr, cfg.Analytics.TrendDays)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, metricsSvc, validate, logr, cfg.Notifications.FeedLimit)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, classRepo, attendanceRepo, cacheSvc, metricsSvc, logr, cfg.Analytics.TopLimit)
	parentSvc := service.NewParentService(userRepo, gradeSvc, attendanceSvc, logr)
	classSvc := service.NewClassService(classRepo, userRepo, validate, logr)
	reportSvc := service.NewReportService(gradeSvc, attendanceSvc, userRepo, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router := &handler.Router{
		Auth:          handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(userSvc),
		Grades:        handler.NewGradeHandler(gradeSvc, analyticsSvc),
		Attendance:    handler.NewAttendanceHandler(attendanceSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Classes:       handler.NewClassHandler(classSvc),
		Analytics:     handler.NewAnalyticsHandler(analyticsSvc),
		Parents:       handler.NewParentHandler(parentSvc),
		Reports:       handler.NewReportHandler(reportSvc),

		AuthService:    authSvc,
		MetricsService: metricsSvc,
	}
	router.Register(r, cfg.APIPrefix)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
