package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gyansetu/gyansetu-backend/internal/config"
	"github.com/gyansetu/gyansetu-backend/internal/handler"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/internal/migration"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/internal/routes"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/internal/ws"
	pkgcache "github.com/gyansetu/gyansetu-backend/pkg/cache"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
	pkglogger "github.com/gyansetu/gyansetu-backend/pkg/logger"
	pkgredis "github.com/gyansetu/gyansetu-backend/pkg/redis"
	pkgstorage "github.com/gyansetu/gyansetu-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           GyanSetu API
// @version         1.0
// @description     Course-scoped academic Q&A platform
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

func main() {
	env := config.AppEnv()
	dotenvFiles := config.LoadDotEnv(env)

	pkglogger.Init()
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := config.ConfigPath(env)
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// MySQL
	db, err := initDB(cfg, env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis (optional: rate limiting and cross-instance notification fan-out)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = pkgredis.NewClient(rootCtx, pkgredis.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}

	// Image storage (optional)
	var store pkgstorage.BlobStore
	if cfg.Storage.Enabled {
		s3Client, err := pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.Warn("Failed to initialize storage: %v (image uploads disabled)", err)
		} else {
			store = s3Client
			pkglogger.Info("Storage initialized (bucket=%s)", cfg.Storage.Bucket)
		}
	}

	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()
	defer wsHub.Stop()

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	karmaRepo := repository.NewKarmaRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	identityService := service.NewIdentityService(profileRepo)
	authService := service.NewAuthService(profileRepo, jwtManager, notificationService)
	courseService := service.NewCourseService(courseRepo, profileRepo)
	questionService := service.NewQuestionService(questionRepo, answerRepo, profileRepo, voteRepo, courseService, notificationService, store)
	answerService := service.NewAnswerService(questionRepo, answerRepo, profileRepo, voteRepo, courseService, notificationService, store)
	replyService := service.NewReplyService(questionRepo, answerRepo, replyRepo, profileRepo, courseService, notificationService, store)
	voteService := service.NewCachedVoteService(
		service.NewVoteService(voteRepo, questionRepo, answerRepo, profileRepo, karmaRepo, courseService, notificationService, service.KarmaSettings{
			VoteWeight:  cfg.Karma.VoteWeight,
			AcceptBonus: cfg.Karma.AcceptBonus,
		}),
		pkgcache.NewService(redisClient),
	)
	moderationService := service.NewModerationService(reportRepo, questionRepo, answerRepo, replyRepo, profileRepo, notificationService, store)
	uploadService := service.NewUploadService(store, cfg.Storage.MaxUploadMB)

	// Handlers
	handlers := routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Profile:      handler.NewProfileHandler(identityService, voteService),
		Course:       handler.NewCourseHandler(courseService),
		Question:     handler.NewQuestionHandler(questionService, voteService),
		Answer:       handler.NewAnswerHandler(answerService, questionService, voteService),
		Reply:        handler.NewReplyHandler(replyService),
		Report:       handler.NewReportHandler(moderationService),
		Admin:        handler.NewAdminHandler(moderationService),
		Notification: handler.NewNotificationHandler(notificationService),
		Upload:       handler.NewUploadHandler(uploadService),
		WS:           handler.NewWSHandler(wsHub, jwtManager, cfg.CORS.AllowOrigins),
	}

	router := gin.Default()

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	routes.Setup(router, handlers, routes.Options{
		JWT:               jwtManager,
		Roles:             identityService,
		Redis:             redisClient,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		MaxUploadBytes:    int64(cfg.Storage.MaxUploadMB) << 20,
	})

	if sqlDB, err := db.DB(); err == nil {
		go middleware.WatchDBStats(rootCtx, sqlDB, 15*time.Second)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-rootCtx.Done()
	pkglogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Warn("Server shutdown: %v", err)
	}
	if redisClient != nil {
		redisClient.Close() //nolint:errcheck
	}
	pkglogger.Info("Server stopped")
}

// initDB opens MySQL through gorm with the pool settings from config
func initDB(cfg *config.Config, env string) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+00:00'"

	logLevel := gormlogger.Warn
	if env == "local" || env == "development" || env == "dev" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

// splitAndTrim splits a string by delimiter and drops empty parts
func splitAndTrim(s string, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
