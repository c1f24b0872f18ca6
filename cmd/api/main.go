package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/artloom/artloom-backend/docs"
	"github.com/artloom/artloom-backend/internal/config"
	"github.com/artloom/artloom-backend/internal/handler"
	"github.com/artloom/artloom-backend/internal/middleware"
	"github.com/artloom/artloom-backend/internal/migration"
	"github.com/artloom/artloom-backend/internal/repository"
	"github.com/artloom/artloom-backend/internal/routes"
	"github.com/artloom/artloom-backend/internal/service"
	pkgcache "github.com/artloom/artloom-backend/pkg/cache"
	"github.com/artloom/artloom-backend/pkg/jwt"
	pkglogger "github.com/artloom/artloom-backend/pkg/logger"
	pkgredis "github.com/artloom/artloom-backend/pkg/redis"
)

// @title           Artloom Backend API
// @version         1.0
// @description     Version history and lineage service for generated artifacts
//
// @license.name    MIT
//
// @host            localhost:8082
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting")

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	zlog.Info().Msg("connected to MySQL")
	if err := migration.Run(db); err != nil {
		zlog.Warn().Err(err).Msg("schema migration warning")
	}

	// Redis; the in-memory cache keeps the tree builder working without it
	var cacheService pkgcache.Service
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		zlog.Warn().Err(err).Msg("redis unavailable, using in-memory tree cache")
		cacheService = pkgcache.NewMemoryService()
	} else {
		zlog.Info().Msg("connected to Redis")
		cacheService = pkgcache.NewService(redisClient)
	}

	// JWT Manager
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Repositories
	artifactRepo := repository.NewArtifactRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	comparisonRepo := repository.NewComparisonRepository(db)
	forkRepo := repository.NewForkRepository(db)

	// Services
	versionSvc := service.NewVersionService(versionRepo, artifactRepo, cacheService, cfg.Versioning)
	branchSvc := service.NewBranchService(branchRepo, versionRepo, cacheService)
	comparisonSvc := service.NewComparisonService(versionRepo, comparisonRepo)
	treeSvc := service.NewFamilyTreeService(versionRepo, branchRepo, cacheService, cfg.Versioning.TreeCacheTTL())
	forkSvc := service.NewForkService(artifactRepo, forkRepo, versionSvc)
	artifactSvc := service.NewArtifactService(artifactRepo, versionSvc)

	// Router
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400 * time.Second,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "artloom-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router, &routes.Handlers{
		Artifact: handler.NewArtifactHandler(artifactSvc),
		Version:  handler.NewVersionHandler(versionSvc),
		Branch:   handler.NewBranchHandler(branchSvc),
		Compare:  handler.NewCompareHandler(comparisonSvc),
		Tree:     handler.NewTreeHandler(treeSvc),
		Fork:     handler.NewForkHandler(forkSvc),
	}, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	zlog.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s string, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// initDB opens the MySQL connection with pooling configured
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
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
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
