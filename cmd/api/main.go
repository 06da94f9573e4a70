package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jmcastellanos/device-access-api/api/swagger"
	"github.com/jmcastellanos/device-access-api/internal/handler"
	"github.com/jmcastellanos/device-access-api/internal/middleware"
	"github.com/jmcastellanos/device-access-api/internal/repository"
	"github.com/jmcastellanos/device-access-api/internal/service"
	"github.com/jmcastellanos/device-access-api/pkg/cache"
	"github.com/jmcastellanos/device-access-api/pkg/config"
	"github.com/jmcastellanos/device-access-api/pkg/database"
	"github.com/jmcastellanos/device-access-api/pkg/logger"
	corsmiddleware "github.com/jmcastellanos/device-access-api/pkg/middleware/cors"
	reqidmiddleware "github.com/jmcastellanos/device-access-api/pkg/middleware/requestid"
	"github.com/jmcastellanos/device-access-api/pkg/validation"
)

// @title Device Access API
// @version 1.0.0
// @description User registration, token-based authentication and device assignment
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validation.New()

	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	tokenRepo := repository.NewTokenRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, tokenRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	deviceSvc := service.NewDeviceService(deviceRepo, userRepo, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc, metricsSvc)
	userHandler := handler.NewUserHandler(userSvc)
	deviceHandler := handler.NewDeviceHandler(deviceSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/login", authHandler.Login)
	r.POST("/refresh-token", authHandler.RefreshToken)
	r.POST("/refresh-token-login", authHandler.RefreshTokenLogin)
	r.POST("/register", authHandler.Register)
	r.POST("/register-hashed", userHandler.Store)
	r.POST("/devices/assign", deviceHandler.Assign)

	authed := r.Group("/", middleware.Auth(authSvc))
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/user-info", authHandler.UserInfo)
	authed.GET("/devices-info/:id", deviceHandler.Info)
	// Route spellings preserved for wire compatibility with existing clients.
	authed.GET("/devices-accesed", deviceHandler.Accessed)
	authed.GET("/devices-accesed-detailed", deviceHandler.AccessedDetailed)
	authed.GET("/devices-accessible", deviceHandler.Accessible)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
