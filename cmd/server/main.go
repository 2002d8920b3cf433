package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"companyhub/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"companyhub/internal/auth"
	"companyhub/internal/cache"
	"companyhub/internal/config"
	"companyhub/internal/db"
	"companyhub/internal/handler"
	"companyhub/internal/identity"
	"companyhub/internal/model"
	"companyhub/internal/repository"
	"companyhub/internal/router"
	"companyhub/internal/service"
	"companyhub/internal/storage"
)

// @title Company Profile Registration API
// @version 1.0
// @description User signup/login with mobile and email verification, and company profile management with image uploads.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{
			&model.CompanyProfile{},
			&model.User{},
		} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.CompanyProfile{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.NewWithClient(redisClient)

	uploader, err := storage.NewS3Uploader(context.Background(), cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	identityClient, err := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)
	if err != nil {
		log.Fatalf("identity client init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	otpStore := auth.NewOTPStore(redisClient, cfg.OTPTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, otpStore, service.LogOTPSender{}, identityClient)
	companyService := service.NewCompanyService(companyRepo, cacheClient)
	uploadService := service.NewUploadService(companyRepo, uploader, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService, uploadService)

	// Register routes
	router.Register(e, cfg, jwtService, authHandler, companyHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
