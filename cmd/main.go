package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"portal/internal/cache"
	"portal/internal/config"
	"portal/internal/handler"
	"portal/internal/logger"
	"portal/internal/middleware"
	"portal/internal/planner"
	"portal/internal/repository/postgres"
	"portal/internal/storage"
	"portal/internal/utils"

	_ "portal/docs"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Student Portal API
// @version 1.0
// @description Course registration, schedule recommendation and exception requests

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.App.SeedCatalog {
		catalog := postgres.DefaultCatalog
		if cfg.App.CatalogFile != "" {
			catalog, err = os.ReadFile(cfg.App.CatalogFile)
			if err != nil {
				log.Fatal().Err(err).Str("file", cfg.App.CatalogFile).Msg("Failed to read catalog file")
			}
		}
		if err := db.SeedCatalog(ctx, catalog, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	var loader planner.ContextLoader = db
	var refresher handler.Refresher
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, academic context will not be cached")
	} else {
		defer rdb.Close()
		contextCache := cache.NewContextCache(rdb, db, cfg.Redis.ContextTTL, log)
		loader = contextCache
		refresher = contextCache
	}

	var gen *planner.Generator
	if cfg.Planner.Seed != 0 {
		gen = planner.NewSeededGenerator(cfg.Planner.Titles, cfg.Planner.Seed)
	} else {
		gen = planner.NewGenerator(cfg.Planner.Titles, nil)
	}
	svc := planner.NewService(loader, gen, nil, log)

	issuer, err := utils.NewTokenIssuer(cfg.JWT.Secret, cfg.JWTExpiry())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token issuer")
	}

	var files storage.Storage
	if cfg.Storage.S3.Bucket != "" {
		s3, err := storage.NewS3Storage(cfg.Storage.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
		files = s3
	} else {
		log.Info().Msg("S3 bucket not configured, exception attachments disabled")
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(logger.RequestLogger(log))

	e.Validator = handler.NewValidator()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	handler.SetupCourseRoutes(e, db, log)

	authMiddleware := middleware.JWTAuth(issuer)
	handler.SetupStudentRoutes(e, db, issuer, svc, authMiddleware, log)
	handler.SetupPlanRoutes(e, svc, db, refresher, authMiddleware, log)
	handler.SetupEnrollmentRoutes(e, svc, db, refresher, authMiddleware, log)
	handler.SetupExceptionRoutes(e, db, files, cfg.Server.MaxUploadBytes, authMiddleware, log)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Str("env", cfg.App.Env).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
