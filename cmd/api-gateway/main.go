package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/portal-api/api/swagger"
	"github.com/noah-isme/portal-api/internal/handler"
	"github.com/noah-isme/portal-api/internal/repository"
	"github.com/noah-isme/portal-api/internal/router"
	"github.com/noah-isme/portal-api/internal/service"
	"github.com/noah-isme/portal-api/pkg/cache"
	"github.com/noah-isme/portal-api/pkg/config"
	"github.com/noah-isme/portal-api/pkg/database"
	"github.com/noah-isme/portal-api/pkg/logger"
	"github.com/noah-isme/portal-api/pkg/response"
	"github.com/noah-isme/portal-api/pkg/storage"
)

// @title Portal API
// @version 1.0.0
// @description Storefront, quiz platform and job board
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.JWT.Secret == "" || (cfg.Env == config.EnvProduction && cfg.JWT.Secret == config.DevJWTSecret) {
		logr.Fatal("JWT_SECRET must be set")
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
		response.RedactInternalErrors(true)
	}

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, auth rate limiting disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("failed to prepare upload storage", zap.Error(err))
	}
	signingSecret := cfg.Uploads.SignedURLSecret
	if signingSecret == "" {
		signingSecret = cfg.JWT.Secret
	}
	signer := storage.NewSignedURLSigner(signingSecret, cfg.Uploads.SignedURLTTL)

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, metrics, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	uploads := service.NewUploadService(store, service.UploadLimits{
		MaxImageBytes:  cfg.Uploads.MaxImageBytes,
		MaxResumeBytes: cfg.Uploads.MaxResumeBytes,
	}, logr)
	userSvc := service.NewUserService(userRepo, uploads, validate, logr)
	productSvc := service.NewProductService(productRepo, validate, logr)
	orderSvc := service.NewOrderService(orderRepo, userRepo, userRepo, metrics, validate, logr)
	adminSvc := service.NewAdminService(userRepo, productRepo, orderRepo, logr)
	quizSvc := service.NewQuizService(quizRepo, metrics, validate, logr)
	jobSvc := service.NewJobService(jobRepo, userRepo, validate, logr)
	applicationSvc := service.NewApplicationService(service.ApplicationDeps{
		Repo:    applicationRepo,
		Jobs:    jobRepo,
		Users:   userRepo,
		Files:   uploads,
		Signer:  signer,
		Audit:   userRepo,
		Metrics: metrics,
	}, validate, logr)

	engine := router.New(router.Deps{
		Config:  cfg,
		Logger:  logr,
		Auth:    authSvc,
		Limiter: cache.NewFixedWindowLimiter(redisClient),
		Metrics: metrics,
		Handlers: router.Handlers{
			Auth:        handler.NewAuthHandler(authSvc),
			Users:       handler.NewUserHandler(userSvc),
			Products:    handler.NewProductHandler(productSvc),
			Orders:      handler.NewOrderHandler(orderSvc),
			Admin:       handler.NewAdminHandler(adminSvc),
			Quizzes:     handler.NewQuizHandler(quizSvc),
			Jobs:        handler.NewJobHandler(jobSvc),
			Application: handler.NewApplicationHandler(applicationSvc),
			Metrics:     handler.NewMetricsHandler(metrics, db),
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env,
			"store", cfg.Features.Store, "quizzes", cfg.Features.Quizzes, "jobs", cfg.Features.Jobs)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
