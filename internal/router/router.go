package router

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/handler"
	"github.com/noah-isme/portal-api/internal/middleware"
	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	"github.com/noah-isme/portal-api/pkg/config"
	"github.com/noah-isme/portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/portal-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by New. Handlers of disabled
// feature groups may be nil.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Products    *handler.ProductHandler
	Orders      *handler.OrderHandler
	Admin       *handler.AdminHandler
	Quizzes     *handler.QuizHandler
	Jobs        *handler.JobHandler
	Application *handler.ApplicationHandler
	Metrics     *handler.MetricsHandler
}

// Deps carries everything the router needs besides handlers.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Auth     middleware.Authenticator
	Limiter  middleware.Limiter
	Metrics  *service.MetricsService
	Handlers Handlers
}

// New builds the gin engine with every enabled route group.
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	if deps.Logger != nil {
		r.Use(logger.GinMiddleware(deps.Logger))
	}
	r.Use(corsmiddleware.New(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	h := deps.Handlers
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		if cfg.Metrics.Enabled {
			r.GET("/metrics", h.Metrics.Prometheus)
		}
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if cfg.Uploads.Dir != "" {
		r.Static(service.PublicUploadsPrefix, filepath.Join(cfg.Uploads.Dir, "public"))
	}

	authRequired := middleware.JWT(deps.Auth)
	authOptional := middleware.OptionalJWT(deps.Auth)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	limit := middleware.RateLimit(deps.Limiter, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", limit, h.Auth.Register)
	auth.POST("/login", limit, h.Auth.Login)
	auth.GET("/me", authRequired, h.Auth.Me)
	auth.PUT("/profile", authRequired, h.Users.UpdateProfile)

	admin := api.Group("/admin", authRequired, adminOnly)
	admin.GET("/users", h.Users.List)
	admin.PUT("/users/:id/role", h.Users.UpdateRole)

	if cfg.Features.Store {
		products := api.Group("/products")
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)
		products.POST("", authRequired, adminOnly, h.Products.Create)
		products.PUT("/:id", authRequired, adminOnly, h.Products.Update)
		products.DELETE("/:id", authRequired, adminOnly, h.Products.Delete)

		orders := api.Group("/orders", authRequired)
		orders.POST("", h.Orders.Create)
		orders.GET("/my-orders", h.Orders.MyOrders)
		orders.GET("", adminOnly, h.Orders.List)
		orders.GET("/:id", h.Orders.Get)
		orders.GET("/:id/invoice", h.Orders.Invoice)
		orders.PUT("/:id/status", adminOnly, h.Orders.UpdateStatus)
		orders.POST("/:id/cancel", h.Orders.Cancel)

		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/orders/export", h.Admin.ExportOrders)
	}

	if cfg.Features.Quizzes {
		quizzes := api.Group("/quizzes")
		quizzes.GET("", h.Quizzes.List)
		quizzes.GET("/user/my-quizzes", authRequired, h.Quizzes.MyQuizzes)
		quizzes.GET("/user/history", authRequired, h.Quizzes.History)
		quizzes.GET("/:id", authOptional, h.Quizzes.Get)
		quizzes.GET("/:id/leaderboard", authOptional, h.Quizzes.Leaderboard)
		quizzes.GET("/:id/stats", authOptional, h.Quizzes.Stats)
		quizzes.POST("", authRequired, h.Quizzes.Create)
		quizzes.PUT("/:id", authRequired, h.Quizzes.Update)
		quizzes.DELETE("/:id", authRequired, h.Quizzes.Delete)
		quizzes.POST("/:id/submit", authRequired, h.Quizzes.Submit)
	}

	if cfg.Features.Jobs {
		recruiter := middleware.RequireRoles(models.RoleRecruiter)
		recruiterOrAdmin := middleware.RequireRoles(models.RoleRecruiter, models.RoleAdmin)
		student := middleware.RequireRoles(models.RoleStudent)

		jobs := api.Group("/jobs")
		jobs.GET("", h.Jobs.List)
		jobs.GET("/recruiter/my-jobs", authRequired, recruiter, h.Jobs.MyJobs)
		jobs.GET("/:id", h.Jobs.Get)
		jobs.POST("", authRequired, recruiter, h.Jobs.Create)
		jobs.PUT("/:id", authRequired, recruiterOrAdmin, h.Jobs.Update)
		jobs.DELETE("/:id", authRequired, recruiterOrAdmin, h.Jobs.Delete)

		apps := api.Group("/applications", authRequired)
		apps.POST("", student, h.Application.Apply)
		apps.GET("/my-applications", student, h.Application.MyApplications)
		apps.GET("/job/:jobId", recruiterOrAdmin, h.Application.ForJob)
		apps.GET("/:id", h.Application.Get)
		apps.GET("/:id/resume", h.Application.Resume)
		apps.PUT("/:id/status", recruiter, h.Application.UpdateStatus)
		apps.DELETE("/:id", student, h.Application.Withdraw)

		r.GET(service.FilesPathPrefix+"/:token", h.Application.Download)
	}

	return r
}
