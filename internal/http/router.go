package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/auth"
	"github.com/deepakpotluri/jobPortal-Backend/internal/cache"
	"github.com/deepakpotluri/jobPortal-Backend/internal/config"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/handlers"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/middlewares"
	"github.com/deepakpotluri/jobPortal-Backend/internal/observability"
	"github.com/deepakpotluri/jobPortal-Backend/internal/repo/postgres"
	"github.com/deepakpotluri/jobPortal-Backend/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, jobsCache *cache.Cache, files *storage.ResumeStore, jwtManager *auth.Manager, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.SetVerboseErrors(cfg.Env == "dev")

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(otelgin.Middleware("jobportal-api"))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// 10 MiB covers the largest resume uploads we accept.
	r.Use(middlewares.MaxBodyBytes(10 << 20))

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping, cfg.Env)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// uploaded resumes are also served read-only at their stored paths
	r.Static("/uploads", files.Dir())

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool)
	jobsRepo := postgres.NewJobsRepo(pool)
	applicationsRepo := postgres.NewApplicationsRepo(pool)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	jobsHandler := handlers.NewJobsHandler(jobsRepo, jobsCache)
	applicationsHandler := handlers.NewApplicationsHandler(applicationsRepo, files, log)

	authMW := middlewares.NewAuthMiddleware(jwtManager)
	employerGate := []gin.HandlerFunc{
		authMW.RequireAuth(),
		authMW.RequireRole(user.RoleEmployer, user.RoleAdmin),
	}

	limiter := middlewares.NewRateLimiter(20, time.Minute)

	authGroup := r.Group("/api/auth")
	authGroup.Use(limiter.Middleware(middlewares.KeyByIP))
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", authMW.RequireAuth(), authHandler.Profile)

	api := r.Group("/api")
	api.GET("/jobs", jobsHandler.ListJobs)
	api.GET("/jobs/search", jobsHandler.SearchJobs)
	api.GET("/jobs/:id", jobsHandler.GetJob)
	api.GET("/my-jobs", append(employerGate, jobsHandler.ListMyJobs)...)
	api.POST("/jobs", append(employerGate, jobsHandler.CreateJob)...)
	api.PUT("/jobs/:id", append(employerGate, jobsHandler.UpdateJob)...)
	api.DELETE("/jobs/:id", append(employerGate, jobsHandler.DeleteJob)...)

	applications := r.Group("/api/applications")
	applications.POST("/submit", applicationsHandler.Submit)
	applications.GET("/job/:jobId", applicationsHandler.ListForJob)
	applications.GET("/resume/download/:filename", applicationsHandler.DownloadResume)
	applications.GET("/resume/view/:filename", applicationsHandler.ViewResume)
	applications.PATCH("/:applicationId/status", applicationsHandler.UpdateStatus)

	return r
}
