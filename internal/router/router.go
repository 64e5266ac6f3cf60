package router

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tasktrackr/tasktrackr/db"
	"github.com/tasktrackr/tasktrackr/internal/auth"
	"github.com/tasktrackr/tasktrackr/internal/config"
	"github.com/tasktrackr/tasktrackr/internal/handlers"
	"github.com/tasktrackr/tasktrackr/internal/middleware"
	"github.com/tasktrackr/tasktrackr/internal/services"
	"github.com/tasktrackr/tasktrackr/internal/store"
)

func NewRouter(cfg *config.Config, logger zerolog.Logger, database *gorm.DB) (*gin.Engine, error) {
	tokens, err := auth.NewTokenManager(cfg.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	hasher, err := auth.NewPasswordHasher(cfg.Password.Hasher, cfg.Password.BcryptCost)
	if err != nil {
		return nil, err
	}

	st := store.New(database)
	authService := services.NewAuthService(logger, st, tokens, hasher)
	h := handlers.NewHandler(
		logger,
		authService,
		services.NewProjectService(logger, st),
		services.NewTaskService(logger, st),
		func(ctx context.Context) error { return db.Ping(ctx, database) },
	)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.AllowedHosts(cfg.AllowedHosts, logger))

	corsMiddleware, err := newCORS(cfg)
	if err != nil {
		return nil, err
	}
	if corsMiddleware != nil {
		r.Use(corsMiddleware)
	}

	requireAuth := middleware.AuthMiddleware(authService, logger)

	api := r.Group("/api")
	{
		api.GET("/health/", h.HealthCheck)
		api.POST("/token/", h.ObtainToken)
		api.POST("/token/refresh/", h.RefreshToken)

		users := api.Group("/users")
		{
			users.POST("/register/", h.Register)
			users.POST("/token/", h.ObtainToken)
			users.POST("/token/refresh/", h.RefreshToken)
			users.GET("/me/", requireAuth, h.Me)
			users.DELETE("/me/", requireAuth, h.DeleteMe)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.GET("/", h.ListProjects)
			projects.POST("/", h.CreateProject)
			projects.GET("/:project_id/", h.GetProject)
			projects.PUT("/:project_id/", h.ReplaceProject)
			projects.PATCH("/:project_id/", h.UpdateProject)
			projects.DELETE("/:project_id/", h.DeleteProject)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("/", h.ListTasks)
			tasks.POST("/", h.CreateTask)
			tasks.GET("/:task_id/", h.GetTask)
			tasks.PUT("/:task_id/", h.ReplaceTask)
			tasks.PATCH("/:task_id/", h.UpdateTask)
			tasks.DELETE("/:task_id/", h.DeleteTask)
		}
	}

	return r, nil
}

// newCORS allows the trusted origins. Without any, debug builds allow every
// origin and other builds send no CORS headers at all.
func newCORS(cfg *config.Config) (gin.HandlerFunc, error) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	switch {
	case len(cfg.TrustedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.TrustedOrigins
		corsConfig.AllowCredentials = true
	case cfg.Debug:
		corsConfig.AllowAllOrigins = true
	default:
		return nil, nil
	}

	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}
	return cors.New(corsConfig), nil
}
