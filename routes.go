package main

import (
	"todo-tracker/backend/internal/config"
	"todo-tracker/backend/internal/handlers"
	"todo-tracker/backend/internal/middleware"
	"todo-tracker/backend/internal/monitoring"
	"todo-tracker/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(cfg *config.Config, db *gorm.DB, taskService services.TaskService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstSize,
			cfg.RateLimit.CleanupInterval,
		)
		router.Use(limiter.Middleware())
	}

	authService := services.NewAuthService()
	registerService := services.NewRegisterService()
	tagService := services.NewTagService()

	authHandler := handlers.NewAuthHandler(db, authService)
	registerHandler := handlers.NewRegisterHandler(db, registerService)
	refreshHandler := handlers.NewRefreshHandler(db, authService)
	logoutHandler := handlers.NewLogoutHandler(db, authService)
	userHandler := handlers.NewUserHandler(db)
	taskHandler := handlers.NewTaskHandler(db, taskService)
	tagHandler := handlers.NewTagHandler(db, tagService)

	router.GET("/healthz", monitoring.HealthHandler)
	router.GET("/metrics", monitoring.MetricsHandler)

	auth := router.Group("/auth")
	{
		auth.POST("/register", registerHandler.Register)
		auth.POST("/token", authHandler.Token)
		auth.POST("/refresh", refreshHandler.Refresh)
		auth.POST("/logout", logoutHandler.Logout)
	}

	api := router.Group("/")
	api.Use(middleware.AuthzMiddleware())
	{
		api.GET("/users/me", userHandler.GetUserProfile)

		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.PATCH("/tasks/:id", taskHandler.PatchTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/tags/:tagID", taskHandler.AttachTag)
		api.DELETE("/tasks/:id/tags/:tagID", taskHandler.DetachTag)

		api.GET("/tags", tagHandler.ListTags)
		api.POST("/tags", tagHandler.CreateTag)
		api.DELETE("/tags/:id", tagHandler.DeleteTag)
	}

	return router
}
