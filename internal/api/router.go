package api

import (
	"time"

	"recipe-grocery/internal/api/handlers/grocery"
	"recipe-grocery/internal/api/handlers/health"
	"recipe-grocery/internal/api/handlers/recipe"
	"recipe-grocery/internal/api/middleware"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Items      grocery.ItemStore
	Categories grocery.CategoryStore
	Recipes    recipe.Store
	Reconciler grocery.Reconciler
	Ping       health.PingFunc
	AIEnabled  bool
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}

	healthHandler := health.NewHandler(cfg.App.Version, deps.AIEnabled, deps.Ping)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireUser())
	v1.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	v1.Use(middleware.Deduplication(middleware.NewDeduplicator(cfg.DedupWindow)))

	groceryHandler := grocery.NewHandler(deps.Items, deps.Categories, deps.Reconciler)
	recipeHandler := recipe.NewHandler(deps.Recipes)

	recipes := v1.Group("/recipes")
	{
		recipes.POST("", recipeHandler.HandleCreate)
		recipes.GET("/:id", recipeHandler.HandleGet)
		recipes.POST("/:id/groceries", groceryHandler.HandleReconcile)
	}

	groceries := v1.Group("/groceries")
	{
		groceries.GET("", groceryHandler.HandleList)
		groceries.POST("", groceryHandler.HandleCreate)
		groceries.PUT("/:id", groceryHandler.HandleUpdate)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", groceryHandler.HandleListCategories)
		categories.POST("", groceryHandler.HandleCreateCategory)
	}

	common.LogInfo("Router setup completed",
		zap.Bool("ai_enabled", deps.AIEnabled),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
