package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/database"
	"github.com/fitzer-app/fitzer/backend/internal/middleware"
	"github.com/fitzer-app/fitzer/backend/internal/service"
)

// HealthCheck reports liveness, including a database ping. No auth, no
// rate limit.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fitzer API is running",
		})
	}
}

// RegisterRoutes wires every resource handler under /api/v1. The Redis
// client is optional; without it diet plan reads skip the cache and rate
// limiting is disabled.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, jwtSecret string) {
	authService := service.NewAuthService(db, jwtSecret)
	metricService := service.NewMetricService(db)
	planService := service.NewDietPlanService(db, redisClient)
	moduleService := service.NewModuleService(db)
	prefService := service.NewPreferenceService(db)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(authService)
	metricsHandler := NewMetricsHandler(metricService)
	planHandler := NewDietPlanHandler(planService)
	modulesHandler := NewModulesHandler(moduleService)
	prefHandler := NewPreferencesHandler(prefService)

	health := HealthCheck(db)
	router.GET("/health", health)
	router.GET("/api/v1/health", health)

	v1 := router.Group("/api/v1")
	if redisClient != nil {
		limiter := middleware.NewRequestRateLimiter(redisClient)
		v1.Use(limiter.RateLimitMiddleware())
	}

	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	profileHandler.RegisterRoutes(protected)
	metricsHandler.RegisterRoutes(protected)
	planHandler.RegisterRoutes(protected)
	modulesHandler.RegisterRoutes(protected)
	prefHandler.RegisterRoutes(protected)
}
