package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/api"
	"github.com/fitzer-app/fitzer/backend/internal/middleware"
)

// SetupRouter builds the full application router: recovery, CORS, rate
// limiting, resource routes and the catch-all 404.
func SetupRouter(db *gorm.DB, redisClient *redis.Client, jwtSecret string, corsOrigins ...string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(corsOrigins...))

	api.RegisterRoutes(router, db, redisClient, jwtSecret)

	router.NoRoute(middleware.NotFound)

	return router
}
