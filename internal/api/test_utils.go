package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fitzer-app/fitzer/backend/internal/database"
	"github.com/fitzer-app/fitzer/backend/internal/middleware"
	"github.com/fitzer-app/fitzer/backend/internal/models"
	"github.com/fitzer-app/fitzer/backend/internal/service"
)

const testJWTSecret = "test-secret"

// SetupTestDB opens an isolated in-memory database migrated with the full
// schema. The named DSN keeps every pooled connection on the same store.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SetupTestRouter builds a router with the same middleware chain as
// production, minus rate limiting (no Redis in unit tests).
func SetupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	RegisterRoutes(router, db, nil, testJWTSecret)
	router.NoRoute(middleware.NotFound)

	return router, db
}

// CreateTestUserAndToken inserts a user with preferences and returns a
// valid bearer token for it.
func CreateTestUserAndToken(t *testing.T, db *gorm.DB) (uuid.UUID, string) {
	t.Helper()

	authService := service.NewAuthService(db, testJWTSecret)
	username := fmt.Sprintf("testuser_%s", uuid.NewString()[:8])
	user, token, err := authService.Register(context.Background(), "Test User", username, "")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user.ID, token
}

// PerformRequest runs one request through the router. An empty token
// leaves the Authorization header off entirely.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}

// SeedSnapshot writes a BMI record directly, bypassing the API.
func SeedSnapshot(t *testing.T, db *gorm.DB, userID uuid.UUID, weightKg float64) *models.BMIRecord {
	t.Helper()

	record := models.BMIRecord{
		UserID:   userID,
		HeightCm: 175,
		WeightKg: weightKg,
		Age:      25,
		BMI:      service.ComputeBMI(175, weightKg),
	}
	record.Category = service.BMICategory(record.BMI)
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to seed BMI record: %v", err)
	}
	return &record
}
