package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/service"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

// MetricsHandler serves the BMI calculator and the weight progress chart.
type MetricsHandler struct {
	metricService *service.MetricService
}

func NewMetricsHandler(metricService *service.MetricService) *MetricsHandler {
	return &MetricsHandler{metricService: metricService}
}

func (h *MetricsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/bmi", h.SaveBMI)
	router.GET("/bmi", h.GetBMI)
	router.GET("/weight-history", h.GetWeightHistory)
}

func (h *MetricsHandler) SaveBMI(c *gin.Context) {
	var req types.SaveBMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Height, weight, age and BMI are required"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	record, err := h.metricService.SaveSnapshot(c.Request.Context(), userID, &req)
	if err != nil {
		log.Printf("Failed to save BMI record for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save BMI data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": record.ID, "message": "BMI data saved successfully"})
}

// GetBMI returns the latest snapshot, or an empty object when the user has
// never saved one. The empty object (not a 404) matches what the calculator
// page expects.
func (h *MetricsHandler) GetBMI(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	record, err := h.metricService.LatestSnapshot(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"bmiData": gin.H{}})
			return
		}
		log.Printf("Failed to load BMI record for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load BMI data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bmiData": record})
}

func (h *MetricsHandler) GetWeightHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	history, err := h.metricService.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to load weight history for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weight history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
