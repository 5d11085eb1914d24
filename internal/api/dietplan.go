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

type DietPlanHandler struct {
	planService *service.DietPlanService
}

func NewDietPlanHandler(planService *service.DietPlanService) *DietPlanHandler {
	return &DietPlanHandler{planService: planService}
}

func (h *DietPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/diet-plan", h.SavePlan)
	router.GET("/diet-plan", h.GetPlan)
}

func (h *DietPlanHandler) SavePlan(c *gin.Context) {
	var req types.SaveDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Diet type, category and items are required"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	plan, err := h.planService.Save(c.Request.Context(), userID, req.DietType, req.Category, req.Items)
	if err != nil {
		log.Printf("Failed to save diet plan for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save diet plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": plan.ID, "message": "Diet plan saved successfully"})
}

// GetPlan returns the retained plan, or a null plan when none was ever
// saved.
func (h *DietPlanHandler) GetPlan(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	plan, err := h.planService.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"dietPlan": nil})
			return
		}
		log.Printf("Failed to load diet plan for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load diet plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dietPlan": plan})
}
