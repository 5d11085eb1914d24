package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitzer-app/fitzer/backend/internal/service"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

type ModulesHandler struct {
	moduleService *service.ModuleService
}

func NewModulesHandler(moduleService *service.ModuleService) *ModulesHandler {
	return &ModulesHandler{moduleService: moduleService}
}

func (h *ModulesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/modules", h.SaveModules)
	router.GET("/modules", h.GetModules)
}

// SaveModules replaces the user's full progress set.
func (h *ModulesHandler) SaveModules(c *gin.Context) {
	var req types.SaveModulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Modules are required"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.moduleService.Replace(c.Request.Context(), userID, req.Modules); err != nil {
		log.Printf("Failed to save modules for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save modules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Modules saved successfully"})
}

func (h *ModulesHandler) GetModules(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	modules, err := h.moduleService.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to load modules for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load modules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modules": modules})
}
