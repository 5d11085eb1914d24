package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitzer-app/fitzer/backend/internal/service"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

type PreferencesHandler struct {
	prefService *service.PreferenceService
}

func NewPreferencesHandler(prefService *service.PreferenceService) *PreferencesHandler {
	return &PreferencesHandler{prefService: prefService}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/preferences", h.GetPreferences)
	router.PUT("/preferences", h.UpdatePreferences)
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	pref, err := h.prefService.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to load preferences for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": pref})
}

func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme is required"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.prefService.SetTheme(c.Request.Context(), userID, req.Theme); err != nil {
		if errors.Is(err, service.ErrInvalidTheme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be light or dark"})
			return
		}
		log.Printf("Failed to update preferences for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully"})
}
