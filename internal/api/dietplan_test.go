package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

func TestSaveAndGetDietPlan(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/diet-plan", map[string]interface{}{
		"dietType": "vegan",
		"category": "Normal",
		"items":    []string{"Oatmeal with berries", "Lentil soup"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Diet plan saved successfully")

	w = PerformRequest(router, http.MethodGet, "/api/v1/diet-plan", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DietPlan models.DietPlan `json:"dietPlan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "vegan", resp.DietPlan.DietType)
	assert.Equal(t, models.JSONStringArray{"Oatmeal with berries", "Lentil soup"}, resp.DietPlan.Items)
}

func TestSavingSecondPlanReplacesFirst(t *testing.T) {
	router, db := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, db)

	first := PerformRequest(router, http.MethodPost, "/api/v1/diet-plan", map[string]interface{}{
		"dietType": "vegan",
		"category": "Normal",
		"items":    []string{"a", "b", "c"},
	}, token)
	require.Equal(t, http.StatusCreated, first.Code)

	second := PerformRequest(router, http.MethodPost, "/api/v1/diet-plan", map[string]interface{}{
		"dietType": "non-vegan",
		"category": "Normal",
		"items":    []string{"x"},
	}, token)
	require.Equal(t, http.StatusCreated, second.Code)

	var count int64
	require.NoError(t, db.Model(&models.DietPlan{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w := PerformRequest(router, http.MethodGet, "/api/v1/diet-plan", nil, token)
	var resp struct {
		DietPlan models.DietPlan `json:"dietPlan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.JSONStringArray{"x"}, resp.DietPlan.Items)
}

func TestGetDietPlanNullWhenNeverSaved(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodGet, "/api/v1/diet-plan", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dietPlan":null}`, w.Body.String())
}

func TestSaveDietPlanRejectsMissingItems(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/diet-plan", map[string]interface{}{
		"dietType": "vegan",
		"category": "Normal",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
