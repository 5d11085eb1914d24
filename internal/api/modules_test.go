package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

func TestSaveAndGetModules(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/modules", map[string]interface{}{
		"modules": []map[string]interface{}{
			{"label": "Workouts", "completed": 3, "total": 10},
			{"label": "Diet Plans", "completed": 2, "total": 8},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/modules", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Modules []models.UserModule `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Modules, 2)

	labels := []string{resp.Modules[0].Label, resp.Modules[1].Label}
	assert.Contains(t, labels, "Workouts")
	assert.Contains(t, labels, "Diet Plans")
}

func TestSavingModulesReplacesPreviousSet(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/modules", map[string]interface{}{
		"modules": []map[string]interface{}{
			{"label": "Workouts", "completed": 3, "total": 10},
			{"label": "Trainers", "completed": 1, "total": 6},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodPost, "/api/v1/modules", map[string]interface{}{
		"modules": []map[string]interface{}{
			{"label": "Workouts", "completed": 4, "total": 10},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/modules", nil, token)
	var resp struct {
		Modules []models.UserModule `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Modules, 1)
	assert.Equal(t, 4, resp.Modules[0].Completed)
}

func TestSaveModulesRejectsMissingBody(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPost, "/api/v1/modules", map[string]interface{}{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
