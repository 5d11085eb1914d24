package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

func TestPreferencesDefaultToLight(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodGet, "/api/v1/preferences", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Preferences models.UserPreference `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "light", resp.Preferences.Theme)
}

func TestUpdateThemeRoundTrip(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPut, "/api/v1/preferences", map[string]string{
		"theme": "dark",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/v1/preferences", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Preferences models.UserPreference `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dark", resp.Preferences.Theme)
}

func TestUpdateThemeRejectsUnknownValue(t *testing.T) {
	router, db := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, db)

	w := PerformRequest(router, http.MethodPut, "/api/v1/preferences", map[string]string{
		"theme": "sepia",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Theme must be light or dark"}`, w.Body.String())
}
