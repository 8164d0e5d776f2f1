package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voltfleet/voltfleet-backend/internal/config"
	"github.com/voltfleet/voltfleet-backend/internal/dto"
	"github.com/voltfleet/voltfleet-backend/internal/handlers"
	"github.com/voltfleet/voltfleet-backend/internal/models"
	"github.com/voltfleet/voltfleet-backend/internal/routes"
	"github.com/voltfleet/voltfleet-backend/internal/services"
	"github.com/voltfleet/voltfleet-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
	store := storage.NewMemoryStorage()
	authService := services.NewAuthService(store, cfg)
	stationService := services.NewStationService(store)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewStationHandler(stationService),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func registerUser(t *testing.T, app *fiber.App, username, email string) (token string) {
	t.Helper()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func stationBody() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Downtown",
		"address":       "1 Main St",
		"latitude":      37.77,
		"longitude":     -122.42,
		"status":        "active",
		"powerOutput":   150,
		"connectorType": "ccs",
	}
}

func TestStations_RequireBearerToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/stations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/stations", "garbage.token.here", stationBody())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStations_FullLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "alice", "a@x.com")

	// Create
	resp, raw := doJSON(t, app, http.MethodPost, "/api/stations", token, stationBody())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var created models.ChargingStation
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Downtown", created.Name)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// List includes exactly that station
	resp, raw = doJSON(t, app, http.MethodGet, "/api/stations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []models.ChargingStation
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Partial update refreshes status and updatedAt only
	resp, raw = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/stations/%d", created.ID), token, map[string]string{
		"status": "maintenance",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var updated models.ChargingStation
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "maintenance", updated.Status)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.PowerOutput, updated.PowerOutput)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	// Delete
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/stations/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Subsequent list is empty
	resp, raw = doJSON(t, app, http.MethodGet, "/api/stations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed = nil
	require.NoError(t, json.Unmarshal(raw, &listed))
	assert.Empty(t, listed)
}

func TestStations_ValidationErrors(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "alice", "a@x.com")

	body := stationBody()
	body["latitude"] = 123.0
	body["connectorType"] = "tesla"

	resp, raw := doJSON(t, app, http.MethodPost, "/api/stations", token, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Contains(t, errResp.Errors, "latitude")
	assert.Contains(t, errResp.Errors, "connectorType")
}

func TestStations_CrossUserAccessLooksNonexistent(t *testing.T) {
	app := newTestApp(t)
	aliceToken := registerUser(t, app, "alice", "a@x.com")
	bobToken := registerUser(t, app, "bob", "b@x.com")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/stations", aliceToken, stationBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created models.ChargingStation
	require.NoError(t, json.Unmarshal(raw, &created))

	// Bob cannot see, update or delete Alice's station; all report 404.
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/stations/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/stations/%d", created.ID), bobToken, map[string]string{"status": "inactive"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/stations/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The station is untouched for Alice.
	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/stations/%d", created.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var station models.ChargingStation
	require.NoError(t, json.Unmarshal(raw, &station))
	assert.Equal(t, "active", station.Status)
}

func TestStations_ListFiltersAndStats(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "alice", "a@x.com")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/stations", token, stationBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	second := stationBody()
	second["name"] = "Airport Garage"
	second["status"] = "maintenance"
	second["powerOutput"] = 50
	resp, _ = doJSON(t, app, http.MethodPost, "/api/stations", token, second)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/stations?search=airport", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []models.ChargingStation
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Airport Garage", listed[0].Name)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/stations?status=active", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed = nil
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Downtown", listed[0].Name)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/stations/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats storage.StationStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, int64(2), stats.TotalStations)
	assert.Equal(t, int64(1), stats.ActiveStations)
	assert.Equal(t, int64(1), stats.MaintenanceStations)
	assert.Equal(t, int64(200), stats.TotalPowerKW)
}

func TestStations_InvalidIDParam(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "alice", "a@x.com")

	resp, _ := doJSON(t, app, http.MethodPut, "/api/stations/not-a-number", token, map[string]string{"status": "active"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/stations/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
