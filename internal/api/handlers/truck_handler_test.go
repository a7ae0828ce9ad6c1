package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTruck(t *testing.T, router *gin.Engine, token string, payload gin.H) map[string]any {
	t.Helper()
	resp := doJSON(router, http.MethodPost, "/api/trucks", payload, token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decodeBody(t, resp)
}

func TestCreateTruckRoundTrip(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name":       "T1",
		"truck_model":      "X",
		"manufacture_year": 2024,
		"status":           "idle",
		"sensors":          []string{"lidar", "camera"},
		"notes":            "demo unit",
	})

	truckID, _ := created["truck_id"].(string)
	require.True(t, strings.HasPrefix(truckID, "truck-"))
	assert.Greater(t, created["created_at"].(float64), float64(0))

	resp := doJSON(router, http.MethodGet, "/api/trucks/"+truckID, nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	fetched := decodeBody(t, resp)

	assert.Equal(t, "T1", fetched["truck_name"])
	assert.Equal(t, "X", fetched["truck_model"])
	assert.Equal(t, float64(2024), fetched["manufacture_year"])
	assert.Equal(t, "idle", fetched["status"])
	assert.ElementsMatch(t, []any{"lidar", "camera"}, fetched["sensors"])
	assert.Equal(t, "demo unit", fetched["notes"])
}

func TestCreateTruckDefaultsStatus(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
	})
	assert.Equal(t, "idle", created["status"])
}

func TestCreateTruckRejectsBadStatus(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	resp := doJSON(router, http.MethodPost, "/api/trucks", gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
		"status": "flying",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateTruckRejectsUnknownField(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	// Fields outside the entity are rejected, not silently dropped.
	resp := doJSON(router, http.MethodPost, "/api/trucks", gin.H{
		"truck_name":       "T1",
		"truck_model":      "X",
		"manufacture_year": 2024,
		"paint_color":      "red",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestUpdateTruckRejectsUnknownField(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
	})
	truckID := created["truck_id"].(string)

	resp := doJSON(router, http.MethodPut, "/api/trucks/"+truckID, gin.H{
		"paint_color": "red",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestCreateTruckRequiresFields(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	resp := doJSON(router, http.MethodPost, "/api/trucks", gin.H{"truck_name": "T1"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTruckPartialUpdate(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
		"status": "idle", "notes": "demo unit",
	})
	truckID := created["truck_id"].(string)

	resp := doJSON(router, http.MethodPut, "/api/trucks/"+truckID, gin.H{
		"status": "maintenance",
	}, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decodeBody(t, resp)

	// Only status changed; everything else kept its value.
	assert.Equal(t, "maintenance", updated["status"])
	assert.Equal(t, created["truck_name"], updated["truck_name"])
	assert.Equal(t, created["truck_model"], updated["truck_model"])
	assert.Equal(t, created["manufacture_year"], updated["manufacture_year"])
	assert.Equal(t, created["notes"], updated["notes"])
	assert.Equal(t, created["created_at"], updated["created_at"])
}

func TestTruckSensorsSurviveSparseUpdate(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
		"sensors": []string{"lidar", "camera"},
	})
	truckID := created["truck_id"].(string)

	// The list written by the update path reads back the same way as
	// the one written at create, order included.
	resp := doJSON(router, http.MethodPut, "/api/trucks/"+truckID, gin.H{
		"sensors": []string{"lidar", "radar", "gps"},
	}, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doJSON(router, http.MethodGet, "/api/trucks/"+truckID, nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	fetched := decodeBody(t, resp)

	sensors := fetched["sensors"].([]any)
	require.Len(t, sensors, 3)
	assert.Equal(t, "lidar", sensors[0])
	assert.Equal(t, "radar", sensors[1])
	assert.Equal(t, "gps", sensors[2])
}

func TestUpdateTruckNotFound(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	resp := doJSON(router, http.MethodPut, "/api/trucks/truck-missing", gin.H{"status": "idle"}, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteTruckIsIdempotentFromCaller(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
	})
	truckID := created["truck_id"].(string)

	resp := doJSON(router, http.MethodDelete, "/api/trucks/"+truckID, nil, token)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Deleting again reports not found, it does not crash.
	resp = doJSON(router, http.MethodDelete, "/api/trucks/"+truckID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTruckStats(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
		"status": "idle",
	})

	resp := doJSON(router, http.MethodGet, "/api/trucks/stats", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	stats := decodeBody(t, resp)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["idle"])

	createTruck(t, router, token, gin.H{
		"truck_name": "T2", "truck_model": "Y", "manufacture_year": 2023,
		"status": "active",
	})

	resp = doJSON(router, http.MethodGet, "/api/trucks/stats", nil, token)
	stats = decodeBody(t, resp)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["idle"])
	assert.Equal(t, float64(1), stats["active"])
}

func TestTruckTelemetry(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	created := createTruck(t, router, token, gin.H{
		"truck_name": "T1", "truck_model": "X", "manufacture_year": 2024,
	})
	truckID := created["truck_id"].(string)

	resp := doJSON(router, http.MethodPut, "/api/trucks/"+truckID, gin.H{
		"latitude": 40.5, "longitude": -83.1, "speed": 62.0,
		"fuel_level": 75.0, "battery_level": 88.0, "engine_temperature": 91.5,
	}, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doJSON(router, http.MethodGet, "/api/trucks/"+truckID+"/telemetry", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	telemetry := decodeBody(t, resp)

	location := telemetry["location"].(map[string]any)
	assert.Equal(t, 40.5, location["lat"])
	assert.Equal(t, -83.1, location["lng"])
	assert.Equal(t, 62.0, telemetry["speed"])
	assert.Equal(t, 88.0, telemetry["battery"])
	assert.Equal(t, 75.0, telemetry["fuel"])
	assert.Equal(t, 91.5, telemetry["temperature"])
	assert.Greater(t, telemetry["timestamp"].(float64), float64(0))
}

func TestTruckTelemetryNotFound(t *testing.T) {
	router, mem, cfg := newTestServer(t)
	token := adminToken(t, router, mem, cfg)

	resp := doJSON(router, http.MethodGet, "/api/trucks/truck-missing/telemetry", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
