package handlers

import (
	"errors"
	"net/http"
	"time"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TruckHandler struct {
	Store store.Store
	Cfg   config.Config
}

type CreateTruckRequest struct {
	TruckName       string   `json:"truck_name" binding:"required"`
	TruckModel      string   `json:"truck_model" binding:"required"`
	ManufactureYear int      `json:"manufacture_year" binding:"required"`
	Status          string   `json:"status"`
	Sensors         []string `json:"sensors"`
	Notes           string   `json:"notes"`
}

type UpdateTruckRequest struct {
	TruckName       *string   `json:"truck_name"`
	TruckModel      *string   `json:"truck_model"`
	ManufactureYear *int      `json:"manufacture_year"`
	Status          *string   `json:"status"`
	Sensors         *[]string `json:"sensors"`
	Notes           *string   `json:"notes"`

	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Speed             *float64 `json:"speed"`
	Heading           *float64 `json:"heading"`
	FuelLevel         *float64 `json:"fuel_level"`
	BatteryLevel      *float64 `json:"battery_level"`
	EngineTemperature *float64 `json:"engine_temperature"`
}

func (h *TruckHandler) GetAllTrucks(c *gin.Context) {
	var trucks []models.Truck
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Trucks, &trucks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query trucks: " + err.Error()})
		return
	}
	if trucks == nil {
		trucks = []models.Truck{}
	}
	c.JSON(http.StatusOK, trucks)
}

func (h *TruckHandler) GetTruck(c *gin.Context) {
	truckID := c.Param("truck_id")

	var truck models.Truck
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}, &truck)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck " + truckID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, truck)
}

func (h *TruckHandler) CreateTruck(c *gin.Context) {
	var req CreateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.DefaultTruckStatus
	}
	if !models.ValidTruckStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid truck status: " + status})
		return
	}

	now := time.Now().Unix()
	truck := models.Truck{
		TruckID:         "truck-" + uuid.New().String(),
		TruckName:       req.TruckName,
		TruckModel:      req.TruckModel,
		ManufactureYear: req.ManufactureYear,
		Status:          status,
		Sensors:         req.Sensors,
		Notes:           req.Notes,
		CreatedAt:       now,
		LastUpdated:     now,
	}

	if err := h.Store.Put(c.Request.Context(), h.Cfg.Tables.Trucks, truck); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, truck)
}

func (h *TruckHandler) UpdateTruck(c *gin.Context) {
	truckID := c.Param("truck_id")

	var req UpdateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Truck
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck " + truckID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve truck: " + err.Error()})
		return
	}

	changes := map[string]any{}
	if req.TruckName != nil {
		changes["truck_name"] = *req.TruckName
	}
	if req.TruckModel != nil {
		changes["truck_model"] = *req.TruckModel
	}
	if req.ManufactureYear != nil {
		changes["manufacture_year"] = *req.ManufactureYear
	}
	if req.Status != nil {
		if !models.ValidTruckStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid truck status: " + *req.Status})
			return
		}
		changes["status"] = *req.Status
	}
	if req.Sensors != nil {
		changes["sensors"] = *req.Sensors
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}
	if req.Latitude != nil {
		changes["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		changes["longitude"] = *req.Longitude
	}
	if req.Speed != nil {
		changes["speed"] = *req.Speed
	}
	if req.Heading != nil {
		changes["heading"] = *req.Heading
	}
	if req.FuelLevel != nil {
		changes["fuel_level"] = *req.FuelLevel
	}
	if req.BatteryLevel != nil {
		changes["battery_level"] = *req.BatteryLevel
	}
	if req.EngineTemperature != nil {
		changes["engine_temperature"] = *req.EngineTemperature
	}
	changes["last_updated"] = time.Now().Unix()

	if err := h.Store.Update(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update truck: " + err.Error()})
		return
	}

	var updated models.Truck
	if err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TruckHandler) DeleteTruck(c *gin.Context) {
	truckID := c.Param("truck_id")

	var existing models.Truck
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck " + truckID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve truck: " + err.Error()})
		return
	}

	if err := h.Store.Delete(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Truck " + truckID + " deleted successfully"})
}

// GetTruckStats returns the total plus a per-status count for the
// dashboard cards.
func (h *TruckHandler) GetTruckStats(c *gin.Context) {
	var trucks []models.Truck
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Trucks, &trucks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query trucks: " + err.Error()})
		return
	}

	stats := gin.H{"total": len(trucks)}
	for status, count := range countByField(trucks, func(t models.Truck) string { return t.Status }) {
		stats[status] = count
	}

	c.JSON(http.StatusOK, stats)
}

// GetTruckTelemetry reports the last telemetry stored on the truck
// record, shaped the way the monitoring page expects it.
func (h *TruckHandler) GetTruckTelemetry(c *gin.Context) {
	truckID := c.Param("truck_id")

	var truck models.Truck
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Trucks, store.Key{"truck_id": truckID}, &truck)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck " + truckID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve truck: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": gin.H{
			"lat": truck.Latitude,
			"lng": truck.Longitude,
		},
		"speed":       truck.Speed,
		"battery":     truck.BatteryLevel,
		"fuel":        truck.FuelLevel,
		"temperature": truck.EngineTemperature,
		"timestamp":   time.Now().Unix(),
	})
}
