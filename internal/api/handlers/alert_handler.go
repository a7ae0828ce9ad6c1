package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/socket"
	"ast-fleet-console-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlertHandler struct {
	Store store.Store
	Cfg   config.Config
	Hub   *socket.Hub
}

type CreateAlertRequest struct {
	AlertType string `json:"alert_type" binding:"required"`
	TruckID   string `json:"truck_id"`
	Message   string `json:"message" binding:"required"`
	Severity  string `json:"severity" binding:"required"`
	Status    string `json:"status"`
}

type UpdateAlertRequest struct {
	AlertType *string `json:"alert_type"`
	TruckID   *string `json:"truck_id"`
	Message   *string `json:"message"`
	Severity  *string `json:"severity"`
	Status    *string `json:"status"`
}

type ResolveAlertRequest struct {
	ResolutionNotes string `json:"resolution_notes"`
}

// publish pushes an alert event to connected dashboards. Nothing
// depends on delivery; a dashboard that missed it refetches on load.
func (h *AlertHandler) publish(event string, alert models.Alert) {
	if h.Hub == nil {
		return
	}
	msg, err := json.Marshal(gin.H{"event": event, "alert": alert})
	if err != nil {
		return
	}
	h.Hub.Broadcast(msg)
}

// GetAllAlerts supports optional truck_id and severity query filters.
// The referenced truck may no longer exist; alerts list regardless.
func (h *AlertHandler) GetAllAlerts(c *gin.Context) {
	var alerts []models.Alert
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Alerts, &alerts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alerts: " + err.Error()})
		return
	}

	truckID := c.Query("truck_id")
	severity := c.Query("severity")
	filtered := make([]models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if truckID != "" && alert.TruckID != truckID {
			continue
		}
		if severity != "" && alert.Severity != severity {
			continue
		}
		filtered = append(filtered, alert)
	}

	c.JSON(http.StatusOK, filtered)
}

func (h *AlertHandler) GetAlert(c *gin.Context) {
	alertID := c.Param("alert_id")

	var alert models.Alert
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, &alert)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert " + alertID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, alert)
}

// CreateAlert stores a new alert. truck_id is a soft reference and is
// not checked against the trucks table.
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidAlertSeverity(req.Severity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert severity: " + req.Severity})
		return
	}
	status := req.Status
	if status == "" {
		status = models.DefaultAlertStatus
	}
	if !models.ValidAlertStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert status: " + status})
		return
	}

	now := time.Now().Unix()
	alert := models.Alert{
		AlertID:   "alert-" + uuid.New().String(),
		AlertType: req.AlertType,
		TruckID:   req.TruckID,
		Message:   req.Message,
		Severity:  req.Severity,
		Status:    status,
		Timestamp: now,
		UpdatedAt: now,
	}

	if err := h.Store.Put(c.Request.Context(), h.Cfg.Tables.Alerts, alert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert: " + err.Error()})
		return
	}

	h.publish("alert_created", alert)
	c.JSON(http.StatusCreated, alert)
}

func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	alertID := c.Param("alert_id")

	var req UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Alert
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert " + alertID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert: " + err.Error()})
		return
	}

	changes := map[string]any{}
	if req.AlertType != nil {
		changes["alert_type"] = *req.AlertType
	}
	if req.TruckID != nil {
		changes["truck_id"] = *req.TruckID
	}
	if req.Message != nil {
		changes["message"] = *req.Message
	}
	if req.Severity != nil {
		if !models.ValidAlertSeverity(*req.Severity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert severity: " + *req.Severity})
			return
		}
		changes["severity"] = *req.Severity
	}
	if req.Status != nil {
		if !models.ValidAlertStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert status: " + *req.Status})
			return
		}
		changes["status"] = *req.Status
	}
	changes["updated_at"] = time.Now().Unix()

	if err := h.Store.Update(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert: " + err.Error()})
		return
	}

	var updated models.Alert
	if err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated alert: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	alertID := c.Param("alert_id")

	// The resolve button posts an empty body unless notes were typed.
	var req ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Alert
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert " + alertID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert: " + err.Error()})
		return
	}

	now := time.Now().Unix()
	changes := map[string]any{
		"status":      "resolved",
		"resolved_at": now,
		"updated_at":  now,
	}
	if req.ResolutionNotes != "" {
		changes["resolution_notes"] = req.ResolutionNotes
	}

	if err := h.Store.Update(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve alert: " + err.Error()})
		return
	}

	var updated models.Alert
	if err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated alert: " + err.Error()})
		return
	}

	h.publish("alert_resolved", updated)
	c.JSON(http.StatusOK, updated)
}

func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	alertID := c.Param("alert_id")

	var existing models.Alert
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert " + alertID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert: " + err.Error()})
		return
	}

	if err := h.Store.Delete(c.Request.Context(), h.Cfg.Tables.Alerts, store.Key{"alert_id": alertID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alert: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert " + alertID + " deleted successfully"})
}

func (h *AlertHandler) GetAlertStats(c *gin.Context) {
	var alerts []models.Alert
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Alerts, &alerts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alerts: " + err.Error()})
		return
	}

	statusCounts := countByField(alerts, func(a models.Alert) string { return a.Status })

	c.JSON(http.StatusOK, gin.H{
		"total":       len(alerts),
		"active":      statusCounts["active"],
		"resolved":    statusCounts["resolved"],
		"by_severity": countByField(alerts, func(a models.Alert) string { return a.Severity }),
	})
}

// GetRecentAlerts returns the newest alerts first. Equal timestamps
// are ordered by alert_id ascending so the result is stable.
func (h *AlertHandler) GetRecentAlerts(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	var alerts []models.Alert
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Alerts, &alerts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alerts: " + err.Error()})
		return
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Timestamp != alerts[j].Timestamp {
			return alerts[i].Timestamp > alerts[j].Timestamp
		}
		return alerts[i].AlertID < alerts[j].AlertID
	})

	if len(alerts) > limit {
		alerts = alerts[:limit]
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}

	c.JSON(http.StatusOK, alerts)
}
