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

type RouteHandler struct {
	Store store.Store
	Cfg   config.Config
}

type CreateRouteRequest struct {
	RouteName          string   `json:"route_name"`
	TruckID            string   `json:"truck_id" binding:"required"`
	StartLocation      string   `json:"start_location" binding:"required"`
	EndLocation        string   `json:"end_location" binding:"required"`
	Status             string   `json:"status"`
	EstimatedStartTime int64    `json:"estimated_start_time"`
	EstimatedEndTime   int64    `json:"estimated_end_time"`
	Waypoints          []string `json:"waypoints"`
}

type UpdateRouteRequest struct {
	RouteName          *string   `json:"route_name"`
	TruckID            *string   `json:"truck_id"`
	StartLocation      *string   `json:"start_location"`
	EndLocation        *string   `json:"end_location"`
	Status             *string   `json:"status"`
	EstimatedStartTime *int64    `json:"estimated_start_time"`
	EstimatedEndTime   *int64    `json:"estimated_end_time"`
	Waypoints          *[]string `json:"waypoints"`
}

// GetAllRoutes supports optional truck_id and status query filters.
func (h *RouteHandler) GetAllRoutes(c *gin.Context) {
	var routes []models.Route
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Routes, &routes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query routes: " + err.Error()})
		return
	}

	truckID := c.Query("truck_id")
	status := c.Query("status")
	filtered := make([]models.Route, 0, len(routes))
	for _, route := range routes {
		if truckID != "" && route.TruckID != truckID {
			continue
		}
		if status != "" && route.Status != status {
			continue
		}
		filtered = append(filtered, route)
	}

	c.JSON(http.StatusOK, filtered)
}

func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID := c.Param("route_id")

	var route models.Route
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, &route)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route " + routeID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, route)
}

// CreateRoute stores a new route. truck_id is a soft reference to the
// trucks table and is not checked for existence.
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.DefaultRouteStatus
	}
	if !models.ValidRouteStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route status: " + status})
		return
	}

	now := time.Now().Unix()
	route := models.Route{
		RouteID:            "route-" + uuid.New().String(),
		RouteName:          req.RouteName,
		TruckID:            req.TruckID,
		StartLocation:      req.StartLocation,
		EndLocation:        req.EndLocation,
		Status:             status,
		EstimatedStartTime: req.EstimatedStartTime,
		EstimatedEndTime:   req.EstimatedEndTime,
		Waypoints:          req.Waypoints,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.Store.Put(c.Request.Context(), h.Cfg.Tables.Routes, route); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create route: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, route)
}

func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	routeID := c.Param("route_id")

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Route
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route " + routeID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route: " + err.Error()})
		return
	}

	changes := map[string]any{}
	if req.RouteName != nil {
		changes["route_name"] = *req.RouteName
	}
	if req.TruckID != nil {
		changes["truck_id"] = *req.TruckID
	}
	if req.StartLocation != nil {
		changes["start_location"] = *req.StartLocation
	}
	if req.EndLocation != nil {
		changes["end_location"] = *req.EndLocation
	}
	if req.Status != nil {
		if !models.ValidRouteStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route status: " + *req.Status})
			return
		}
		changes["status"] = *req.Status
	}
	if req.EstimatedStartTime != nil {
		changes["estimated_start_time"] = *req.EstimatedStartTime
	}
	if req.EstimatedEndTime != nil {
		changes["estimated_end_time"] = *req.EstimatedEndTime
	}
	if req.Waypoints != nil {
		changes["waypoints"] = *req.Waypoints
	}
	changes["updated_at"] = time.Now().Unix()

	if err := h.Store.Update(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route: " + err.Error()})
		return
	}

	var updated models.Route
	if err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated route: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	routeID := c.Param("route_id")

	var existing models.Route
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route " + routeID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route: " + err.Error()})
		return
	}

	if err := h.Store.Delete(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route " + routeID + " deleted successfully"})
}

// StartRoute marks a scheduled route as in progress.
func (h *RouteHandler) StartRoute(c *gin.Context) {
	h.transitionRoute(c, "in_progress", "started_at")
}

// CompleteRoute marks a route as completed.
func (h *RouteHandler) CompleteRoute(c *gin.Context) {
	h.transitionRoute(c, "completed", "completed_at")
}

func (h *RouteHandler) transitionRoute(c *gin.Context, status, timestampField string) {
	routeID := c.Param("route_id")

	var existing models.Route
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route " + routeID + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route: " + err.Error()})
		return
	}

	now := time.Now().Unix()
	changes := map[string]any{
		"status":       status,
		timestampField: now,
		"updated_at":   now,
	}

	if err := h.Store.Update(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route: " + err.Error()})
		return
	}

	var updated models.Route
	if err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Routes, store.Key{"route_id": routeID}, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated route: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *RouteHandler) GetRouteStats(c *gin.Context) {
	var routes []models.Route
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Routes, &routes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query routes: " + err.Error()})
		return
	}

	stats := gin.H{"total": len(routes)}
	for status, count := range countByField(routes, func(r models.Route) string { return r.Status }) {
		stats[status] = count
	}

	c.JSON(http.StatusOK, stats)
}
