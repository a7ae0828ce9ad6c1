package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VisionHandler serves the computer-vision dashboard pages. The
// detection pipeline runs elsewhere; these endpoints are placeholders
// returning the shapes the frontend renders.
type VisionHandler struct{}

func (h *VisionHandler) GetVisionStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_detections":     127,
		"emergency_detections": 18,
		"detection_counts": gin.H{
			"vehicle":             45,
			"pedestrian":          23,
			"traffic_light":       12,
			"traffic_sign":        8,
			"ambulance":           3,
			"police_car":          5,
			"fire_truck":          2,
			"maintenance_vehicle": 7,
			"accident":            4,
			"fire":                1,
			"smoke":               3,
			"construction":        9,
			"road_closure":        5,
		},
	})
}

// GetVisionDetections ignores the limit query param for now; no
// detection store is wired up and the page renders an empty list.
func (h *VisionHandler) GetVisionDetections(c *gin.Context) {
	c.JSON(http.StatusOK, []gin.H{})
}
