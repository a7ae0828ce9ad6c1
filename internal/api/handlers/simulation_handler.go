package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SimulationHandler is a placeholder for the CARLA integration: it
// keeps start/stop bookkeeping in memory so the simulation page has
// something to render, and nothing else.
type SimulationHandler struct {
	mu        sync.Mutex
	running   bool
	sessionID string
	startedAt int64
}

func (h *SimulationHandler) StartSimulation(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		c.JSON(http.StatusConflict, gin.H{"error": "Simulation is already running", "session_id": h.sessionID})
		return
	}

	h.running = true
	h.sessionID = "sim-" + uuid.New().String()
	h.startedAt = time.Now().Unix()

	c.JSON(http.StatusOK, gin.H{
		"status":     "started",
		"session_id": h.sessionID,
		"started_at": h.startedAt,
	})
}

func (h *SimulationHandler) StopSimulation(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		c.JSON(http.StatusOK, gin.H{"status": "stopped"})
		return
	}

	sessionID := h.sessionID
	h.running = false
	h.sessionID = ""
	h.startedAt = 0

	c.JSON(http.StatusOK, gin.H{"status": "stopped", "session_id": sessionID})
}

func (h *SimulationHandler) GetSimulationStatus(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		c.JSON(http.StatusOK, gin.H{"running": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"running":    true,
		"session_id": h.sessionID,
		"started_at": h.startedAt,
	})
}
