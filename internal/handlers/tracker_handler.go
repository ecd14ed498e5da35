package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finown/internal/services"
)

// TrackerHandler handles completion tracker requests.
type TrackerHandler struct {
	trackerService services.TrackerServicer
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerService services.TrackerServicer) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// ToggleResponse represents the new value of a toggled tracker key.
type ToggleResponse struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// GetTracker returns the user's completion flags
// @Summary     Get the tracker
// @Description Get all of the user's completion flags keyed by source and month
// @Tags        tracker
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]bool "Tracker"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trackers [get]
func (h *TrackerHandler) GetTracker(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tracker, err := h.trackerService.GetAll(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracker": tracker})
}

// Toggle flips one completion flag
// @Summary     Toggle a tracker key
// @Description Flip the completion flag for a key. A key with no stored entry counts as false, so the first toggle sets it to true.
// @Tags        tracker
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key path string true "Tracker key ({sourceId}_{month}_{year}, zero-based month)"
// @Success     200 {object} ToggleResponse "New value"
// @Failure     400 {object} ErrorResponse "Invalid key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trackers/{key}/toggle [put]
func (h *TrackerHandler) Toggle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	key := c.Param("key")
	value, err := h.trackerService.Toggle(userID, key)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{Key: key, Value: value})
}
