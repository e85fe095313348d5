package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalendarHandler holds the calendar service dependency.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// EventRequest is the payload for creating or replacing a calendar event.
type EventRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	EventType       string    `json:"event_type"`
	WorkoutType     string    `json:"workout_type"`
	DifficultyLevel string    `json:"difficulty_level"`
}

func (r EventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:           r.Title,
		Description:     r.Description,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		EventType:       domain.EventType(r.EventType),
		WorkoutType:     r.WorkoutType,
		DifficultyLevel: r.DifficultyLevel,
	}
}

// CreateEvent adds a manual event to the caller's calendar.
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	event, err := h.calendarService.CreateEvent(c.Request.Context(), userID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidEventTimes) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetEvent returns a single event owned by the caller.
func (h *CalendarHandler) GetEvent(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	event, err := h.calendarService.GetEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		h.respondEventError(c, err, "Failed to load event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// ListEvents returns the caller's events, optionally limited to a time range
// via the ?start= and ?end= RFC3339 query parameters.
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'start' parameter, expected RFC3339 timestamp")
			return
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'end' parameter, expected RFC3339 timestamp")
			return
		}
		end = &t
	}

	events, err := h.calendarService.ListEvents(c.Request.Context(), userID, start, end)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// UpdateEvent replaces the editable fields of an event owned by the caller.
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	event, err := h.calendarService.UpdateEvent(c.Request.Context(), userID, eventID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidEventTimes) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			h.respondEventError(c, err, "Failed to update event")
		}
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event owned by the caller.
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	if err := h.calendarService.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		h.respondEventError(c, err, "Failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CalendarHandler) respondEventError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
