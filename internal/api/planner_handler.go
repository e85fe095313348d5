package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlannerHandler holds the planner service dependency.
type PlannerHandler struct {
	plannerService service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// CreateTrainingPlanRequest is the wire form of a plan-generation request.
// Dates are date-only strings, interpreted in the server's local zone.
type CreateTrainingPlanRequest struct {
	StartDate              string   `json:"start_date" binding:"required"`
	EndDate                string   `json:"end_date" binding:"required"`
	FrequencyPerWeek       int      `json:"frequency_per_week" binding:"required,min=1"`
	PreferredTimeOfDay     string   `json:"preferred_time_of_day" binding:"required"`
	WorkoutDurationMinutes int      `json:"workout_duration_minutes" binding:"required,min=1"`
	PaddingBeforeMinutes   int      `json:"padding_before_minutes" binding:"min=0"`
	PaddingAfterMinutes    int      `json:"padding_after_minutes" binding:"min=0"`
	WorkoutTypes           []string `json:"workout_types" binding:"required,min=1"`
	DifficultyLevel        string   `json:"difficulty_level" binding:"required"`
	DaysOfWeek             []string `json:"days_of_week"`
}

// CreateTrainingPlanResponse is the 201 payload of a successful generation.
type CreateTrainingPlanResponse struct {
	Message     string               `json:"message"`
	Plan        *domain.TrainingPlan `json:"plan"`
	Events      []domain.Event       `json:"events"`
	IgnoredDays []string             `json:"ignored_days,omitempty"`
}

const planDateLayout = "2006-01-02"

// CreateTrainingPlan generates a training plan and its calendar events for
// the caller.
func (h *PlannerHandler) CreateTrainingPlan(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req CreateTrainingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	startDate, err := time.ParseInLocation(planDateLayout, req.StartDate, time.Local)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.ParseInLocation(planDateLayout, req.EndDate, time.Local)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	result, err := h.plannerService.GeneratePlan(c.Request.Context(), userID, service.PlanRequest{
		StartDate:       startDate,
		EndDate:         endDate,
		Frequency:       req.FrequencyPerWeek,
		TimeOfDay:       req.PreferredTimeOfDay,
		DurationMinutes: req.WorkoutDurationMinutes,
		PrepMinutes:     req.PaddingBeforeMinutes,
		CooldownMinutes: req.PaddingAfterMinutes,
		WorkoutTypes:    req.WorkoutTypes,
		DifficultyLevel: req.DifficultyLevel,
		DaysOfWeek:      req.DaysOfWeek,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlanRequest) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Plan generation failed")
		}
		return
	}

	c.JSON(http.StatusCreated, CreateTrainingPlanResponse{
		Message:     result.Message,
		Plan:        result.Plan,
		Events:      result.Events,
		IgnoredDays: result.IgnoredDays,
	})
}
