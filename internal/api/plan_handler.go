package api

import (
	"errors"
	"fmt"
	"net/http"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// UpdatePlanRequest carries optional plan changes; omitted fields are left
// unchanged.
type UpdatePlanRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// PlanDetailResponse is the GET /plans/:planId payload.
type PlanDetailResponse struct {
	Plan        *domain.TrainingPlan    `json:"plan"`
	Events      []domain.Event          `json:"events"`
	Preferences *domain.PlanPreferences `json:"preferences,omitempty"`
}

// ListPlans returns all plans owned by the caller.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan returns a plan together with its events and generation preferences.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	detail, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.respondPlanError(c, err, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, PlanDetailResponse{
		Plan:        detail.Plan,
		Events:      detail.Events,
		Preferences: detail.Preferences,
	})
}

// UpdatePlan applies partial changes to a plan owned by the caller.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	update := service.PlanUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.PlanStatus(*req.Status)
		update.Status = &status
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, update)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlanStatus) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			h.respondPlanError(c, err, "Failed to update plan")
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan and its generated events and preferences.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		h.respondPlanError(c, err, "Failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) respondPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
