package api

import (
	"errors"
	"fmt"
	"net/http"

	"planner/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest carries optional profile changes; omitted fields are
// left unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsActive *bool   `json:"isActive"`
}

// GetProfile returns the authenticated user's own record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ListUsers returns every registered account.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateProfile applies partial changes to the authenticated user's record.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.UserUpdate{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// DeleteAccount removes the authenticated user's own record.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete account")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
