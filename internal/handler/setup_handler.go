package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"campaign/backend/internal/auth"
	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	minSetupUsername = 4
	minSetupPassword = 6
)

// region --- DTOs ---

// SetupInput creates an administrator account.
type SetupInput struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// SetupStatusResponse reports whether any account exists yet.
type SetupStatusResponse struct {
	HasUsers bool `json:"has_users"`
}

// endregion

// GetSetupStatus godoc
// @Summary      Setup status
// @Tags         setup
// @Produce      json
// @Success      200 {object} SetupStatusResponse
// @Failure      500 {object} ErrorResponse
// @Router       /setup [get]
func (h *Handler) GetSetupStatus(c *gin.Context) {
	n, err := h.users.Count(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SetupStatusResponse{HasUsers: n > 0})
}

// CreateAdmin godoc
// @Summary      Create an administrator
// @Description  Open to anyone while no account exists; afterwards administrators only.
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        input body SetupInput true "Administrator"
// @Success      201 {object} UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /setup [post]
func (h *Handler) CreateAdmin(c *gin.Context) {
	n, err := h.users.Count(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if n > 0 && !auth.HasRole(c, models.RoleAdministrator) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Setup already completed"})
		return
	}

	var input SetupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username := strings.TrimSpace(input.Username)
	if utf8.RuneCountInString(username) < minSetupUsername {
		h.fail(c, &ValidationError{Field: "username", Message: "must be at least 4 characters"})
		return
	}
	if utf8.RuneCountInString(input.Password) < minSetupPassword {
		h.fail(c, &ValidationError{Field: "password", Message: "must be at least 6 characters"})
		return
	}

	user, err := h.createUser(c, username, input.Password, models.RoleAdministrator)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(*user))
}
