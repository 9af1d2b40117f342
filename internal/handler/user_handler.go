package handler

import (
	"net/http"
	"strings"

	"campaign/backend/internal/hub"
	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// CreateUserInput defines the structure for adding a dashboard account.
type CreateUserInput struct {
	Username string      `json:"username" binding:"required" example:"operator1"`
	Password string      `json:"password" binding:"required" example:"password123"`
	Role     models.Role `json:"role" example:"Điều hành"`
}

// RoleInput changes a user's role.
type RoleInput struct {
	Role models.Role `json:"role" binding:"required" example:"Quản trị"`
}

// PasswordInput replaces a user's password.
type PasswordInput struct {
	Password string `json:"password" binding:"required" example:"new-password"`
}

// UserResponse never includes the password hash.
type UserResponse struct {
	ID       uint        `json:"id" example:"1"`
	Username string      `json:"username" example:"admin"`
	Role     models.Role `json:"role" example:"Quản trị"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// endregion

// createUser hashes pw and stores a new account.
func (h *Handler) createUser(c *gin.Context, username, pw string, role models.Role) (*models.User, error) {
	hash, err := h.hasher.Hash(pw)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		return nil, err
	}
	h.hub.Publish("users", hub.TypeInsert, user.ID)
	return &user, nil
}

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200 {array} UserResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary      Add a user
// @Description  Role defaults to Điều hành.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        input body CreateUserInput true "User"
// @Success      201 {object} UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		h.fail(c, required("username"))
		return
	}
	if strings.TrimSpace(input.Password) == "" {
		h.fail(c, required("password"))
		return
	}
	role := input.Role
	if role == "" {
		role = models.RoleOperator
	}
	if !role.Valid() {
		h.fail(c, &ValidationError{Field: "role", Message: "must be Quản trị or Điều hành"})
		return
	}

	user, err := h.createUser(c, username, input.Password, role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(*user))
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path int       true "User ID"
// @Param        input body RoleInput true "Role"
// @Success      200 {object} map[string]string "{"message": "Role updated"}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/{id}/role [put]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Role.Valid() {
		h.fail(c, &ValidationError{Field: "role", Message: "must be Quản trị or Điều hành"})
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), id, input.Role); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("users", hub.TypeUpdate, id)
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// UpdateUserPassword godoc
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path int           true "User ID"
// @Param        input body PasswordInput true "Password"
// @Success      200 {object} map[string]string "{"message": "Password updated"}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/{id}/password [put]
func (h *Handler) UpdateUserPassword(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var input PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Password) == "" {
		h.fail(c, required("password"))
		return
	}

	hash, err := h.hasher.Hash(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := h.users.UpdatePassword(c.Request.Context(), id, hash); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("users", hub.TypeUpdate, id)
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id path int true "User ID"
// @Success      200 {object} map[string]string "{"message": "User deleted"}"
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("users", hub.TypeDelete, id)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
