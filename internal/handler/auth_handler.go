package handler

import (
	"errors"
	"net/http"
	"strings"

	"campaign/backend/internal/auth"
	"campaign/backend/internal/repository"
	"campaign/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse is returned after a successful login. The token itself is
// only sent as a cookie.
type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Role    string `json:"role" example:"Quản trị"`
}

// MeResponse wraps the current session identity.
type MeResponse struct {
	User jwt.Identity `json:"user"`
}

// endregion

// Login godoc
// @Summary      Log in
// @Description  Verifies username and password and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), strings.TrimSpace(input.Username))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.fail(c, err)
		return
	}
	if user == nil || !h.hasher.Verify(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, _, err := h.sessions.Issue(jwt.Identity{ID: user.ID, Username: user.Username, Role: string(user.Role)})
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	auth.SetSessionCookie(c, h.cookie, token)
	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Role: string(user.Role)})
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie. Always succeeds.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "Logged out"}"
// @Router       /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.cookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe godoc
// @Summary      Get current session
// @Description  Returns the identity carried by the session cookie.
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  ErrorResponse "No session"
// @Failure      403  {object}  ErrorResponse "Invalid or expired session"
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, MeResponse{User: *id})
}
