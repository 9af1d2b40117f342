package handler

import (
	"context"
	"net/http"
	"testing"

	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CreateAndList(t *testing.T) {
	e := newEnv(t)
	admin := e.adminCookie(t)

	w := e.do(http.MethodPost, "/api/users", gin.H{"username": " op1 ", "password": "pw"}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[UserResponse](t, w)
	assert.Equal(t, "op1", created.Username)
	assert.Equal(t, models.RoleOperator, created.Role, "role defaults to operator")

	stored, err := e.users.FindByUsername(context.Background(), "op1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.Password)
	assert.True(t, e.hasher.Verify(stored.Password, "pw"))

	w = e.do(http.MethodPost, "/api/users", gin.H{"username": "op1", "password": "pw"}, admin)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "already exists")

	w = e.do(http.MethodPost, "/api/users", gin.H{"username": "op2", "password": "pw", "role": "root"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	users := decode[[]UserResponse](t, w)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "op1", users[1].Username)
}

func TestUsers_UpdateAndDelete(t *testing.T) {
	e := newEnv(t)
	admin := e.adminCookie(t)
	op := e.seedUser(t, "op1", "old-pass", models.RoleOperator)

	w := e.do(http.MethodPut, "/api/users/"+itoa(op.ID)+"/role", gin.H{"role": "Quản trị"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodPut, "/api/users/"+itoa(op.ID)+"/password", gin.H{"password": "new-pass"}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	loggedIn := e.do(http.MethodPost, "/api/login", gin.H{"username": "op1", "password": "new-pass"})
	require.Equal(t, http.StatusOK, loggedIn.Code)
	assert.Equal(t, string(models.RoleAdministrator), decode[LoginResponse](t, loggedIn).Role)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/api/users/"+itoa(op.ID)+"/role", gin.H{"role": "boss"}, admin).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPut, "/api/users/999/role", gin.H{"role": "Điều hành"}, admin).Code)

	assert.Equal(t, http.StatusOK, e.do(http.MethodDelete, "/api/users/"+itoa(op.ID), nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/api/users/"+itoa(op.ID), nil, admin).Code)
}

func TestUsers_AdministratorOnly(t *testing.T) {
	e := newEnv(t)
	operator := e.operatorCookie(t)

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/users", nil, operator).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/api/users", gin.H{"username": "x", "password": "y"}, operator).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/users", nil).Code)
}
