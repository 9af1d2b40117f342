package handler

import (
	"errors"
	"net/http"
	"strconv"
	"testing"

	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func TestSetup_FirstAdministrator(t *testing.T) {
	e := newEnv(t)

	status := decode[SetupStatusResponse](t, e.do(http.MethodGet, "/api/setup", nil))
	assert.False(t, status.HasUsers)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/setup", gin.H{"username": "abc", "password": "secret1"}).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/setup", gin.H{"username": "admin", "password": "12345"}).Code)

	w := e.do(http.MethodPost, "/api/setup", gin.H{"username": "admin", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.RoleAdministrator, decode[UserResponse](t, w).Role)

	status = decode[SetupStatusResponse](t, e.do(http.MethodGet, "/api/setup", nil))
	assert.True(t, status.HasUsers)

	// closed to the public once an account exists
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/api/setup", gin.H{"username": "intruder", "password": "secret1"}).Code)

	admin := e.login(t, "admin", "secret1")
	assert.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/api/setup", gin.H{"username": "admin", "password": "secret1"}, admin).Code)
	assert.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/setup", gin.H{"username": "admin2", "password": "secret2"}, admin).Code)
}

func TestSetup_OperatorCannotCreateAdministrators(t *testing.T) {
	e := newEnv(t)
	operator := e.operatorCookie(t)

	w := e.do(http.MethodPost, "/api/setup", gin.H{"username": "sneaky", "password": "secret1"}, operator)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetup_StoreFailure(t *testing.T) {
	e := newEnv(t)
	e.users.err = errors.New("timeout")

	w := e.do(http.MethodGet, "/api/setup", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "timeout", decode[ErrorResponse](t, w).Error)
}
