package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campaign/backend/internal/auth"
	"campaign/backend/internal/hub"
	"campaign/backend/internal/models"
	"campaign/backend/internal/password"
	"campaign/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	handler  *Handler
	users    *fakeUsers
	teams    *fakeTeams
	regs     *fakeRegistrations
	sessions *jwt.Manager
	hub      *hub.Hub
	hasher   password.Hasher
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	sessions, err := jwt.New("handler-test-secret")
	require.NoError(t, err)

	e := &testEnv{
		users:    newFakeUsers(),
		teams:    &fakeTeams{},
		regs:     newFakeRegistrations(),
		sessions: sessions,
		hub:      hub.NewHub(),
		hasher:   password.BcryptHasher{Cost: bcrypt.MinCost},
	}
	e.handler = New(Deps{
		Users:         e.users,
		Teams:         e.teams,
		Registrations: e.regs,
		Sessions:      sessions,
		Hasher:        e.hasher,
		Hub:           e.hub,
		Cookie:        auth.Cookie{Name: "token", TTL: 24 * time.Hour},
		TeamPresets:   []string{"Cá Kiếm", "Minato"},
	})
	e.router = NewRouter(e.handler, RouterOptions{})
	return e
}

func (e *testEnv) seedUser(t *testing.T, username, pw string, role models.Role) models.User {
	t.Helper()
	hash, err := e.hasher.Hash(pw)
	require.NoError(t, err)
	u := models.User{Username: username, Password: hash, Role: role}
	require.NoError(t, e.users.Create(context.Background(), &u))
	return u
}

func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func (e *testEnv) login(t *testing.T, username, pw string) *http.Cookie {
	t.Helper()
	w := e.do(http.MethodPost, "/api/login", gin.H{"username": username, "password": pw})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	c := sessionCookie(w)
	require.NotNil(t, c)
	return c
}

func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	e.seedUser(t, "admin", "admin-pass", models.RoleAdministrator)
	return e.login(t, "admin", "admin-pass")
}

func (e *testEnv) operatorCookie(t *testing.T) *http.Cookie {
	t.Helper()
	e.seedUser(t, "operator", "op-pass", models.RoleOperator)
	return e.login(t, "operator", "op-pass")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
