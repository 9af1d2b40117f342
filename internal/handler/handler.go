package handler

import (
	"time"

	"campaign/backend/internal/auth"
	"campaign/backend/internal/hub"
	"campaign/backend/internal/password"
	"campaign/backend/internal/repository"
	"campaign/backend/pkg/jwt"

	"go.uber.org/zap"
)

const defaultKeepAlive = 25 * time.Second

// Deps are the collaborators a Handler forwards to.
type Deps struct {
	Users         repository.UserRepository
	Teams         repository.TeamRepository
	Registrations repository.RegistrationRepository
	Sessions      *jwt.Manager
	Hasher        password.Hasher
	Hub           *hub.Hub
	Cookie        auth.Cookie
	// TeamPresets are offered on the public form before stored team names.
	TeamPresets []string
	Logger      *zap.Logger
}

// Handler serves the HTTP API. It holds no per-request state.
type Handler struct {
	users         repository.UserRepository
	teams         repository.TeamRepository
	registrations repository.RegistrationRepository
	sessions      *jwt.Manager
	hasher        password.Hasher
	hub           *hub.Hub
	cookie        auth.Cookie
	presets       []string
	logger        *zap.Logger

	keepAlive time.Duration
}

// New builds a Handler from its dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := d.Hub
	if h == nil {
		h = hub.NewHub()
	}
	hasher := d.Hasher
	if hasher == nil {
		hasher = password.BcryptHasher{}
	}
	return &Handler{
		users:         d.Users,
		teams:         d.Teams,
		registrations: d.Registrations,
		sessions:      d.Sessions,
		hasher:        hasher,
		hub:           h,
		cookie:        d.Cookie,
		presets:       d.TeamPresets,
		logger:        logger,
		keepAlive:     defaultKeepAlive,
	}
}
