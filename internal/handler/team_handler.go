package handler

import (
	"net/http"
	"strings"
	"time"

	"campaign/backend/internal/hub"
	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// TeamInput defines the structure for creating or renaming a team.
type TeamInput struct {
	Name string `json:"name" example:"Cá Kiếm"`
}

// TeamResponse is a team as returned by the API.
type TeamResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Cá Kiếm"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamOptionsResponse lists the names offered on the public form. Any other
// free text is accepted too.
type TeamOptionsResponse struct {
	Options []string `json:"options"`
}

func newTeamResponse(t models.Team) TeamResponse {
	return TeamResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func (in TeamInput) name() (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", required("name")
	}
	return name, nil
}

// endregion

// GetTeams godoc
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Security     CookieAuth
// @Success      200 {array} TeamResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /teams [get]
func (h *Handler) GetTeams(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, newTeamResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// GetTeamOptions godoc
// @Summary      Team names for the registration form
// @Description  Preset names first, then stored team names, without duplicates.
// @Tags         teams
// @Produce      json
// @Success      200 {object} TeamOptionsResponse
// @Router       /teams/options [get]
func (h *Handler) GetTeamOptions(c *gin.Context) {
	seen := make(map[string]bool)
	options := make([]string, 0, len(h.presets))
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		options = append(options, name)
	}

	for _, p := range h.presets {
		add(p)
	}

	// the form must stay usable when the store is down
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		h.logger.Warn("serving preset team options only", zap.Error(err))
	}
	for _, t := range teams {
		add(t.Name)
	}

	c.JSON(http.StatusOK, TeamOptionsResponse{Options: options})
}

// CreateTeam godoc
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        input body TeamInput true "Team"
// @Success      201 {object} TeamResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /teams [post]
func (h *Handler) CreateTeam(c *gin.Context) {
	var input TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, err := input.name()
	if err != nil {
		h.fail(c, err)
		return
	}

	team := models.Team{Name: name}
	if err := h.teams.Create(c.Request.Context(), &team); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("teams", hub.TypeInsert, team.ID)
	c.JSON(http.StatusCreated, newTeamResponse(team))
}

// UpdateTeam godoc
// @Summary      Rename a team
// @Description  Existing registrations keep the old name.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path int       true "Team ID"
// @Param        input body TeamInput true "Team"
// @Success      200 {object} map[string]string "{"message": "Team updated"}"
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /teams/{id} [put]
func (h *Handler) UpdateTeam(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var input TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, err := input.name()
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.teams.Rename(c.Request.Context(), id, name); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("teams", hub.TypeUpdate, id)
	c.JSON(http.StatusOK, gin.H{"message": "Team updated"})
}

// DeleteTeam godoc
// @Summary      Delete a team
// @Tags         teams
// @Produce      json
// @Security     CookieAuth
// @Param        id path int true "Team ID"
// @Success      200 {object} map[string]string "{"message": "Team deleted"}"
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /teams/{id} [delete]
func (h *Handler) DeleteTeam(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.teams.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("teams", hub.TypeDelete, id)
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}
