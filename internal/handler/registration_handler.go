package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"campaign/backend/internal/hub"
	"campaign/backend/internal/models"
	"campaign/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// RegistrationInput is the public form payload. inGameName is accepted as an
// alias of in_game_name.
type RegistrationInput struct {
	Team          string `json:"team" example:"Cá Kiếm"`
	InGameName    string `json:"in_game_name" example:"PlayerOne123"`
	InGameNameAlt string `json:"inGameName" swaggerignore:"true"`
	Tanks         string `json:"tanks" example:"IS-7, T-62A"`
}

// fields trims the input and checks that every field is present.
func (in RegistrationInput) fields() (repository.RegistrationFields, error) {
	name := in.InGameName
	if strings.TrimSpace(name) == "" {
		name = in.InGameNameAlt
	}
	f := repository.RegistrationFields{
		Team:       strings.TrimSpace(in.Team),
		InGameName: strings.TrimSpace(name),
		Tanks:      strings.TrimSpace(in.Tanks),
	}
	switch {
	case f.Team == "":
		return f, required("team")
	case f.InGameName == "":
		return f, required("in_game_name")
	case f.Tanks == "":
		return f, required("tanks")
	}
	return f, nil
}

// RegistrationResponse is one submission as returned by the API.
type RegistrationResponse struct {
	ID         uint      `json:"id" example:"1"`
	Team       string    `json:"team" example:"Cá Kiếm"`
	InGameName string    `json:"in_game_name" example:"PlayerOne123"`
	Tanks      string    `json:"tanks" example:"IS-7"`
	CreatedAt  time.Time `json:"created_at"`
	// TeamKnown is set in listings: whether Team matches a current team name.
	TeamKnown *bool `json:"team_known,omitempty"`
}

func newRegistrationResponse(r models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:         r.ID,
		Team:       r.Team,
		InGameName: r.InGameName,
		Tanks:      r.Tanks,
		CreatedAt:  r.CreatedAt,
	}
}

// endregion

// CreateRegistration godoc
// @Summary      Submit a registration
// @Description  Public form endpoint. All three fields must be non-empty.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        input body RegistrationInput true "Registration"
// @Success      201  {object}  RegistrationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /registrations [post]
func (h *Handler) CreateRegistration(c *gin.Context) {
	var input RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := input.fields()
	if err != nil {
		h.fail(c, err)
		return
	}

	reg := models.Registration{Team: f.Team, InGameName: f.InGameName, Tanks: f.Tanks}
	if err := h.registrations.Create(c.Request.Context(), &reg); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("registrations", hub.TypeInsert, reg.ID)
	c.JSON(http.StatusCreated, newRegistrationResponse(reg))
}

// ListRegistrations godoc
// @Summary      List registrations
// @Description  Newest first. Passing page or limit returns a RegistrationPage envelope instead of an array.
// @Tags         registrations
// @Produce      json
// @Security     CookieAuth
// @Param        q     query string false "Case-insensitive search over team, in-game name and tanks"
// @Param        sort  query string false "Set to 'team' to group by team"
// @Param        page  query int    false "Page number"
// @Param        limit query int    false "Items per page"
// @Success      200 {array} RegistrationResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /registrations [get]
func (h *Handler) ListRegistrations(c *gin.Context) {
	opts := repository.ListOptions{
		Query:      c.Query("q"),
		SortByTeam: c.Query("sort") == "team",
	}

	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")
	paged := hasPage || hasLimit
	if paged {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 200 {
			limit = 20
		}
		opts.Page = repository.Page{Number: page, Limit: limit}
	}

	regs, total, err := h.registrations.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}

	known := h.knownTeams(c)
	resp := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		item := newRegistrationResponse(r)
		if known != nil {
			ok := known[r.Team]
			item.TeamKnown = &ok
		}
		resp = append(resp, item)
	}

	if paged {
		c.JSON(http.StatusOK, newRegistrationPage(resp, total, opts.Page))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// knownTeams returns the set of current team names, or nil if it could not
// be loaded. Listings still work without it.
func (h *Handler) knownTeams(c *gin.Context) map[string]bool {
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		h.logger.Warn("could not load teams for registration listing", zap.Error(err))
		return nil
	}
	known := make(map[string]bool, len(teams))
	for _, t := range teams {
		known[t.Name] = true
	}
	return known
}

// UpdateRegistration godoc
// @Summary      Edit a registration
// @Description  Overwrites team, in-game name and tanks. Last write wins.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path int               true "Registration ID"
// @Param        input body RegistrationInput true "Registration"
// @Success      200  {object}  RegistrationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /registrations/{id} [put]
func (h *Handler) UpdateRegistration(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var input RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := input.fields()
	if err != nil {
		h.fail(c, err)
		return
	}

	reg, err := h.registrations.Update(c.Request.Context(), id, f)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("registrations", hub.TypeUpdate, id)
	c.JSON(http.StatusOK, newRegistrationResponse(*reg))
}

// DeleteRegistration godoc
// @Summary      Delete a registration
// @Description  Administrators only. Deleting an id that no longer exists also answers 200.
// @Tags         registrations
// @Security     CookieAuth
// @Param        id path int true "Registration ID"
// @Produce      json
// @Success      200 {object} map[string]string "{"message": "Registration deleted"}"
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Only administrators can delete registrations"
// @Failure      500 {object} ErrorResponse
// @Router       /registrations/{id} [delete]
func (h *Handler) DeleteRegistration(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.registrations.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish("registrations", hub.TypeDelete, id)
	c.JSON(http.StatusOK, gin.H{"message": "Registration deleted"})
}
