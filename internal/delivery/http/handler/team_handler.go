package handler

import (
	"net/http"

	"github.com/gdugdh24/cofound-backend/internal/usecase/team"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamUseCase *team.TeamUseCase
}

func NewTeamHandler(teamUseCase *team.TeamUseCase) *TeamHandler {
	return &TeamHandler{
		teamUseCase: teamUseCase,
	}
}

// CreateTeam handles POST /teams
// @Summary Create a team
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body team.CreateTeamRequest true "Team"
// @Success 201 {object} domain.Team
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req team.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	created, err := h.teamUseCase.CreateTeam(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to create team")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetTeam handles GET /teams/:id
// @Summary Team detail
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} domain.TeamDetail
// @Failure 404 {object} ErrorResponse
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.teamUseCase.GetTeam(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get team")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// DeleteTeam handles DELETE /teams/:id
// @Summary Delete a team
// @Description Only the founder may delete a team
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.teamUseCase.DeleteTeam(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "failed to delete team")
		return
	}

	c.Status(http.StatusNoContent)
}
