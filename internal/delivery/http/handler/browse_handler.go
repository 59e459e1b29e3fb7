package handler

import (
	"net/http"

	"github.com/gdugdh24/cofound-backend/internal/usecase/directory"
	"github.com/gin-gonic/gin"
)

type BrowseHandler struct {
	directoryUseCase *directory.DirectoryUseCase
}

func NewBrowseHandler(directoryUseCase *directory.DirectoryUseCase) *BrowseHandler {
	return &BrowseHandler{
		directoryUseCase: directoryUseCase,
	}
}

// Browse handles GET /browse
// @Summary Browse profiles and teams
// @Tags browse
// @Security BearerAuth
// @Produce json
// @Param page query string false "browse or competition"
// @Param audience query string false "competition, startup or both"
// @Param team_type query string false "startup or competition"
// @Param q query string false "Search text"
// @Success 200 {object} directory.BrowseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /browse [get]
func (h *BrowseHandler) Browse(c *gin.Context) {
	var req directory.BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid query parameters",
		})
		return
	}

	resp, err := h.directoryUseCase.Browse(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to load directory")
		return
	}

	c.JSON(http.StatusOK, resp)
}
