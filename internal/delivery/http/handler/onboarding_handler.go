package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// GetState handles GET /onboarding
// @Summary Get onboarding state
// @Description Current step and draft, rebuilt from the profile when not cached
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} onboarding.StateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding [get]
func (h *OnboardingHandler) GetState(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	state, err := h.onboardingUseCase.GetState(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load onboarding")
		return
	}

	c.JSON(http.StatusOK, state)
}

// UpdateDraft handles PATCH /onboarding/draft
// @Summary Update onboarding draft
// @Description Merge the given fields into the draft without saving the profile
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.OnboardingDraftPatch true "Fields to change"
// @Success 200 {object} onboarding.StateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding/draft [patch]
func (h *OnboardingHandler) UpdateDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var patch domain.OnboardingDraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	state, err := h.onboardingUseCase.UpdateDraft(c.Request.Context(), userID, &patch)
	if err != nil {
		respondError(c, err, "failed to update draft")
		return
	}

	c.JSON(http.StatusOK, state)
}

// Next handles POST /onboarding/next
// @Summary Save and advance
// @Description Applies the optional patch, saves the draft and moves to the next step
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.OnboardingDraftPatch false "Fields of the current step"
// @Success 200 {object} onboarding.StateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding/next [post]
func (h *OnboardingHandler) Next(c *gin.Context) {
	h.navigate(c, onboarding.ActionNext)
}

// Back handles POST /onboarding/back
// @Summary Go back one step
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} onboarding.StateResponse
// @Router /onboarding/back [post]
func (h *OnboardingHandler) Back(c *gin.Context) {
	h.navigate(c, onboarding.ActionBack)
}

// Skip handles POST /onboarding/skip
// @Summary Skip an optional step
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} onboarding.StateResponse
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/skip [post]
func (h *OnboardingHandler) Skip(c *gin.Context) {
	h.navigate(c, onboarding.ActionSkip)
}

func (h *OnboardingHandler) navigate(c *gin.Context, action onboarding.Action) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	// The body is optional; an empty one means no patch.
	var patch *domain.OnboardingDraftPatch
	if action == onboarding.ActionNext && c.Request.ContentLength != 0 {
		var p domain.OnboardingDraftPatch
		if err := c.ShouldBindJSON(&p); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid request body",
			})
			return
		} else if err == nil {
			patch = &p
		}
	}

	state, err := h.onboardingUseCase.Navigate(c.Request.Context(), userID, action, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
