package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/auth"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/metrics"
	"feedbackhub/internal/service"
)

// FeedbackHandler serves the feedback add, edit and delete endpoints.
type FeedbackHandler struct {
	svc     service.FeedbackService
	metrics *metrics.Metrics
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(svc service.FeedbackService, m *metrics.Metrics) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, metrics: m}
}

// feedbackID parses the :id path parameter. Anything that is not a positive
// integer names no post.
func feedbackID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, apperrors.ErrFeedbackNotFound
	}
	return uint(id), nil
}

// AddForm godoc
// @Summary Empty feedback form
// @Tags feedback
// @Produce json
// @Param username path string true "Owner username"
// @Success 200 {object} FeedbackRequest
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{username}/feedback/add [get]
func (h *FeedbackHandler) AddForm(c echo.Context) error {
	if err := h.svc.AuthorizeAdd(auth.FromContext(c), c.Param("username")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, FeedbackRequest{})
}

// Add godoc
// @Summary Add feedback
// @Tags feedback
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param username path string true "Owner username"
// @Param request body FeedbackRequest true "Feedback"
// @Success 201 {object} ActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{username}/feedback/add [post]
func (h *FeedbackHandler) Add(c echo.Context) error {
	rc := auth.FromContext(c)
	owner := c.Param("username")
	if err := h.svc.AuthorizeAdd(rc, owner); err != nil {
		return respondError(c, err)
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	post, err := h.svc.Add(c.Request().Context(), rc, owner, service.FeedbackInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.FeedbackOperation("add")

	return c.JSON(http.StatusCreated, ActionResponse{
		Message:  "Feedback added.",
		Redirect: userPath(owner),
		Data:     post,
	})
}

// UpdateForm godoc
// @Summary Edit form pre-filled from the post
// @Tags feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} FeedbackRequest
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /feedback/{id}/update [get]
func (h *FeedbackHandler) UpdateForm(c echo.Context) error {
	id, err := feedbackID(c)
	if err != nil {
		return respondError(c, err)
	}
	post, err := h.svc.Get(c.Request().Context(), auth.FromContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, FeedbackFormFromModel(post))
}

// Update godoc
// @Summary Edit feedback
// @Tags feedback
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Feedback ID"
// @Param request body FeedbackRequest true "Feedback"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /feedback/{id}/update [post]
func (h *FeedbackHandler) Update(c echo.Context) error {
	id, err := feedbackID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	rc := auth.FromContext(c)

	// Ownership is checked before the form is validated
	if _, err := h.svc.Get(ctx, rc, id); err != nil {
		return respondError(c, err)
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	post, err := h.svc.Update(ctx, rc, id, service.FeedbackInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.FeedbackOperation("update")

	return c.JSON(http.StatusOK, ActionResponse{
		Message:  "Feedback updated.",
		Redirect: userPath(post.Username),
		Data:     post,
	})
}

// Delete godoc
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} ActionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /feedback/{id}/delete [post]
func (h *FeedbackHandler) Delete(c echo.Context) error {
	id, err := feedbackID(c)
	if err != nil {
		return respondError(c, err)
	}
	post, err := h.svc.Delete(c.Request().Context(), auth.FromContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.FeedbackOperation("delete")

	return c.JSON(http.StatusOK, ActionResponse{
		Message:  "Feedback deleted.",
		Redirect: userPath(post.Username),
	})
}
