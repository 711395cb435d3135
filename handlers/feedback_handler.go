package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/NomadCrew/feedback-portal/errors"
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/gin-gonic/gin"
)

// FeedbackHandler exposes the feedback lifecycle over HTTP.
type FeedbackHandler struct {
	feedbackService FeedbackServiceInterface
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// bindJSONOrError binds the request body or records a validation error.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload.", err.Error()))
		return false
	}
	return true
}

// parseID reads the :id path parameter or records a validation error.
func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Feedback ID must be an integer.", "id="+raw))
		return 0, false
	}
	return id, true
}

// CreateFeedback godoc
// @Summary      Submit feedback
// @Description  Stores a new feedback record. Rating must be between 1 and 5.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      types.FeedbackCreate  true  "Feedback payload"
// @Success      201   {object}  types.Feedback
// @Failure      422   {object}  types.ErrorResponse "Missing field or rating out of range"
// @Failure      429   {object}  types.ErrorResponse "Too many submissions"
// @Failure      500   {object}  types.ErrorResponse
// @Router       /feedback [post]
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	fb, err := h.feedbackService.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// ListFeedback godoc
// @Summary      List feedback
// @Description  Returns every feedback record, newest first.
// @Tags         feedback
// @Produce      json
// @Success      200  {array}   types.Feedback
// @Failure      500  {object}  types.ErrorResponse
// @Router       /feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	feedbacks, err := h.feedbackService.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}

// GetFeedback godoc
// @Summary      Get feedback
// @Tags         feedback
// @Produce      json
// @Param        id   path      int  true  "Feedback ID"
// @Success      200  {object}  types.Feedback
// @Failure      404  {object}  types.ErrorResponse
// @Failure      422  {object}  types.ErrorResponse "ID is not an integer"
// @Router       /feedback/{id} [get]
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fb, err := h.feedbackService.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, fb)
}

// RespondToFeedback godoc
// @Summary      Respond to feedback
// @Description  Sets the admin response and stamps responded_at. Responding again overwrites both.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Feedback ID"
// @Param        body  body      types.FeedbackRespond  true  "Response payload"
// @Success      200   {object}  types.Feedback
// @Failure      404   {object}  types.ErrorResponse
// @Failure      422   {object}  types.ErrorResponse "Empty response text"
// @Router       /feedback/{id}/respond [post]
func (h *FeedbackHandler) RespondToFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.FeedbackRespond
	if !bindJSONOrError(c, &req) {
		return
	}

	fb, err := h.feedbackService.Respond(c.Request.Context(), id, req.Response)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, fb)
}

// DeleteFeedback godoc
// @Summary      Delete feedback
// @Description  Permanently removes a feedback record.
// @Tags         feedback
// @Param        id   path  int  true  "Feedback ID"
// @Success      204  "No Content"
// @Failure      404  {object}  types.ErrorResponse
// @Failure      422  {object}  types.ErrorResponse "ID is not an integer"
// @Router       /feedback/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.feedbackService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
