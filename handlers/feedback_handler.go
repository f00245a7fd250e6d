package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/eventpulse/feedback-backend/errors"
	"github.com/eventpulse/feedback-backend/internal/store"
	"github.com/eventpulse/feedback-backend/logger"
	"github.com/eventpulse/feedback-backend/services"
	"github.com/eventpulse/feedback-backend/types"
)

var feedbackSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feedback_submissions_total",
	Help: "Total number of accepted feedback submissions",
}, []string{"division"})

// FeedbackHandler serves the feedback CRUD endpoints: the public submission
// form posts new entries, the admin dashboard lists, inspects, updates and
// deletes them.
type FeedbackHandler struct {
	feedbackStore store.FeedbackStore
	emailService  *services.EmailService
}

// NewFeedbackHandler creates a new FeedbackHandler. emailService may be nil
// when admin notifications are not configured.
func NewFeedbackHandler(feedbackStore store.FeedbackStore, emailService *services.EmailService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackStore: feedbackStore,
		emailService:  emailService,
	}
}

// CreateFeedbackHandler godoc
// @Summary      Submit feedback
// @Description  Submit event feedback from the public form
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      types.FeedbackCreate  true  "Feedback payload"
// @Success      201   {object}  types.DataResponse
// @Failure      400   {object}  types.ValidationErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       / [post]
func (h *FeedbackHandler) CreateFeedbackHandler(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	created, err := h.feedbackStore.Create(c.Request.Context(), req.Record())
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	feedbackSubmissions.WithLabelValues(string(created.Division)).Inc()
	logger.GetLogger().Infow("Feedback submitted",
		"feedback_id", created.ID,
		"event", created.EventName,
		"division", created.Division,
		"rating", created.Rating,
		"submitter", logger.MaskEmail(created.Email))

	// Notify the admin mailbox without holding up the response
	if h.emailService != nil && h.emailService.Enabled() {
		fb := *created
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.emailService.SendFeedbackNotification(ctx, &fb); err != nil {
				logger.GetLogger().Errorw("Feedback notification failed", "error", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, types.DataResponse{
		Message: "Feedback created successfully",
		Data:    created,
	})
}

// ListFeedbackHandler godoc
// @Summary      List feedback
// @Description  List every feedback entry, most recent first
// @Tags         feedback
// @Produce      json
// @Success      200  {object}  types.DataResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       / [get]
func (h *FeedbackHandler) ListFeedbackHandler(c *gin.Context) {
	feedbacks, err := h.feedbackStore.List(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Message: "Feedbacks retrieved successfully",
		Data:    feedbacks,
	})
}

// GetFeedbackHandler godoc
// @Summary      Get feedback by ID
// @Tags         feedback
// @Produce      json
// @Param        id   path      int  true  "Feedback ID"
// @Success      200  {object}  types.DataResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.MessageResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /{id} [get]
func (h *FeedbackHandler) GetFeedbackHandler(c *gin.Context) {
	id, ok := parseFeedbackID(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackStore.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Plain not-found body, not the generic error envelope
			c.JSON(http.StatusNotFound, types.MessageResponse{
				Message: "Feedback not found",
			})
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Message: "Feedback retrieved successfully",
		Data:    feedback,
	})
}

// UpdateFeedbackHandler godoc
// @Summary      Update feedback
// @Description  Replace every mutable field of a feedback entry
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Feedback ID"
// @Param        body  body      types.FeedbackUpdate  true  "Feedback payload"
// @Success      200   {object}  types.DataResponse
// @Failure      400   {object}  types.ValidationErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /{id} [put]
func (h *FeedbackHandler) UpdateFeedbackHandler(c *gin.Context) {
	id, ok := parseFeedbackID(c)
	if !ok {
		return
	}

	var req types.FeedbackUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	updated, err := h.feedbackStore.Update(c.Request.Context(), id, req.Record())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Feedback", id))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Message: "Feedback updated successfully",
		Data:    updated,
	})
}

// DeleteFeedbackHandler godoc
// @Summary      Delete feedback
// @Description  Permanently delete a feedback entry
// @Tags         feedback
// @Produce      json
// @Param        id   path      int  true  "Feedback ID"
// @Success      200  {object}  types.MessageResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /{id} [delete]
func (h *FeedbackHandler) DeleteFeedbackHandler(c *gin.Context) {
	id, ok := parseFeedbackID(c)
	if !ok {
		return
	}

	if err := h.feedbackStore.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Feedback", id))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{
		Message: "Feedback deleted successfully",
	})
}

// parseFeedbackID parses the :id path parameter. A non-numeric ID is a client
// error, reported through the generic 400 envelope rather than a panic or a
// driver error.
func parseFeedbackID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid feedback ID", c.Param("id")))
		return 0, false
	}
	return id, true
}

// bindJSONOrError binds the JSON request body and attaches the field-level
// validation error set when binding fails. Returns true if binding succeeded.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.InvalidFields(fieldErrorsFrom(err)))
		return false
	}
	return true
}
