package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

type ReviewHandler struct {
  log           *logger.Logger
  reviewService services.ReviewService
}

func NewReviewHandler(log *logger.Logger, reviewService services.ReviewService) *ReviewHandler {
  return &ReviewHandler{
    log:           log.With("handler", "ReviewHandler"),
    reviewService: reviewService,
  }
}

type createReviewRequest struct {
  BookingID string `json:"bookingId"`
  Rating    int    `json:"rating"`
  Comment   string `json:"comment"`
}

// POST /reviews/create
func (h *ReviewHandler) Create(c *gin.Context) {
  var req createReviewRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  bookingID, err := uuid.Parse(req.BookingID)
  if err != nil {
    RespondError(c, apierr.Validation("bookingId must be a valid id"))
    return
  }
  review, err := h.reviewService.CreateReview(c.Request.Context(), services.CreateReviewInput{
    BookingID: bookingID,
    Rating:    req.Rating,
    Comment:   req.Comment,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "review created", review)
}
