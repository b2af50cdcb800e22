package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

type GuideHandler struct {
  log           *logger.Logger
  guideService  services.GuideService
  reviewService services.ReviewService
}

func NewGuideHandler(log *logger.Logger, guideService services.GuideService, reviewService services.ReviewService) *GuideHandler {
  return &GuideHandler{
    log:           log.With("handler", "GuideHandler"),
    guideService:  guideService,
    reviewService: reviewService,
  }
}

type createGuideRequest struct {
  UserID       string                 `json:"userId"`
  Bio          string                 `json:"bio"`
  Languages    []string               `json:"languages"`
  PricePerHour float64                `json:"pricePerHour"`
  Availability map[string]interface{} `json:"availability"`
}

// POST /guides/create
func (h *GuideHandler) Create(c *gin.Context) {
  var req createGuideRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    RespondError(c, apierr.Validation("userId must be a valid id"))
    return
  }
  guide, err := h.guideService.CreateGuide(c.Request.Context(), services.CreateGuideInput{
    UserID:       userID,
    Bio:          req.Bio,
    Languages:    req.Languages,
    PricePerHour: req.PricePerHour,
    Availability: req.Availability,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "guide profile created", guide)
}

// GET /guides/all
func (h *GuideHandler) All(c *gin.Context) {
  guides, err := h.guideService.ListGuides(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "guides fetched", guides)
}

// GET /guides/:id
func (h *GuideHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  guide, err := h.guideService.GetGuide(c.Request.Context(), id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "guide fetched", guide)
}

type updateGuideRequest struct {
  Bio          *string                `json:"bio"`
  Languages    []string               `json:"languages"`
  PricePerHour *float64               `json:"pricePerHour"`
  Availability map[string]interface{} `json:"availability"`
}

// PUT /guides/update/:id
func (h *GuideHandler) Update(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  var req updateGuideRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  guide, err := h.guideService.UpdateGuide(c.Request.Context(), id, services.UpdateGuideInput{
    Bio:          req.Bio,
    Languages:    req.Languages,
    PricePerHour: req.PricePerHour,
    Availability: req.Availability,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "guide updated", guide)
}

// GET /guides/reviews/:id
func (h *GuideHandler) Reviews(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  reviews, err := h.reviewService.ListByGuide(c.Request.Context(), id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "reviews fetched", reviews)
}
