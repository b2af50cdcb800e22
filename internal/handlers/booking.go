package handlers

import (
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

type BookingHandler struct {
  log            *logger.Logger
  bookingService services.BookingService
}

func NewBookingHandler(log *logger.Logger, bookingService services.BookingService) *BookingHandler {
  return &BookingHandler{
    log:            log.With("handler", "BookingHandler"),
    bookingService: bookingService,
  }
}

type createBookingRequest struct {
  TouristID      string `json:"touristId"`
  EventID        string `json:"eventId"`
  BookingDate    string `json:"bookingDate"`
  NumberOfPeople int    `json:"numberOfPeople"`
}

// POST /bookings/create
func (h *BookingHandler) Create(c *gin.Context) {
  var req createBookingRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  touristID, err := uuid.Parse(req.TouristID)
  if err != nil {
    RespondError(c, apierr.Validation("touristId must be a valid id"))
    return
  }
  eventID, err := uuid.Parse(req.EventID)
  if err != nil {
    RespondError(c, apierr.Validation("eventId must be a valid id"))
    return
  }
  bookingDate := time.Now()
  if req.BookingDate != "" {
    parsed, pErr := time.Parse(time.RFC3339, req.BookingDate)
    if pErr != nil {
      RespondError(c, apierr.Validation("bookingDate must be RFC3339"))
      return
    }
    bookingDate = parsed
  }
  booking, err := h.bookingService.CreateBooking(c.Request.Context(), services.CreateBookingInput{
    TouristID:      touristID,
    EventID:        eventID,
    BookingDate:    bookingDate,
    NumberOfPeople: req.NumberOfPeople,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "booking created", booking)
}

// GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "booking fetched", booking)
}

// GET /bookings/tourist/:touristId
func (h *BookingHandler) ByTourist(c *gin.Context) {
  touristID, err := uuid.Parse(c.Param("touristId"))
  if err != nil {
    RespondError(c, apierr.Validation("touristId must be a valid id"))
    return
  }
  bookings, err := h.bookingService.ListByTourist(c.Request.Context(), touristID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "bookings fetched", bookings)
}

// GET /bookings/guide/:guideId
func (h *BookingHandler) ByGuide(c *gin.Context) {
  guideID, err := uuid.Parse(c.Param("guideId"))
  if err != nil {
    RespondError(c, apierr.Validation("guideId must be a valid id"))
    return
  }
  bookings, err := h.bookingService.ListByGuide(c.Request.Context(), guideID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "bookings fetched", bookings)
}

type transitionBookingRequest struct {
  Status string `json:"status"`
}

// PUT /bookings/status/:id
func (h *BookingHandler) Transition(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  var req transitionBookingRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  booking, err := h.bookingService.TransitionBooking(c.Request.Context(), id, req.Status)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "booking updated", booking)
}

type createPaymentRequest struct {
  BookingID string `json:"bookingId"`
  Method    string `json:"method"`
}

// POST /payments/create
func (h *BookingHandler) CreatePayment(c *gin.Context) {
  var req createPaymentRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  bookingID, err := uuid.Parse(req.BookingID)
  if err != nil {
    RespondError(c, apierr.Validation("bookingId must be a valid id"))
    return
  }
  payment, err := h.bookingService.CreatePayment(c.Request.Context(), services.CreatePaymentInput{
    BookingID: bookingID,
    Method:    req.Method,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "payment recorded", payment)
}
