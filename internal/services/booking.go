package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type CreateBookingInput struct {
  TouristID      uuid.UUID
  EventID        uuid.UUID
  BookingDate    time.Time
  NumberOfPeople int
}

type CreatePaymentInput struct {
  BookingID uuid.UUID
  Method    string
}

type BookingService interface {
  CreateBooking(ctx context.Context, in CreateBookingInput) (*types.Booking, error)
  GetBooking(ctx context.Context, bookingID uuid.UUID) (*types.Booking, error)
  ListByTourist(ctx context.Context, touristID uuid.UUID) ([]*types.Booking, error)
  ListByGuide(ctx context.Context, guideID uuid.UUID) ([]*types.Booking, error)
  TransitionBooking(ctx context.Context, bookingID uuid.UUID, toStatus string) (*types.Booking, error)
  CreatePayment(ctx context.Context, in CreatePaymentInput) (*types.Payment, error)
}

type bookingService struct {
  db          *gorm.DB
  log         *logger.Logger
  bookingRepo repos.BookingRepo
  eventRepo   repos.EventRepo
  userRepo    repos.UserRepo
  paymentRepo repos.PaymentRepo
}

func NewBookingService(db *gorm.DB, baseLog *logger.Logger, bookingRepo repos.BookingRepo, eventRepo repos.EventRepo, userRepo repos.UserRepo, paymentRepo repos.PaymentRepo) BookingService {
  serviceLog := baseLog.With("service", "BookingService")
  return &bookingService{db: db, log: serviceLog, bookingRepo: bookingRepo, eventRepo: eventRepo, userRepo: userRepo, paymentRepo: paymentRepo}
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*types.Booking, error) {
  var details []string
  if in.TouristID == uuid.Nil {
    details = append(details, "touristId is required")
  }
  if in.EventID == uuid.Nil {
    details = append(details, "eventId is required")
  }
  if in.NumberOfPeople <= 0 {
    details = append(details, "numberOfPeople must be a positive integer")
  }
  if in.BookingDate.IsZero() {
    details = append(details, "bookingDate is required")
  }
  if len(details) > 0 {
    return nil, apierr.Validation(details...)
  }

  tourist, err := s.userRepo.GetByID(ctx, nil, in.TouristID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load tourist: %w", err)
  }
  if tourist == nil {
    return nil, apierr.NotFound("tourist")
  }
  event, err := s.eventRepo.GetByID(ctx, nil, in.EventID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load event: %w", err)
  }
  if event == nil {
    return nil, apierr.NotFound("event")
  }
  if in.NumberOfPeople > event.MaxGroupSize {
    return nil, apierr.Validation(fmt.Sprintf("numberOfPeople exceeds the event group size of %d", event.MaxGroupSize))
  }

  booking := &types.Booking{
    ID:             uuid.New(),
    TouristID:      in.TouristID,
    EventID:        event.ID,
    GuideID:        event.GuideID,
    BookingDate:    in.BookingDate,
    NumberOfPeople: in.NumberOfPeople,
    Status:         types.BookingStatusPending,
    TotalPrice:     event.Price * float64(in.NumberOfPeople),
  }
  if _, err := s.bookingRepo.Create(ctx, nil, []*types.Booking{booking}); err != nil {
    return nil, fmt.Errorf("Failed to create booking: %w", err)
  }
  s.log.Info("Created booking", "booking_id", booking.ID, "event_id", event.ID)
  return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*types.Booking, error) {
  booking, err := s.bookingRepo.GetByID(ctx, nil, bookingID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load booking: %w", err)
  }
  if booking == nil {
    return nil, apierr.NotFound("booking")
  }
  return booking, nil
}

func (s *bookingService) ListByTourist(ctx context.Context, touristID uuid.UUID) ([]*types.Booking, error) {
  bookings, err := s.bookingRepo.ListByTourist(ctx, nil, touristID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list tourist bookings: %w", err)
  }
  return bookings, nil
}

func (s *bookingService) ListByGuide(ctx context.Context, guideID uuid.UUID) ([]*types.Booking, error) {
  bookings, err := s.bookingRepo.ListByGuide(ctx, nil, guideID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list guide bookings: %w", err)
  }
  return bookings, nil
}

// Legal transitions: PENDING -> CONFIRMED or CANCELED, CONFIRMED -> COMPLETED
// or CANCELED. Completed and canceled bookings are terminal.
func (s *bookingService) TransitionBooking(ctx context.Context, bookingID uuid.UUID, toStatus string) (*types.Booking, error) {
  toStatus = strings.ToUpper(strings.TrimSpace(toStatus))
  booking, err := s.GetBooking(ctx, bookingID)
  if err != nil {
    return nil, err
  }
  if !transitionAllowed(booking.Status, toStatus) {
    return nil, apierr.Conflict(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, toStatus))
  }
  if err := s.bookingRepo.UpdateStatus(ctx, nil, booking.ID, toStatus); err != nil {
    return nil, fmt.Errorf("Failed to update booking status: %w", err)
  }
  booking.Status = toStatus
  return booking, nil
}

func transitionAllowed(from, to string) bool {
  switch from {
  case types.BookingStatusPending:
    return to == types.BookingStatusConfirmed || to == types.BookingStatusCanceled
  case types.BookingStatusConfirmed:
    return to == types.BookingStatusCompleted || to == types.BookingStatusCanceled
  default:
    return false
  }
}

func (s *bookingService) CreatePayment(ctx context.Context, in CreatePaymentInput) (*types.Payment, error) {
  if strings.TrimSpace(in.Method) == "" {
    return nil, apierr.Validation("method is required")
  }
  booking, err := s.GetBooking(ctx, in.BookingID)
  if err != nil {
    return nil, err
  }
  if booking.Status != types.BookingStatusConfirmed {
    return nil, apierr.Conflict("payments are only accepted for confirmed bookings")
  }
  existing, err := s.paymentRepo.GetByBookingID(ctx, nil, booking.ID)
  if err != nil {
    return nil, fmt.Errorf("Failed to check existing payment: %w", err)
  }
  if existing != nil {
    return nil, apierr.Conflict("booking already has a payment")
  }
  payment := &types.Payment{
    ID:        uuid.New(),
    BookingID: booking.ID,
    Amount:    booking.TotalPrice,
    Method:    strings.TrimSpace(in.Method),
    Status:    types.PaymentStatusPaid,
  }
  if _, err := s.paymentRepo.Create(ctx, nil, payment); err != nil {
    return nil, fmt.Errorf("Failed to create payment: %w", err)
  }
  return payment, nil
}
