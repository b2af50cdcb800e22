package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type PaymentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error)
  GetByBookingID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Payment, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uuid.UUID, status string) error
}

type paymentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
  repoLog := baseLog.With("repo", "PaymentRepo")
  return &paymentRepo{db: db, log: repoLog}
}

func (pr *paymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Create(payment).Error; err != nil {
    return nil, err
  }
  return payment, nil
}

func (pr *paymentRepo) GetByBookingID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Payment, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.Payment
  err := transaction.WithContext(ctx).Where("booking_id = ?", bookingID).First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *paymentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uuid.UUID, status string) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Payment{}).
    Where("id = ?", paymentID).
    Update("status", status).Error
}
