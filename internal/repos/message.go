package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type MessageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, message *types.Message) (*types.Message, error)
  Conversation(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) ([]*types.Message, error)
  MarkRead(ctx context.Context, tx *gorm.DB, receiverID, senderID uuid.UUID) (int64, error)
}

type messageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
  repoLog := baseLog.With("repo", "MessageRepo")
  return &messageRepo{db: db, log: repoLog}
}

func (mr *messageRepo) Create(ctx context.Context, tx *gorm.DB, message *types.Message) (*types.Message, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  if err := transaction.WithContext(ctx).Create(message).Error; err != nil {
    return nil, err
  }
  return message, nil
}

func (mr *messageRepo) Conversation(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) ([]*types.Message, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var results []*types.Message
  if err := transaction.WithContext(ctx).
    Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *messageRepo) MarkRead(ctx context.Context, tx *gorm.DB, receiverID, senderID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  res := transaction.WithContext(ctx).
    Model(&types.Message{}).
    Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
    Update("read", true)
  return res.RowsAffected, res.Error
}
