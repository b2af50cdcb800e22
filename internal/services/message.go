package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type SendMessageInput struct {
  SenderID   uuid.UUID
  ReceiverID uuid.UUID
  Content    string
}

type MessageService interface {
  SendMessage(ctx context.Context, in SendMessageInput) (*types.Message, error)
  GetConversation(ctx context.Context, userA, userB uuid.UUID) ([]*types.Message, error)
  MarkConversationRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error)
}

type messageService struct {
  db          *gorm.DB
  log         *logger.Logger
  messageRepo repos.MessageRepo
  userRepo    repos.UserRepo
}

func NewMessageService(db *gorm.DB, baseLog *logger.Logger, messageRepo repos.MessageRepo, userRepo repos.UserRepo) MessageService {
  serviceLog := baseLog.With("service", "MessageService")
  return &messageService{db: db, log: serviceLog, messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) SendMessage(ctx context.Context, in SendMessageInput) (*types.Message, error) {
  var details []string
  if in.SenderID == uuid.Nil {
    details = append(details, "senderId is required")
  }
  if in.ReceiverID == uuid.Nil {
    details = append(details, "receiverId is required")
  }
  if strings.TrimSpace(in.Content) == "" {
    details = append(details, "content is required")
  }
  if in.SenderID != uuid.Nil && in.SenderID == in.ReceiverID {
    details = append(details, "sender and receiver must differ")
  }
  if len(details) > 0 {
    return nil, apierr.Validation(details...)
  }

  receiver, err := s.userRepo.GetByID(ctx, nil, in.ReceiverID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load receiver: %w", err)
  }
  if receiver == nil {
    return nil, apierr.NotFound("receiver")
  }

  message := &types.Message{
    ID:         uuid.New(),
    SenderID:   in.SenderID,
    ReceiverID: in.ReceiverID,
    Content:    strings.TrimSpace(in.Content),
  }
  if _, err := s.messageRepo.Create(ctx, nil, message); err != nil {
    return nil, fmt.Errorf("Failed to create message: %w", err)
  }
  return message, nil
}

func (s *messageService) GetConversation(ctx context.Context, userA, userB uuid.UUID) ([]*types.Message, error) {
  messages, err := s.messageRepo.Conversation(ctx, nil, userA, userB)
  if err != nil {
    return nil, fmt.Errorf("Failed to load conversation: %w", err)
  }
  return messages, nil
}

func (s *messageService) MarkConversationRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error) {
  updated, err := s.messageRepo.MarkRead(ctx, nil, receiverID, senderID)
  if err != nil {
    return 0, fmt.Errorf("Failed to mark conversation read: %w", err)
  }
  return updated, nil
}
