package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

type MessageHandler struct {
  log            *logger.Logger
  messageService services.MessageService
}

func NewMessageHandler(log *logger.Logger, messageService services.MessageService) *MessageHandler {
  return &MessageHandler{
    log:            log.With("handler", "MessageHandler"),
    messageService: messageService,
  }
}

type sendMessageRequest struct {
  SenderID   string `json:"senderId"`
  ReceiverID string `json:"receiverId"`
  Content    string `json:"content"`
}

// POST /messages/send
func (h *MessageHandler) Send(c *gin.Context) {
  var req sendMessageRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  senderID, err := uuid.Parse(req.SenderID)
  if err != nil {
    RespondError(c, apierr.Validation("senderId must be a valid id"))
    return
  }
  receiverID, err := uuid.Parse(req.ReceiverID)
  if err != nil {
    RespondError(c, apierr.Validation("receiverId must be a valid id"))
    return
  }
  message, err := h.messageService.SendMessage(c.Request.Context(), services.SendMessageInput{
    SenderID:   senderID,
    ReceiverID: receiverID,
    Content:    req.Content,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "message sent", message)
}

// GET /messages/conversation/:userA/:userB
func (h *MessageHandler) Conversation(c *gin.Context) {
  userA, err := uuid.Parse(c.Param("userA"))
  if err != nil {
    RespondError(c, apierr.Validation("userA must be a valid id"))
    return
  }
  userB, err := uuid.Parse(c.Param("userB"))
  if err != nil {
    RespondError(c, apierr.Validation("userB must be a valid id"))
    return
  }
  messages, err := h.messageService.GetConversation(c.Request.Context(), userA, userB)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "conversation fetched", messages)
}

type markReadRequest struct {
  ReceiverID string `json:"receiverId"`
  SenderID   string `json:"senderId"`
}

// PUT /messages/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
  var req markReadRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  receiverID, err := uuid.Parse(req.ReceiverID)
  if err != nil {
    RespondError(c, apierr.Validation("receiverId must be a valid id"))
    return
  }
  senderID, err := uuid.Parse(req.SenderID)
  if err != nil {
    RespondError(c, apierr.Validation("senderId must be a valid id"))
    return
  }
  updated, err := h.messageService.MarkConversationRead(c.Request.Context(), receiverID, senderID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "conversation marked read", gin.H{"updated": updated})
}
