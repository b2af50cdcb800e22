package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
)

type Envelope struct {
  Status  bool        `json:"status"`
  Message string      `json:"message"`
  Errors  []string    `json:"errors,omitempty"`
  Data    interface{} `json:"data,omitempty"`
}

func RespondOK(c *gin.Context, message string, data interface{}) {
  c.JSON(http.StatusOK, Envelope{Status: true, Message: message, Data: data})
}

func RespondCreated(c *gin.Context, message string, data interface{}) {
  c.JSON(http.StatusCreated, Envelope{Status: true, Message: message, Data: data})
}

// RespondError maps the error taxonomy onto the HTTP status line, so a
// conflict really is a 409 and a missing entity really is a 404.
func RespondError(c *gin.Context, err error) {
  ae := apierr.From(err)
  status := ae.Status
  if status == 0 {
    status = http.StatusInternalServerError
  }
  msg := ae.Error()
  if status == http.StatusInternalServerError {
    // Internals are logged server-side; the client gets a generic line.
    msg = "something went wrong"
  }
  c.JSON(status, Envelope{Status: false, Message: msg, Errors: ae.Details})
}
