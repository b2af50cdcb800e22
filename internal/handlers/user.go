package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

type UserHandler struct {
  log         *logger.Logger
  userService services.UserService
  authService services.AuthService
  store       storage.Store
}

func NewUserHandler(log *logger.Logger, userService services.UserService, authService services.AuthService, store storage.Store) *UserHandler {
  return &UserHandler{
    log:         log.With("handler", "UserHandler"),
    userService: userService,
    authService: authService,
    store:       store,
  }
}

// POST /users/create
func (h *UserHandler) Create(c *gin.Context) {
  var body struct {
    Name        string `json:"name" form:"name"`
    Email       string `json:"email" form:"email"`
    Password    string `json:"password" form:"password"`
    PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
    Role        string `json:"role" form:"role"`
  }
  if err := c.ShouldBind(&body); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  in := services.CreateUserInput{
    Name:        body.Name,
    Email:       body.Email,
    Password:    body.Password,
    PhoneNumber: body.PhoneNumber,
    Role:        body.Role,
  }
  if fh, err := c.FormFile("profilePicture"); err == nil && fh != nil {
    up, sErr := h.store.Stage(c.Request.Context(), storage.CategoryProfiles, fh)
    if sErr != nil {
      RespondError(c, sErr)
      return
    }
    in.ProfilePicture = up
  }
  user, err := h.userService.CreateUser(c.Request.Context(), in)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "user created", user)
}

// GET /users/alluser
func (h *UserHandler) All(c *gin.Context) {
  users, err := h.userService.ListUsers(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "users fetched", users)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  user, err := h.userService.GetUser(c.Request.Context(), id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "user fetched", user)
}

// PUT /users/update/:id
func (h *UserHandler) Update(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  in := services.UpdateUserInput{
    Name:        formValue(c, "name"),
    Email:       formValue(c, "email"),
    Password:    formValue(c, "password"),
    PhoneNumber: formValue(c, "phoneNumber"),
  }
  if fh, fErr := c.FormFile("profilePicture"); fErr == nil && fh != nil {
    up, sErr := h.store.Stage(c.Request.Context(), storage.CategoryProfiles, fh)
    if sErr != nil {
      RespondError(c, sErr)
      return
    }
    in.ProfilePicture = up
  }
  user, err := h.userService.UpdateUser(c.Request.Context(), id, in)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "user updated", user)
}

// DELETE /users/delete/:id
func (h *UserHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "user deleted", nil)
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
  var body struct {
    Email    string `json:"email" form:"email"`
    Password string `json:"password" form:"password"`
  }
  if err := c.ShouldBind(&body); err != nil {
    RespondError(c, apierr.Validation("request body could not be parsed"))
    return
  }
  user, token, err := h.authService.Login(c.Request.Context(), body.Email, body.Password)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "login successful", gin.H{"user": user, "token": token})
}

// formValue reports a form field only when the client actually sent it, so
// partial updates can distinguish "absent" from "empty".
func formValue(c *gin.Context, key string) *string {
  if v, ok := c.GetPostForm(key); ok {
    return &v
  }
  return nil
}
