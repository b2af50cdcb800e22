package handlers

import (
  "strconv"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

type EventHandler struct {
  log          *logger.Logger
  eventService services.EventService
  store        storage.Store
}

func NewEventHandler(log *logger.Logger, eventService services.EventService, store storage.Store) *EventHandler {
  return &EventHandler{
    log:          log.With("handler", "EventHandler"),
    eventService: eventService,
    store:        store,
  }
}

// POST /events/create (multipart, field "eventImages")
func (h *EventHandler) Create(c *gin.Context) {
  form, err := c.MultipartForm()
  if err != nil {
    RespondError(c, apierr.Validation("multipart form could not be parsed"))
    return
  }
  files := form.File["eventImages"]
  if len(files) > maxUploadFiles {
    RespondError(c, apierr.Validation("at most 20 event images are allowed"))
    return
  }
  uploads, err := h.store.StageAll(c.Request.Context(), storage.CategoryEvents, files)
  if err != nil {
    RespondError(c, err)
    return
  }

  price, _ := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
  duration, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("duration")))
  maxGroupSize, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("maxGroupSize")))

  in := services.CreateEventInput{
    Title:           c.PostForm("title"),
    Description:     c.PostForm("description"),
    Price:           price,
    Duration:        duration,
    MaxGroupSize:    maxGroupSize,
    TouristicSiteID: c.PostForm("touristicSiteId"),
    SiteAdminID:     c.PostForm("siteAdminId"),
    GuideID:         c.PostForm("guideId"),
    Images:          uploads,
  }
  event, err := h.eventService.CreateEvent(c.Request.Context(), in)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "event created", event)
}

// GET /events/all?search=&siteId=&adminId=&guideId=&sort=
func (h *EventHandler) All(c *gin.Context) {
  filter := repos.EventFilter{
    Search: c.Query("search"),
    Sort:   c.Query("sort"),
  }
  if raw := c.Query("siteId"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, apierr.Validation("siteId must be a valid id"))
      return
    }
    filter.SiteID = &id
  }
  if raw := c.Query("adminId"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, apierr.Validation("adminId must be a valid id"))
      return
    }
    filter.SiteAdminID = &id
  }
  if raw := c.Query("guideId"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, apierr.Validation("guideId must be a valid id"))
      return
    }
    filter.GuideID = &id
  }
  events, err := h.eventService.ListEvents(c.Request.Context(), filter)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "events fetched", events)
}

// GET /events/siteadmin/events/:adminId
func (h *EventHandler) ByAdmin(c *gin.Context) {
  adminID, err := uuid.Parse(c.Param("adminId"))
  if err != nil {
    RespondError(c, apierr.Validation("adminId must be a valid id"))
    return
  }
  events, err := h.eventService.ListEventsByAdmin(c.Request.Context(), adminID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "events fetched", events)
}

// GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  event, err := h.eventService.GetEvent(c.Request.Context(), id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "event fetched", event)
}

// PUT /events/update/:id
func (h *EventHandler) Update(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  var uploads []*storage.Upload
  if form, fErr := c.MultipartForm(); fErr == nil && form != nil {
    files := form.File["eventImages"]
    if len(files) > maxUploadFiles {
      RespondError(c, apierr.Validation("at most 20 event images are allowed"))
      return
    }
    staged, sErr := h.store.StageAll(c.Request.Context(), storage.CategoryEvents, files)
    if sErr != nil {
      RespondError(c, sErr)
      return
    }
    uploads = staged
  }

  in := services.UpdateEventInput{
    Title:           formValue(c, "title"),
    Description:     formValue(c, "description"),
    TouristicSiteID: formValue(c, "touristicSiteId"),
    SiteAdminID:     formValue(c, "siteAdminId"),
    GuideID:         formValue(c, "guideId"),
    NewImages:       uploads,
  }
  if raw := formValue(c, "price"); raw != nil {
    f, pErr := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
    if pErr != nil {
      h.store.Discard(uploads)
      RespondError(c, apierr.Validation("price must be numeric"))
      return
    }
    in.Price = &f
  }
  if raw := formValue(c, "duration"); raw != nil {
    n, pErr := strconv.Atoi(strings.TrimSpace(*raw))
    if pErr != nil {
      h.store.Discard(uploads)
      RespondError(c, apierr.Validation("duration must be an integer"))
      return
    }
    in.Duration = &n
  }
  if raw := formValue(c, "maxGroupSize"); raw != nil {
    n, pErr := strconv.Atoi(strings.TrimSpace(*raw))
    if pErr != nil {
      h.store.Discard(uploads)
      RespondError(c, apierr.Validation("maxGroupSize must be an integer"))
      return
    }
    in.MaxGroupSize = &n
  }
  for _, raw := range c.PostFormArray("removeImageIds") {
    for _, piece := range strings.Split(raw, ",") {
      piece = strings.TrimSpace(piece)
      if piece == "" {
        continue
      }
      imgID, pErr := uuid.Parse(piece)
      if pErr != nil {
        h.store.Discard(uploads)
        RespondError(c, apierr.Validation("removeImageIds must contain valid ids"))
        return
      }
      in.RemoveImageIDs = append(in.RemoveImageIDs, imgID)
    }
  }

  event, err := h.eventService.UpdateEvent(c.Request.Context(), id, in)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "event updated", event)
}

// DELETE /events/delete/:id
func (h *EventHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "event deleted", nil)
}
