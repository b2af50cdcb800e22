package handlers

import (
  "strconv"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

const maxUploadFiles = 20

type TourSiteHandler struct {
  log              *logger.Logger
  siteService      services.SiteService
  siteAdminService services.SiteAdminService
  store            storage.Store
}

func NewTourSiteHandler(log *logger.Logger, siteService services.SiteService, siteAdminService services.SiteAdminService, store storage.Store) *TourSiteHandler {
  return &TourSiteHandler{
    log:              log.With("handler", "TourSiteHandler"),
    siteService:      siteService,
    siteAdminService: siteAdminService,
    store:            store,
  }
}

// POST /tour-site/create (multipart, field "siteImages")
func (h *TourSiteHandler) Create(c *gin.Context) {
  form, err := c.MultipartForm()
  if err != nil {
    RespondError(c, apierr.Validation("multipart form could not be parsed"))
    return
  }
  files := form.File["siteImages"]
  if len(files) > maxUploadFiles {
    RespondError(c, apierr.Validation("at most 20 site images are allowed"))
    return
  }
  uploads, err := h.store.StageAll(c.Request.Context(), storage.CategorySites, files)
  if err != nil {
    RespondError(c, err)
    return
  }

  in := services.CreateSiteAdminInput{
    Name:            c.PostForm("name"),
    Email:           c.PostForm("email"),
    Password:        c.PostForm("password"),
    PhoneNumber:     c.PostForm("phoneNumber"),
    SiteName:        c.PostForm("siteName"),
    SiteDescription: c.PostForm("siteDescription"),
    SiteLocation:    c.PostForm("siteLocation"),
    Category:        c.PostForm("category"),
    OpeningHours:    c.PostForm("openingHours"),
    Images:          uploads,
  }
  in.Latitude = floatField(c, "latitude")
  in.Longitude = floatField(c, "longitude")
  in.EntryFee = floatField(c, "entryFee")

  user, site, err := h.siteAdminService.CreateSiteAdmin(c.Request.Context(), in)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, "touristic site and admin created", gin.H{"user": user, "site": site})
}

// GET /tour-site/allsites
func (h *TourSiteHandler) AllSites(c *gin.Context) {
  sites, err := h.siteService.ListSites(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "touristic sites fetched", sites)
}

// GET /tour-site/all?page=&pageSize=
func (h *TourSiteHandler) AllPaged(c *gin.Context) {
  page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
  pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
  sites, total, err := h.siteService.ListSitesPaged(c.Request.Context(), page, pageSize)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "touristic sites fetched", gin.H{"sites": sites, "total": total, "page": page, "pageSize": pageSize})
}

// GET /tour-site/:id
func (h *TourSiteHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  site, err := h.siteService.GetSite(c.Request.Context(), id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "touristic site fetched", site)
}

// PUT /tour-site/update/:id
func (h *TourSiteHandler) Update(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  var uploads []*storage.Upload
  if form, fErr := c.MultipartForm(); fErr == nil && form != nil {
    files := form.File["siteImages"]
    if len(files) > maxUploadFiles {
      RespondError(c, apierr.Validation("at most 20 site images are allowed"))
      return
    }
    staged, sErr := h.store.StageAll(c.Request.Context(), storage.CategorySites, files)
    if sErr != nil {
      RespondError(c, sErr)
      return
    }
    uploads = staged
  }
  in := services.UpdateSiteInput{
    Name:         formValue(c, "name"),
    Description:  formValue(c, "description"),
    Location:     formValue(c, "location"),
    Category:     formValue(c, "category"),
    OpeningHours: formValue(c, "openingHours"),
    NewImages:    uploads,
  }
  in.Latitude = floatField(c, "latitude")
  in.Longitude = floatField(c, "longitude")
  in.EntryFee = floatField(c, "entryFee")

  site, err := h.siteService.UpdateSite(c.Request.Context(), id, in)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "touristic site updated", site)
}

// DELETE /tour-site/delete/:id
// The id is the site admin's; the whole user+site+admin aggregate goes.
func (h *TourSiteHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation("id must be a valid id"))
    return
  }
  if err := h.siteAdminService.DeleteSiteAdmin(c.Request.Context(), id); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "touristic site and admin deleted", nil)
}

// GET /tour-site/sites/:adminId
func (h *TourSiteHandler) SiteByAdmin(c *gin.Context) {
  adminID, err := uuid.Parse(c.Param("adminId"))
  if err != nil {
    RespondError(c, apierr.Validation("adminId must be a valid id"))
    return
  }
  site, err := h.siteService.GetSiteByAdmin(c.Request.Context(), adminID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, "touristic site fetched", site)
}

func floatField(c *gin.Context, key string) *float64 {
  raw, ok := c.GetPostForm(key)
  if !ok || strings.TrimSpace(raw) == "" {
    return nil
  }
  f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
  if err != nil {
    return nil
  }
  return &f
}
