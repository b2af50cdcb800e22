package services

import (
  "bytes"
  "context"
  "fmt"
  "io"
  "mime/multipart"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

// The fakes ignore the tx argument; the sqlite handle only provides real
// begin/commit semantics for the services' Transaction closures.

func testDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  return db
}

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger init: %v", err)
  }
  return log
}

// journal records mutation order across fakes.
type journal struct {
  ops []string
}

func (j *journal) add(op string) {
  if j != nil {
    j.ops = append(j.ops, op)
  }
}

type fakeStore struct {
  promoted  []*storage.Upload
  discarded []*storage.Upload
  removed   []string
}

func (f *fakeStore) Stage(ctx context.Context, category string, fh *multipart.FileHeader) (*storage.Upload, error) {
  return nil, fmt.Errorf("staging is not supported in fakes")
}

func (f *fakeStore) StageAll(ctx context.Context, category string, fhs []*multipart.FileHeader) ([]*storage.Upload, error) {
  return nil, fmt.Errorf("staging is not supported in fakes")
}

func (f *fakeStore) Put(ctx context.Context, category, name string, r io.Reader) (*storage.Upload, error) {
  id := uuid.New()
  return &storage.Upload{
    ID:         id,
    Name:       name,
    FileName:   id.String() + ".png",
    Category:   category,
    StagedPath: "/tmp/" + id.String(),
  }, nil
}

func (f *fakeStore) URL(category, fileName string) string {
  return fmt.Sprintf("http://test/uploads/%s/%s", category, fileName)
}

func (f *fakeStore) Promote(uploads []*storage.Upload)  { f.promoted = append(f.promoted, uploads...) }
func (f *fakeStore) Discard(uploads []*storage.Upload)  { f.discarded = append(f.discarded, uploads...) }
func (f *fakeStore) Remove(category, fileName string)   { f.removed = append(f.removed, f.URL(category, fileName)) }
func (f *fakeStore) RemoveByURL(url string)             { f.removed = append(f.removed, url) }

func stagedUpload(category, name string) *storage.Upload {
  id := uuid.New()
  return &storage.Upload{
    ID:         id,
    Name:       name,
    FileName:   id.String() + ".jpg",
    Category:   category,
    StagedPath: "/tmp/" + id.String(),
  }
}

// ---- avatar ----

type fakeAvatar struct {
  staged []*storage.Upload
  err    error
}

func (f *fakeAvatar) StageInitialsAvatar(ctx context.Context, name string) (*storage.Upload, error) {
  if f.err != nil {
    return nil, f.err
  }
  up := stagedUpload(storage.CategoryProfiles, "avatar.png")
  f.staged = append(f.staged, up)
  return up, nil
}

func (f *fakeAvatar) RenderInitialsAvatar(name string) (bytes.Buffer, error) {
  if f.err != nil {
    return bytes.Buffer{}, f.err
  }
  return *bytes.NewBufferString("png"), nil
}

// ---- user ----

type fakeUserRepo struct {
  users     map[uuid.UUID]*types.User
  updates   map[uuid.UUID]map[string]interface{}
  j         *journal
  createErr error
}

func newFakeUserRepo(j *journal) *fakeUserRepo {
  return &fakeUserRepo{
    users:   map[uuid.UUID]*types.User{},
    updates: map[uuid.UUID]map[string]interface{}{},
    j:       j,
  }
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  if f.createErr != nil {
    return nil, f.createErr
  }
  for _, u := range users {
    f.users[u.ID] = u
  }
  f.j.add("user.create")
  return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  return f.users[userID], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
  for _, u := range f.users {
    if u.Email == email {
      return u, nil
    }
  }
  return nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  u, _ := f.GetByEmail(ctx, tx, email)
  return u != nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
  out := make([]*types.User, 0, len(f.users))
  for _, u := range f.users {
    out = append(out, u)
  }
  return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error {
  f.updates[userID] = fields
  return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  if _, ok := f.users[userID]; !ok {
    return 0, nil
  }
  delete(f.users, userID)
  f.j.add("user.delete")
  return 1, nil
}

// ---- touristic site ----

type fakeSiteRepo struct {
  sites map[uuid.UUID]*types.TouristicSite
  j     *journal
}

func newFakeSiteRepo(j *journal) *fakeSiteRepo {
  return &fakeSiteRepo{sites: map[uuid.UUID]*types.TouristicSite{}, j: j}
}

func (f *fakeSiteRepo) Create(ctx context.Context, tx *gorm.DB, sites []*types.TouristicSite) ([]*types.TouristicSite, error) {
  for _, s := range sites {
    f.sites[s.ID] = s
  }
  f.j.add("site.create")
  return sites, nil
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (*types.TouristicSite, error) {
  return f.sites[siteID], nil
}

func (f *fakeSiteRepo) Exists(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (bool, error) {
  _, ok := f.sites[siteID]
  return ok, nil
}

func (f *fakeSiteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TouristicSite, error) {
  out := make([]*types.TouristicSite, 0, len(f.sites))
  for _, s := range f.sites {
    out = append(out, s)
  }
  return out, nil
}

func (f *fakeSiteRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.TouristicSite, int64, error) {
  all, _ := f.List(ctx, tx)
  return all, int64(len(all)), nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, tx *gorm.DB, siteID uuid.UUID, fields map[string]interface{}) error {
  return nil
}

func (f *fakeSiteRepo) Delete(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  if _, ok := f.sites[siteID]; !ok {
    return 0, nil
  }
  delete(f.sites, siteID)
  f.j.add("site.delete")
  return 1, nil
}

// ---- site admin ----

type fakeSiteAdminRepo struct {
  admins map[uuid.UUID]*types.TouristicSiteAdmin
  j      *journal
  // deleteRows forces the Delete result when >= 0.
  deleteRows int64
}

func newFakeSiteAdminRepo(j *journal) *fakeSiteAdminRepo {
  return &fakeSiteAdminRepo{admins: map[uuid.UUID]*types.TouristicSiteAdmin{}, j: j, deleteRows: -1}
}

func (f *fakeSiteAdminRepo) Create(ctx context.Context, tx *gorm.DB, admins []*types.TouristicSiteAdmin) ([]*types.TouristicSiteAdmin, error) {
  for _, a := range admins {
    f.admins[a.ID] = a
  }
  f.j.add("admin.create")
  return admins, nil
}

func (f *fakeSiteAdminRepo) GetByID(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (*types.TouristicSiteAdmin, error) {
  return f.admins[adminID], nil
}

func (f *fakeSiteAdminRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TouristicSiteAdmin, error) {
  for _, a := range f.admins {
    if a.UserID == userID {
      return a, nil
    }
  }
  return nil, nil
}

func (f *fakeSiteAdminRepo) Exists(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (bool, error) {
  _, ok := f.admins[adminID]
  return ok, nil
}

func (f *fakeSiteAdminRepo) Delete(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (int64, error) {
  if f.deleteRows >= 0 {
    return f.deleteRows, nil
  }
  if _, ok := f.admins[adminID]; !ok {
    return 0, nil
  }
  delete(f.admins, adminID)
  f.j.add("admin.delete")
  return 1, nil
}

// ---- site images ----

type fakeSiteImageRepo struct {
  images    []*types.TouristicSiteImage
  j         *journal
  createErr error
}

func newFakeSiteImageRepo(j *journal) *fakeSiteImageRepo {
  return &fakeSiteImageRepo{j: j}
}

func (f *fakeSiteImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.TouristicSiteImage) ([]*types.TouristicSiteImage, error) {
  if f.createErr != nil {
    return nil, f.createErr
  }
  f.images = append(f.images, images...)
  f.j.add("site_image.create")
  return images, nil
}

func (f *fakeSiteImageRepo) ListBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) ([]*types.TouristicSiteImage, error) {
  var out []*types.TouristicSiteImage
  for _, img := range f.images {
    if img.TouristicSiteID == siteID {
      out = append(out, img)
    }
  }
  return out, nil
}

func (f *fakeSiteImageRepo) DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  var kept []*types.TouristicSiteImage
  var removed int64
  for _, img := range f.images {
    if img.TouristicSiteID == siteID {
      removed++
      continue
    }
    kept = append(kept, img)
  }
  f.images = kept
  f.j.add("site_image.delete")
  return removed, nil
}

// ---- site favorites ----

type fakeSiteFavoriteRepo struct {
  favorites []*types.TouristicSiteFavorite
  j         *journal
}

func newFakeSiteFavoriteRepo(j *journal) *fakeSiteFavoriteRepo {
  return &fakeSiteFavoriteRepo{j: j}
}

func (f *fakeSiteFavoriteRepo) Create(ctx context.Context, tx *gorm.DB, favorite *types.TouristicSiteFavorite) (*types.TouristicSiteFavorite, error) {
  f.favorites = append(f.favorites, favorite)
  return favorite, nil
}

func (f *fakeSiteFavoriteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TouristicSiteFavorite, error) {
  var out []*types.TouristicSiteFavorite
  for _, fav := range f.favorites {
    if fav.UserID == userID {
      out = append(out, fav)
    }
  }
  return out, nil
}

func (f *fakeSiteFavoriteRepo) DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  var kept []*types.TouristicSiteFavorite
  var removed int64
  for _, fav := range f.favorites {
    if fav.TouristicSiteID == siteID {
      removed++
      continue
    }
    kept = append(kept, fav)
  }
  f.favorites = kept
  f.j.add("favorite.delete")
  return removed, nil
}

func (f *fakeSiteFavoriteRepo) DeleteByUserAndSite(ctx context.Context, tx *gorm.DB, userID, siteID uuid.UUID) (int64, error) {
  return 0, nil
}

// ---- events ----

type fakeEventRepo struct {
  events  map[uuid.UUID]*types.Event
  updates map[uuid.UUID]map[string]interface{}
  j       *journal
}

func newFakeEventRepo(j *journal) *fakeEventRepo {
  return &fakeEventRepo{
    events:  map[uuid.UUID]*types.Event{},
    updates: map[uuid.UUID]map[string]interface{}{},
    j:       j,
  }
}

func (f *fakeEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error) {
  for _, ev := range events {
    f.events[ev.ID] = ev
  }
  f.j.add("event.create")
  return events, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.Event, error) {
  return f.events[eventID], nil
}

func (f *fakeEventRepo) List(ctx context.Context, tx *gorm.DB, filter repos.EventFilter) ([]*types.Event, error) {
  out := make([]*types.Event, 0, len(f.events))
  for _, ev := range f.events {
    out = append(out, ev)
  }
  return out, nil
}

func (f *fakeEventRepo) ListByAdmin(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) ([]*types.Event, error) {
  var out []*types.Event
  for _, ev := range f.events {
    if ev.SiteAdminID != nil && *ev.SiteAdminID == adminID {
      out = append(out, ev)
    }
  }
  return out, nil
}

func (f *fakeEventRepo) ListBySiteWithBookings(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) ([]*types.Event, error) {
  var out []*types.Event
  for _, ev := range f.events {
    if ev.TouristicSiteID == siteID {
      out = append(out, ev)
    }
  }
  return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error {
  f.updates[eventID] = fields
  return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
  if _, ok := f.events[eventID]; !ok {
    return 0, nil
  }
  delete(f.events, eventID)
  f.j.add("event.delete")
  return 1, nil
}

func (f *fakeEventRepo) DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  var removed int64
  for id, ev := range f.events {
    if ev.TouristicSiteID == siteID {
      delete(f.events, id)
      removed++
    }
  }
  f.j.add("event.delete")
  return removed, nil
}

// ---- event images ----

type fakeEventImageRepo struct {
  images    []*types.EventImage
  createErr error
}

func (f *fakeEventImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.EventImage) ([]*types.EventImage, error) {
  if f.createErr != nil {
    return nil, f.createErr
  }
  f.images = append(f.images, images...)
  return images, nil
}

func (f *fakeEventImageRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventImage, error) {
  var out []*types.EventImage
  for _, img := range f.images {
    if img.EventID == eventID {
      out = append(out, img)
    }
  }
  return out, nil
}

func (f *fakeEventImageRepo) ListByIDsForEvent(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID, eventID uuid.UUID) ([]*types.EventImage, error) {
  wanted := map[uuid.UUID]bool{}
  for _, id := range imageIDs {
    wanted[id] = true
  }
  var out []*types.EventImage
  for _, img := range f.images {
    if wanted[img.ID] && img.EventID == eventID {
      out = append(out, img)
    }
  }
  return out, nil
}

func (f *fakeEventImageRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) (int64, error) {
  doomed := map[uuid.UUID]bool{}
  for _, id := range imageIDs {
    doomed[id] = true
  }
  var kept []*types.EventImage
  var removed int64
  for _, img := range f.images {
    if doomed[img.ID] {
      removed++
      continue
    }
    kept = append(kept, img)
  }
  f.images = kept
  return removed, nil
}

// ---- bookings ----

type fakeBookingRepo struct {
  bookings []*types.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, tx *gorm.DB, bookings []*types.Booking) ([]*types.Booking, error) {
  f.bookings = append(f.bookings, bookings...)
  return bookings, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Booking, error) {
  for _, b := range f.bookings {
    if b.ID == bookingID {
      return b, nil
    }
  }
  return nil, nil
}

func activeStatus(status string) bool {
  for _, s := range types.ActiveBookingStatuses {
    if s == status {
      return true
    }
  }
  return false
}

func (f *fakeBookingRepo) CountActiveByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
  return f.CountActiveByEvents(ctx, tx, []uuid.UUID{eventID})
}

func (f *fakeBookingRepo) CountActiveByEvents(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) (int64, error) {
  wanted := map[uuid.UUID]bool{}
  for _, id := range eventIDs {
    wanted[id] = true
  }
  var count int64
  for _, b := range f.bookings {
    if wanted[b.EventID] && activeStatus(b.Status) {
      count++
    }
  }
  return count, nil
}

func (f *fakeBookingRepo) ListByTourist(ctx context.Context, tx *gorm.DB, touristID uuid.UUID) ([]*types.Booking, error) {
  var out []*types.Booking
  for _, b := range f.bookings {
    if b.TouristID == touristID {
      out = append(out, b)
    }
  }
  return out, nil
}

func (f *fakeBookingRepo) ListByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Booking, error) {
  var out []*types.Booking
  for _, b := range f.bookings {
    if b.GuideID != nil && *b.GuideID == guideID {
      out = append(out, b)
    }
  }
  return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, status string) error {
  for _, b := range f.bookings {
    if b.ID == bookingID {
      b.Status = status
      return nil
    }
  }
  return fmt.Errorf("booking %s not found", bookingID)
}

// ---- guides ----

type fakeGuideRepo struct {
  guides  map[uuid.UUID]*types.TouristGuide
  updates map[uuid.UUID]map[string]interface{}
}

func newFakeGuideRepo() *fakeGuideRepo {
  return &fakeGuideRepo{
    guides:  map[uuid.UUID]*types.TouristGuide{},
    updates: map[uuid.UUID]map[string]interface{}{},
  }
}

func (f *fakeGuideRepo) Create(ctx context.Context, tx *gorm.DB, guides []*types.TouristGuide) ([]*types.TouristGuide, error) {
  for _, g := range guides {
    f.guides[g.ID] = g
  }
  return guides, nil
}

func (f *fakeGuideRepo) GetByID(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (*types.TouristGuide, error) {
  return f.guides[guideID], nil
}

func (f *fakeGuideRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TouristGuide, error) {
  for _, g := range f.guides {
    if g.UserID == userID {
      return g, nil
    }
  }
  return nil, nil
}

func (f *fakeGuideRepo) Exists(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (bool, error) {
  _, ok := f.guides[guideID]
  return ok, nil
}

func (f *fakeGuideRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TouristGuide, error) {
  out := make([]*types.TouristGuide, 0, len(f.guides))
  for _, g := range f.guides {
    out = append(out, g)
  }
  return out, nil
}

func (f *fakeGuideRepo) Update(ctx context.Context, tx *gorm.DB, guideID uuid.UUID, fields map[string]interface{}) error {
  f.updates[guideID] = fields
  return nil
}

// ---- payments ----

type fakePaymentRepo struct {
  payments map[uuid.UUID]*types.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
  return &fakePaymentRepo{payments: map[uuid.UUID]*types.Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error) {
  f.payments[payment.BookingID] = payment
  return payment, nil
}

func (f *fakePaymentRepo) GetByBookingID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Payment, error) {
  return f.payments[bookingID], nil
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uuid.UUID, status string) error {
  for _, p := range f.payments {
    if p.ID == paymentID {
      p.Status = status
      return nil
    }
  }
  return fmt.Errorf("payment %s not found", paymentID)
}

// ---- reviews ----

type fakeReviewRepo struct {
  reviews []*types.Review
  avg     float64
  count   int64
}

func (f *fakeReviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
  f.reviews = append(f.reviews, review)
  return review, nil
}

func (f *fakeReviewRepo) GetByBookingID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Review, error) {
  for _, r := range f.reviews {
    if r.BookingID == bookingID {
      return r, nil
    }
  }
  return nil, nil
}

func (f *fakeReviewRepo) ListByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Review, error) {
  var out []*types.Review
  for _, r := range f.reviews {
    if r.GuideID == guideID {
      out = append(out, r)
    }
  }
  return out, nil
}

func (f *fakeReviewRepo) AverageByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (float64, int64, error) {
  return f.avg, f.count, nil
}

var errForced = fmt.Errorf("forced repo failure")

func assertUnauthorized(t *testing.T, err error) {
  t.Helper()
  ae := apierr.From(err)
  if ae == nil || ae.Status != 401 {
    t.Fatalf("expected 401, got %v", err)
  }
}
