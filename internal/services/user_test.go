package services

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type userFixture struct {
  svc    UserService
  store  *fakeStore
  avatar *fakeAvatar
  users  *fakeUserRepo
  admins *fakeSiteAdminRepo
}

func newUserFixture(t *testing.T) *userFixture {
  t.Helper()
  j := &journal{}
  f := &userFixture{
    store:  &fakeStore{},
    avatar: &fakeAvatar{},
    users:  newFakeUserRepo(j),
    admins: newFakeSiteAdminRepo(j),
  }
  f.svc = NewUserService(testDB(t), testLogger(t), f.store, f.avatar, f.users, f.admins)
  return f
}

func TestCreateUser_DefaultsToTouristRole(t *testing.T) {
  f := newUserFixture(t)

  user, err := f.svc.CreateUser(context.Background(), CreateUserInput{
    Name:     "Tina",
    Email:    "TINA@example.com",
    Password: "pass1234",
  })
  if err != nil {
    t.Fatalf("create user: %v", err)
  }
  if user.Role != types.RoleTourist {
    t.Fatalf("expected TOURIST role, got %q", user.Role)
  }
  if user.Email != "tina@example.com" {
    t.Fatalf("expected lowercased email, got %q", user.Email)
  }
  if user.Password != "" {
    t.Fatalf("expected password stripped from response")
  }
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
  f := newUserFixture(t)

  _, err := f.svc.CreateUser(context.Background(), CreateUserInput{
    Name:     "Tina",
    Email:    "tina@example.com",
    Password: "pass1234",
    Role:     "WIZARD",
  })
  if !apierr.IsCode(err, apierr.CodeValidation) {
    t.Fatalf("expected validation error, got %v", err)
  }
}

func TestCreateUser_PromotesProfilePicture(t *testing.T) {
  f := newUserFixture(t)
  up := stagedUpload(storage.CategoryProfiles, "me.jpg")

  user, err := f.svc.CreateUser(context.Background(), CreateUserInput{
    Name:           "Tina",
    Email:          "tina@example.com",
    Password:       "pass1234",
    ProfilePicture: up,
  })
  if err != nil {
    t.Fatalf("create user: %v", err)
  }
  if user.ProfilePicture != f.store.URL(storage.CategoryProfiles, up.FileName) {
    t.Fatalf("unexpected profile picture url %q", user.ProfilePicture)
  }
  if len(f.store.promoted) != 1 {
    t.Fatalf("expected picture promoted")
  }
  if len(f.avatar.staged) != 0 {
    t.Fatalf("no avatar may be generated when a picture was uploaded")
  }
}

func TestCreateUser_GeneratesDefaultAvatar(t *testing.T) {
  f := newUserFixture(t)

  user, err := f.svc.CreateUser(context.Background(), CreateUserInput{
    Name:     "Tina Ndi",
    Email:    "tina@example.com",
    Password: "pass1234",
  })
  if err != nil {
    t.Fatalf("create user: %v", err)
  }
  if len(f.avatar.staged) != 1 {
    t.Fatalf("expected one generated avatar, got %d", len(f.avatar.staged))
  }
  generated := f.avatar.staged[0]
  if user.ProfilePicture != f.store.URL(storage.CategoryProfiles, generated.FileName) {
    t.Fatalf("unexpected profile picture url %q", user.ProfilePicture)
  }
  if len(f.store.promoted) != 1 {
    t.Fatalf("expected generated avatar promoted")
  }
}

func TestCreateUser_AvatarFailureDoesNotBlockSignup(t *testing.T) {
  f := newUserFixture(t)
  f.avatar.err = errForced

  user, err := f.svc.CreateUser(context.Background(), CreateUserInput{
    Name:     "Tina",
    Email:    "tina@example.com",
    Password: "pass1234",
  })
  if err != nil {
    t.Fatalf("create user: %v", err)
  }
  if user.ProfilePicture != "" {
    t.Fatalf("expected no picture, got %q", user.ProfilePicture)
  }
}

func TestUpdateUser_ReplacingPictureRemovesTheOldFile(t *testing.T) {
  f := newUserFixture(t)
  oldURL := "http://test/uploads/profiles/old.jpg"
  user := &types.User{ID: uuid.New(), Email: "tina@example.com", ProfilePicture: oldURL}
  f.users.users[user.ID] = user
  up := stagedUpload(storage.CategoryProfiles, "new.jpg")

  _, err := f.svc.UpdateUser(context.Background(), user.ID, UpdateUserInput{ProfilePicture: up})
  if err != nil {
    t.Fatalf("update: %v", err)
  }
  if len(f.store.promoted) != 1 {
    t.Fatalf("expected new picture promoted")
  }
  if len(f.store.removed) != 1 || f.store.removed[0] != oldURL {
    t.Fatalf("expected old picture removed, got %v", f.store.removed)
  }
}

func TestDeleteUser_SiteAdminUsersAreProtected(t *testing.T) {
  f := newUserFixture(t)
  user := &types.User{ID: uuid.New(), Email: "ada@example.com", Role: types.RoleSiteAdmin}
  f.users.users[user.ID] = user
  f.admins.admins[uuid.New()] = &types.TouristicSiteAdmin{ID: uuid.New(), UserID: user.ID}

  err := f.svc.DeleteUser(context.Background(), user.ID)
  if !apierr.IsCode(err, apierr.CodeConflict) {
    t.Fatalf("expected conflict, got %v", err)
  }
  if _, ok := f.users.users[user.ID]; !ok {
    t.Fatalf("user must survive the blocked delete")
  }
}

func TestDeleteUser_RemovesRowAndPicture(t *testing.T) {
  f := newUserFixture(t)
  user := &types.User{ID: uuid.New(), Email: "tina@example.com", ProfilePicture: "http://test/uploads/profiles/me.jpg"}
  f.users.users[user.ID] = user

  if err := f.svc.DeleteUser(context.Background(), user.ID); err != nil {
    t.Fatalf("delete: %v", err)
  }
  if len(f.users.users) != 0 {
    t.Fatalf("expected user gone")
  }
  if len(f.store.removed) != 1 {
    t.Fatalf("expected picture removed, got %v", f.store.removed)
  }
}
