package services

import (
  "context"
  "image/png"
  "os"
  "path/filepath"
  "testing"

  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
)

func newAvatarFixture(t *testing.T, store storage.Store) AvatarService {
  t.Helper()
  t.Setenv("AVATAR_COLORS_JSON_PATH", "")
  t.Setenv("AVATAR_FONT", "")
  svc, err := NewAvatarService(testLogger(t), store)
  if err != nil {
    t.Fatalf("avatar service: %v", err)
  }
  return svc
}

func TestRenderInitialsAvatar_ProducesDecodablePNG(t *testing.T) {
  svc := newAvatarFixture(t, &fakeStore{})

  buf, err := svc.RenderInitialsAvatar("Tina Ndi")
  if err != nil {
    t.Fatalf("render: %v", err)
  }
  img, err := png.Decode(&buf)
  if err != nil {
    t.Fatalf("decode png: %v", err)
  }
  b := img.Bounds()
  if b.Dx() != avatarSize || b.Dy() != avatarSize {
    t.Fatalf("expected %dx%d avatar, got %dx%d", avatarSize, avatarSize, b.Dx(), b.Dy())
  }
}

func TestStageInitialsAvatar_StagesUnderProfiles(t *testing.T) {
  store, err := storage.NewDiskStore(testLogger(t), t.TempDir(), "http://test")
  if err != nil {
    t.Fatalf("disk store: %v", err)
  }
  svc := newAvatarFixture(t, store)

  up, err := svc.StageInitialsAvatar(context.Background(), "Tina Ndi")
  if err != nil {
    t.Fatalf("stage: %v", err)
  }
  if up.Category != storage.CategoryProfiles {
    t.Fatalf("expected profiles category, got %q", up.Category)
  }
  if _, err := os.Stat(up.StagedPath); err != nil {
    t.Fatalf("expected staged file on disk: %v", err)
  }
  // Not public until promoted.
  public := filepath.Join(store.Root(), storage.CategoryProfiles, up.FileName)
  if _, err := os.Stat(public); !os.IsNotExist(err) {
    t.Fatalf("staged avatar must not be public before promote")
  }
}

func TestComputeInitials(t *testing.T) {
  cases := []struct {
    name string
    want string
  }{
    {"Tina Ndi", "TN"},
    {"ada epie bassey", "AB"},
    {"Cher", "C"},
    {"  ", "?"},
    {"", "?"},
  }
  for _, tc := range cases {
    if got := computeInitials(tc.name); got != tc.want {
      t.Fatalf("computeInitials(%q) = %q, want %q", tc.name, got, tc.want)
    }
  }
}

func TestNewAvatarService_LoadsPaletteFromFile(t *testing.T) {
  path := filepath.Join(t.TempDir(), "colors.json")
  if err := os.WriteFile(path, []byte(`["#1A735E", "B55A30"]`), 0o644); err != nil {
    t.Fatalf("write palette: %v", err)
  }
  t.Setenv("AVATAR_COLORS_JSON_PATH", path)
  t.Setenv("AVATAR_FONT", "")

  svc, err := NewAvatarService(testLogger(t), &fakeStore{})
  if err != nil {
    t.Fatalf("avatar service: %v", err)
  }
  inner := svc.(*avatarService)
  if len(inner.bgColors) != 2 {
    t.Fatalf("expected 2 palette colors, got %d", len(inner.bgColors))
  }
  if inner.bgColors[1].R != 0xB5 || inner.bgColors[1].G != 0x5A || inner.bgColors[1].B != 0x30 {
    t.Fatalf("unexpected second color: %+v", inner.bgColors[1])
  }
}
