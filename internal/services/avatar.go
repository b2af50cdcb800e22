package services

import (
  "bytes"
  "context"
  "encoding/hex"
  "encoding/json"
  "fmt"
  "image/color"
  "math/rand"
  "os"
  "strings"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/font"
  "golang.org/x/image/font/gofont/goregular"

  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
)

const avatarSize = 512

// defaultAvatarColors backs accounts when AVATAR_COLORS_JSON_PATH is unset.
var defaultAvatarColors = []color.NRGBA{
  {R: 0x1A, G: 0x73, B: 0x5E, A: 0xFF},
  {R: 0xB5, G: 0x5A, B: 0x30, A: 0xFF},
  {R: 0x3D, G: 0x5A, B: 0x80, A: 0xFF},
  {R: 0x7B, G: 0x2D, B: 0x26, A: 0xFF},
  {R: 0x5E, G: 0x4B, B: 0x8B, A: 0xFF},
  {R: 0x2F, G: 0x6F, B: 0x4F, A: 0xFF},
}

// AvatarService renders an initials avatar for users created without a
// profile picture and stages it through the upload store so the usual
// promote-after-commit lifecycle applies.
type AvatarService interface {
  StageInitialsAvatar(ctx context.Context, name string) (*storage.Upload, error)
  RenderInitialsAvatar(name string) (bytes.Buffer, error)
}

type avatarService struct {
  log      *logger.Logger
  store    storage.Store
  bgColors []color.NRGBA
  fontFace font.Face
}

// NewAvatarService loads the palette from AVATAR_COLORS_JSON_PATH and the
// font from AVATAR_FONT when set; otherwise it falls back to a built-in
// palette and the bundled Go Regular face.
func NewAvatarService(baseLog *logger.Logger, store storage.Store) (AvatarService, error) {
  serviceLog := baseLog.With("service", "AvatarService")

  bgColors := defaultAvatarColors
  if path := strings.TrimSpace(os.Getenv("AVATAR_COLORS_JSON_PATH")); path != "" {
    loaded, err := loadAvatarColors(path)
    if err != nil {
      return nil, fmt.Errorf("Failed to load avatar colors: %w", err)
    }
    if len(loaded) > 0 {
      bgColors = loaded
    }
  }

  fontBytes := goregular.TTF
  if path := strings.TrimSpace(os.Getenv("AVATAR_FONT")); path != "" {
    custom, err := os.ReadFile(path)
    if err != nil {
      return nil, fmt.Errorf("Failed to read avatar font: %w", err)
    }
    fontBytes = custom
  }
  face, err := loadFontFace(fontBytes, 206)
  if err != nil {
    return nil, fmt.Errorf("Failed to load avatar font: %w", err)
  }

  return &avatarService{log: serviceLog, store: store, bgColors: bgColors, fontFace: face}, nil
}

// StageInitialsAvatar renders the avatar and writes it into staging under the
// profiles category. The caller promotes it once the owning row committed.
func (s *avatarService) StageInitialsAvatar(ctx context.Context, name string) (*storage.Upload, error) {
  buf, err := s.RenderInitialsAvatar(name)
  if err != nil {
    return nil, err
  }
  up, err := s.store.Put(ctx, storage.CategoryProfiles, "avatar.png", &buf)
  if err != nil {
    return nil, fmt.Errorf("Failed to stage generated avatar: %w", err)
  }
  return up, nil
}

func (s *avatarService) RenderInitialsAvatar(name string) (bytes.Buffer, error) {
  dc := gg.NewContext(avatarSize, avatarSize)

  dc.DrawCircle(float64(avatarSize)/2, float64(avatarSize)/2, float64(avatarSize)/2)
  dc.Clip()

  dc.SetColor(s.bgColors[rand.Intn(len(s.bgColors))])
  dc.DrawRectangle(0, 0, float64(avatarSize), float64(avatarSize))
  dc.Fill()

  initials := computeInitials(name)
  dc.SetFontFace(s.fontFace)
  tw, th := dc.MeasureString(initials)
  cx, cy := float64(avatarSize)/2, float64(avatarSize)/2

  dc.SetColor(color.White)
  dc.DrawString(initials, cx-(tw/2), cy+(th/2))

  var buf bytes.Buffer
  if err := dc.EncodePNG(&buf); err != nil {
    return buf, fmt.Errorf("Failed to encode avatar PNG: %w", err)
  }
  return buf, nil
}

// computeInitials takes the first letter of the first and last words of the
// display name. A single word yields one letter, an empty name yields "?".
func computeInitials(name string) string {
  words := strings.Fields(name)
  if len(words) == 0 {
    return "?"
  }
  first := strings.ToUpper(string([]rune(words[0])[0]))
  if len(words) == 1 {
    return first
  }
  return first + strings.ToUpper(string([]rune(words[len(words)-1])[0]))
}

func loadAvatarColors(jsonPath string) ([]color.NRGBA, error) {
  data, err := os.ReadFile(jsonPath)
  if err != nil {
    return nil, err
  }
  var hexes []string
  if err := json.Unmarshal(data, &hexes); err != nil {
    return nil, err
  }
  colors := make([]color.NRGBA, 0, len(hexes))
  for _, h := range hexes {
    c, err := parseHexColor(h)
    if err != nil {
      return nil, fmt.Errorf("Invalid avatar color %q: %w", h, err)
    }
    colors = append(colors, c)
  }
  return colors, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
  s = strings.TrimPrefix(strings.TrimSpace(s), "#")
  if len(s) != 6 {
    return color.NRGBA{}, fmt.Errorf("expected 6 hex chars")
  }
  raw, err := hex.DecodeString(s)
  if err != nil {
    return color.NRGBA{}, fmt.Errorf("invalid hex")
  }
  return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}, nil
}

func loadFontFace(fontBytes []byte, size float64) (font.Face, error) {
  parsedFont, err := truetype.Parse(fontBytes)
  if err != nil {
    return nil, fmt.Errorf("Failed to parse TTF: %w", err)
  }
  return truetype.NewFace(parsedFont, &truetype.Options{
    Size:    size,
    DPI:     72,
    Hinting: font.HintingNone,
  }), nil
}
