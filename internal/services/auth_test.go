package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"

  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *types.User) {
  t.Helper()
  users := newFakeUserRepo(&journal{})
  hashed, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
  if err != nil {
    t.Fatalf("hash: %v", err)
  }
  user := &types.User{ID: uuid.New(), Email: "tina@example.com", Password: string(hashed), Role: types.RoleTourist}
  users.users[user.ID] = user
  svc := NewAuthService(testLogger(t), users, "test-secret", time.Hour)
  return svc, users, user
}

func TestLogin_ReturnsVerifiableToken(t *testing.T) {
  svc, _, user := newAuthFixture(t)

  got, token, err := svc.Login(context.Background(), "Tina@Example.com", "pass1234")
  if err != nil {
    t.Fatalf("login: %v", err)
  }
  if got.ID != user.ID {
    t.Fatalf("unexpected user %s", got.ID)
  }
  if got.Password != "" {
    t.Fatalf("expected password stripped from response")
  }
  subject, err := svc.VerifyToken(token)
  if err != nil {
    t.Fatalf("verify: %v", err)
  }
  if subject != user.ID {
    t.Fatalf("token subject %s does not match user %s", subject, user.ID)
  }
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
  svc, _, _ := newAuthFixture(t)

  _, _, err := svc.Login(context.Background(), "tina@example.com", "wrong")
  assertUnauthorized(t, err)
}

func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
  svc, _, _ := newAuthFixture(t)

  _, _, err := svc.Login(context.Background(), "nobody@example.com", "pass1234")
  assertUnauthorized(t, err)
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
  svc, _, _ := newAuthFixture(t)

  if _, err := svc.VerifyToken("not-a-jwt"); err == nil {
    t.Fatalf("expected error for malformed token")
  }
}

func TestVerifyToken_RejectsTokenSignedWithAnotherSecret(t *testing.T) {
  svc, users, _ := newAuthFixture(t)
  other := NewAuthService(testLogger(t), users, "other-secret", time.Hour)

  _, token, err := other.Login(context.Background(), "tina@example.com", "pass1234")
  if err != nil {
    t.Fatalf("login: %v", err)
  }
  if _, err := svc.VerifyToken(token); err == nil {
    t.Fatalf("expected error for foreign signature")
  }
}
