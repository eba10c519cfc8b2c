package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/store"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "sub": "u1"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func TestLoginPersistsAndLogoutClears(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	sess, err := Open(ctx, s)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if sess.IsAuthed() {
		t.Fatalf("fresh session should be logged out")
	}
	if _, err := sess.Require(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Require() error = %v, want ErrNotLoggedIn", err)
	}

	res := models.AuthResult{Token: "opaque", User: models.User{ID: "c1", Name: "Acme", Role: models.RoleCompany}}
	if err := sess.Login(ctx, res); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	restored, err := Open(ctx, s)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if restored.Token() != "opaque" || !restored.IsCompany() {
		t.Fatalf("session not restored: token=%q company=%v", restored.Token(), restored.IsCompany())
	}
	user, err := restored.Require()
	if err != nil || user.Name != "Acme" {
		t.Fatalf("Require() = %+v, %v", user, err)
	}

	if err := restored.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := s.Get(ctx, store.KeyToken); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("token still stored after logout: %v", err)
	}
	if _, err := s.Get(ctx, store.KeyUser); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("user still stored after logout: %v", err)
	}
}

func TestLoginRequiresToken(t *testing.T) {
	sess, _ := Open(context.Background(), newStore(t))
	if err := sess.Login(context.Background(), models.AuthResult{}); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestCorruptUserReadsAsNoUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_ = s.Set(ctx, store.KeyToken, "opaque")
	_ = s.Set(ctx, store.KeyUser, "{not json")

	sess, err := Open(ctx, s)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := sess.User(); ok {
		t.Fatalf("expected no user for corrupt record")
	}
	if _, err := sess.Require(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Require() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestExpiredTokenIsDropped(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_ = s.Set(ctx, store.KeyToken, signedToken(t, now.Add(-time.Hour)))
	_ = store.SetJSON(ctx, s, store.KeyUser, models.User{ID: "u1"})

	sess, err := open(ctx, s, func() time.Time { return now })
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	if sess.IsAuthed() {
		t.Fatalf("expired token should be dropped")
	}
	if _, err := s.Get(ctx, store.KeyToken); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expired token still stored: %v", err)
	}
}

func TestExpiryOfValidToken(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(2 * time.Hour)
	_ = s.Set(ctx, store.KeyToken, signedToken(t, exp))

	sess, err := open(ctx, s, func() time.Time { return now })
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	got, ok := sess.Expiry()
	if !ok || !got.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("Expiry() = %v, %v; want %v", got, ok, exp)
	}

	sess.token = "not-a-jwt"
	if _, ok := sess.Expiry(); ok {
		t.Fatalf("opaque token should have no expiry")
	}
}
