// Package session holds the signed-in account. It replaces ambient reads of
// persisted auth state: callers get a *Session at startup and pass it along.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/store"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Session struct {
	store store.Store
	now   func() time.Time

	mu    sync.RWMutex
	token string
	user  *models.User
}

// Open restores the session persisted in s. A corrupt user record or an
// expired token leaves the session logged out.
func Open(ctx context.Context, s store.Store) (*Session, error) {
	return open(ctx, s, time.Now)
}

func open(ctx context.Context, s store.Store, now func() time.Time) (*Session, error) {
	sess := &Session{store: s, now: now}

	token, err := s.Get(ctx, store.KeyToken)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("read session: %w", err)
	}
	sess.token = strings.TrimSpace(token)

	var user models.User
	if err := store.GetJSON(ctx, s, store.KeyUser, &user); err == nil {
		sess.user = &user
	}

	if sess.token != "" {
		if exp, ok := tokenExpiry(sess.token); ok && !exp.After(now()) {
			if err := sess.Logout(ctx); err != nil {
				return nil, err
			}
		}
	}
	return sess, nil
}

// Login persists a fresh token and account.
func (s *Session) Login(ctx context.Context, res models.AuthResult) error {
	if strings.TrimSpace(res.Token) == "" {
		return fmt.Errorf("login response has no token")
	}
	if err := s.store.Set(ctx, store.KeyToken, res.Token); err != nil {
		return err
	}
	if err := store.SetJSON(ctx, s.store, store.KeyUser, res.User); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := res.User
	s.token = res.Token
	s.user = &user
	return nil
}

// Logout removes the token and account from memory and from the store.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, store.KeyToken); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.KeyUser)
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in account, if any.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthed() bool {
	return s.Token() != ""
}

func (s *Session) IsCompany() bool {
	user, ok := s.User()
	return ok && user.IsCompany()
}

// Require returns the account or ErrNotLoggedIn.
func (s *Session) Require() (models.User, error) {
	user, ok := s.User()
	if !s.IsAuthed() || !ok {
		return models.User{}, ErrNotLoggedIn
	}
	return user, nil
}

// Expiry reports the exp claim of the token when it is a JWT carrying one.
func (s *Session) Expiry() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

// tokenExpiry reads exp without verifying the signature; the backend is the
// only party that holds the key.
func tokenExpiry(raw string) (time.Time, bool) {
	if strings.Count(raw, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	default:
		return time.Time{}, false
	}
}
