// Package store persists small pieces of client state (session, theme,
// saved-job cache, profiles) under string keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("key not found")

const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyTheme     = "theme"
	KeySavedJobs = "jobhunting_saved_jobs"

	profileKeyPrefix = "profile_v2_"
)

// ProfileKey returns the key of the profile blob for a user id.
func ProfileKey(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "anon"
	}
	return profileKeyPrefix + userID
}

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the value at key into out.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}

// Open returns a redis store when url is a redis URL and a file store at path otherwise.
func Open(ctx context.Context, path, url string) (Store, error) {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://") {
		return NewRedisStore(ctx, url)
	}
	if url != "" {
		return nil, fmt.Errorf("unsupported store url: %s", url)
	}
	return NewFileStore(path)
}
