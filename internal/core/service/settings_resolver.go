package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

// WebviewURLKey is the settings key resolved at login time for the client
// configuration bundle.
const WebviewURLKey = "webview_url"

// SettingsResolver walks an ordered list of sources and returns the first
// value any of them offers. Lookup errors are logged and treated as a
// decline, so resolution never fails; the final source is expected to
// always answer.
type SettingsResolver struct {
	sources []ports.SettingSource
	log     zerolog.Logger
}

func NewSettingsResolver(log zerolog.Logger, sources ...ports.SettingSource) *SettingsResolver {
	return &SettingsResolver{sources: sources, log: log}
}

// Resolve returns the value for key, or "" when no source has an opinion.
func (r *SettingsResolver) Resolve(ctx context.Context, key string) string {
	for _, src := range r.sources {
		value, ok, err := src.Lookup(ctx, key)
		if err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("settings source failed, falling through")
			continue
		}
		if ok {
			return value
		}
	}
	return ""
}

// StoreSource reads persisted settings records.
type StoreSource struct {
	repo ports.SettingsRepository
}

func NewStoreSource(repo ports.SettingsRepository) *StoreSource {
	return &StoreSource{repo: repo}
}

func (s *StoreSource) Lookup(ctx context.Context, key string) (string, bool, error) {
	value, err := s.repo.Get(ctx, key)
	if errors.Is(err, domain.ErrSettingNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, value != "", nil
}

// EnvSource maps a settings key to an environment variable (upper-cased).
type EnvSource struct{}

func (EnvSource) Lookup(_ context.Context, key string) (string, bool, error) {
	value := os.Getenv(envName(key))
	return value, value != "", nil
}

func envName(key string) string {
	out := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// DefaultWebviewSource computes a last-resort webview URL from the service's
// own listening port. It always answers.
type DefaultWebviewSource struct {
	port string
}

func NewDefaultWebviewSource(port string) *DefaultWebviewSource {
	return &DefaultWebviewSource{port: port}
}

func (s *DefaultWebviewSource) Lookup(_ context.Context, key string) (string, bool, error) {
	if key != WebviewURLKey {
		return "", false, nil
	}
	return fmt.Sprintf("http://localhost:%s/webview", s.port), true, nil
}
