// Package settings persists user preferences in the key-value store.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/liftlog/internal/progress"
)

// Key is the key-value store key holding the settings.
const Key = "settings"

const (
	maxMinutes = 9
	maxSeconds = 59
)

// Settings holds the user preferences.
type Settings struct {
	RestTimerEnabled bool `json:"restTimerEnabled"`
	RestTimerMinutes int  `json:"restTimerMinutes"`
	RestTimerSeconds int  `json:"restTimerSeconds"`
}

// Default returns the settings used before anything is saved.
func Default() Settings {
	return Settings{RestTimerEnabled: true, RestTimerMinutes: 1, RestTimerSeconds: 30}
}

// RestDuration returns the configured rest time.
func (s Settings) RestDuration() time.Duration {
	return time.Duration(s.RestTimerMinutes)*time.Minute + time.Duration(s.RestTimerSeconds)*time.Second
}

func (s Settings) clamped() Settings {
	s.RestTimerMinutes = clamp(s.RestTimerMinutes, 0, maxMinutes)
	s.RestTimerSeconds = clamp(s.RestTimerSeconds, 0, maxSeconds)
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Service reads and updates the settings record.
type Service struct {
	store progress.Store
}

// NewService creates a Service backed by store.
func NewService(store progress.Store) *Service {
	return &Service{store: store}
}

// Load returns the saved settings, or the defaults when none are saved or the record is unreadable.
func (s *Service) Load(ctx context.Context) (Settings, error) {
	data, err := s.store.Get(ctx, Key)
	if errors.Is(err, progress.ErrKeyNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("store.Get(%s) > %w", Key, err)
	}

	settings := Default()
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("ignoring unreadable settings", slog.Any("error", err))
		return Default(), nil
	}
	return settings.clamped(), nil
}

// Save stores settings after clamping the rest time.
func (s *Service) Save(ctx context.Context, settings Settings) (Settings, error) {
	settings = settings.clamped()
	data, err := json.Marshal(settings)
	if err != nil {
		return Settings{}, fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := s.store.Set(ctx, Key, data); err != nil {
		return Settings{}, fmt.Errorf("store.Set(%s) > %w", Key, err)
	}
	return settings, nil
}

// ToggleRestTimer flips whether the rest timer starts after a set is logged.
func (s *Service) ToggleRestTimer(ctx context.Context) (Settings, error) {
	return s.update(ctx, func(settings *Settings) {
		settings.RestTimerEnabled = !settings.RestTimerEnabled
	})
}

// SetRestTime sets the rest time, clamping minutes to 0-9 and seconds to 0-59.
func (s *Service) SetRestTime(ctx context.Context, minutes, seconds int) (Settings, error) {
	return s.update(ctx, func(settings *Settings) {
		settings.RestTimerMinutes = minutes
		settings.RestTimerSeconds = seconds
	})
}

func (s *Service) update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	fn(&settings)
	return s.Save(ctx, settings)
}
