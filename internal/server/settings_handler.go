package server

import (
	"context"
	"net/http"

	"github.com/at-ishikawa/liftlog/internal/settings"
)

const settingsService = "SettingsService"

type SetRestTimeRequest struct {
	Minutes int `json:"minutes" validate:"gte=0,lte=9"`
	Seconds int `json:"seconds" validate:"gte=0,lte=59"`
}

func (s *Server) registerSettingsService(mux *http.ServeMux) {
	unary(mux, settingsService, "Get", s.getSettings)
	unary(mux, settingsService, "ToggleRestTimer", s.toggleRestTimer)
	unary(mux, settingsService, "SetRestTime", s.setRestTime)
}

func (s *Server) getSettings(ctx context.Context, _ *Empty) (*settings.Settings, error) {
	current, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &current, nil
}

func (s *Server) toggleRestTimer(ctx context.Context, _ *Empty) (*settings.Settings, error) {
	updated, err := s.settings.ToggleRestTimer(ctx)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Server) setRestTime(ctx context.Context, req *SetRestTimeRequest) (*settings.Settings, error) {
	updated, err := s.settings.SetRestTime(ctx, req.Minutes, req.Seconds)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
