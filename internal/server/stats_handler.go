package server

import (
	"context"
	"net/http"
	"time"

	"github.com/at-ishikawa/liftlog/internal/report"
	"github.com/at-ishikawa/liftlog/internal/statistics"
	"github.com/at-ishikawa/liftlog/internal/validation"
)

const statsService = "StatsService"

type ExerciseProgressRequest struct {
	ExerciseID int64 `json:"exerciseId" validate:"required,gt=0"`
	Limit      int   `json:"limit" validate:"gte=0"`
}

type ExerciseProgressResponse struct {
	Points []statistics.ProgressPoint `json:"points"`
}

// DateRangeRequest selects whole days, either by preset or by YYYY-MM-DD dates.
type DateRangeRequest struct {
	Preset    string `json:"preset" validate:"omitempty,oneof=today 7d 30d this-month last-month"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type ProgressTrendRequest struct {
	ExerciseID int64 `json:"exerciseId" validate:"required,gt=0"`
	DateRangeRequest
}

type ProgressTrendResponse struct {
	Points []statistics.TrendPoint `json:"points"`
}

type BodyPartDistributionResponse struct {
	Stats []statistics.BodyPartStat `json:"stats"`
}

type ExportResponse struct {
	Data statistics.ExportData `json:"data"`
	Text string                `json:"text"`
}

func (s *Server) registerStatsService(mux *http.ServeMux) {
	unary(mux, statsService, "Overview", s.overview)
	unary(mux, statsService, "ExerciseProgress", s.exerciseProgress)
	unary(mux, statsService, "ProgressTrend", s.progressTrend)
	unary(mux, statsService, "BodyPartDistribution", s.bodyPartDistribution)
	unary(mux, statsService, "Export", s.export)
}

func (s *Server) dateRange(req DateRangeRequest) (time.Time, time.Time, error) {
	loc := s.stats.Location()
	if req.Preset != "" {
		return report.Preset(req.Preset).Range(s.now(), loc)
	}
	if req.StartDate == "" || req.EndDate == "" {
		return time.Time{}, time.Time{}, &validation.Error{Messages: []string{"either preset or startDate and endDate is required"}}
	}
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, &validation.Error{Messages: []string{"endDate must not be before startDate"}}
	}
	return start, end, nil
}

func (s *Server) overview(ctx context.Context, _ *Empty) (*statistics.Overview, error) {
	overview, err := s.stats.Overview(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *Server) exerciseProgress(ctx context.Context, req *ExerciseProgressRequest) (*ExerciseProgressResponse, error) {
	points, err := s.stats.ExerciseProgress(ctx, req.ExerciseID, req.Limit)
	if err != nil {
		return nil, err
	}
	return &ExerciseProgressResponse{Points: points}, nil
}

func (s *Server) progressTrend(ctx context.Context, req *ProgressTrendRequest) (*ProgressTrendResponse, error) {
	start, end, err := s.dateRange(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}
	points, err := s.stats.ProgressTrend(ctx, req.ExerciseID, start, end)
	if err != nil {
		return nil, err
	}
	return &ProgressTrendResponse{Points: points}, nil
}

func (s *Server) bodyPartDistribution(ctx context.Context, _ *Empty) (*BodyPartDistributionResponse, error) {
	stats, err := s.stats.BodyPartDistribution(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &BodyPartDistributionResponse{Stats: stats}, nil
}

// export returns the summary of the range with its shareable text rendering.
func (s *Server) export(ctx context.Context, req *DateRangeRequest) (*ExportResponse, error) {
	start, end, err := s.dateRange(*req)
	if err != nil {
		return nil, err
	}
	data, err := s.stats.Export(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &ExportResponse{Data: data, Text: report.ExportText(data)}, nil
}
