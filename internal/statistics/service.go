package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

// Service loads sessions from the repositories and aggregates them.
type Service struct {
	exercises exercise.Repository
	sessions  workout.Repository
	loc       *time.Location
}

// NewService creates a Service bucketing days in loc.
func NewService(exercises exercise.Repository, sessions workout.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{exercises: exercises, sessions: sessions, loc: loc}
}

// Location returns the time zone used for day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Overview returns the dashboard counts as of now.
func (s *Service) Overview(ctx context.Context, now time.Time) (Overview, error) {
	sessions, err := s.sessions.List(ctx, workout.ListOptions{})
	if err != nil {
		return Overview{}, fmt.Errorf("list sessions: %w", err)
	}
	return CalculateOverview(sessions, now, s.loc), nil
}

// ExerciseProgress returns the latest limit sessions of an exercise, oldest first.
// A non-positive limit uses DefaultProgressLimit.
func (s *Service) ExerciseProgress(ctx context.Context, exerciseID int64, limit int) ([]ProgressPoint, error) {
	if limit <= 0 {
		limit = DefaultProgressLimit
	}
	sessions, err := s.sessions.List(ctx, workout.ListOptions{ExerciseID: exerciseID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list sessions of exercise %d: %w", exerciseID, err)
	}
	sets, err := s.sessions.FindSetsBySessionIDs(ctx, ids(sessions))
	if err != nil {
		return nil, fmt.Errorf("load sets: %w", err)
	}
	return CalculateExerciseProgress(sessions, sets), nil
}

// ProgressTrend returns one point per session of an exercise between the days of start and end.
func (s *Service) ProgressTrend(ctx context.Context, exerciseID int64, start, end time.Time) ([]TrendPoint, error) {
	from, to := ExportRange(start, end, s.loc)
	sessions, err := s.sessions.FindByExerciseBetween(ctx, exerciseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions of exercise %d: %w", exerciseID, err)
	}
	sets, err := s.sessions.FindSetsBySessionIDs(ctx, ids(sessions))
	if err != nil {
		return nil, fmt.Errorf("load sets: %w", err)
	}
	return CalculateProgressTrend(sessions, sets, s.loc), nil
}

// BodyPartDistribution returns training days per body part over the last four weeks.
func (s *Service) BodyPartDistribution(ctx context.Context, now time.Time) ([]BodyPartStat, error) {
	rows, err := s.sessions.FindBodyPartDates(ctx, BodyPartWindowStart(now, s.loc))
	if err != nil {
		return nil, fmt.Errorf("load body part dates: %w", err)
	}
	return CalculateBodyPartDistribution(rows, now, s.loc), nil
}

// Export summarizes every session between the days of start and end.
func (s *Service) Export(ctx context.Context, start, end time.Time) (ExportData, error) {
	exercises, err := s.exercises.FindAll(ctx)
	if err != nil {
		return ExportData{}, fmt.Errorf("list exercises: %w", err)
	}
	from, to := ExportRange(start, end, s.loc)
	sessions, err := s.sessions.FindBetween(ctx, from, to)
	if err != nil {
		return ExportData{}, fmt.Errorf("list sessions: %w", err)
	}
	sets, err := s.sessions.FindSetsBySessionIDs(ctx, ids(sessions))
	if err != nil {
		return ExportData{}, fmt.Errorf("load sets: %w", err)
	}
	return BuildExport(exercises, sessions, sets, from, to, s.loc), nil
}

func ids(sessions []workout.Session) []int64 {
	result := make([]int64, len(sessions))
	for i, s := range sessions {
		result[i] = s.ID
	}
	return result
}
