package server

import (
	"context"
	"net/http"

	"github.com/at-ishikawa/liftlog/internal/workout"
)

const workoutService = "WorkoutService"

type ListWorkoutsRequest struct {
	ExerciseID int64 `json:"exerciseId" validate:"gte=0"`
	Limit      int   `json:"limit" validate:"gte=0"`
}

type ListWorkoutsResponse struct {
	Sessions []workout.Session `json:"sessions"`
}

type CreateWorkoutRequest struct {
	workout.CreateInput
	Sets []workout.SetInput `json:"sets" validate:"dive"`
}

type WorkoutResponse struct {
	Session *workout.Session `json:"session"`
	Sets    []workout.Set    `json:"sets"`
	Summary string           `json:"summary"`
}

type RecentWorkoutsRequest struct {
	ExerciseID int64 `json:"exerciseId" validate:"required,gt=0"`
	Limit      int   `json:"limit" validate:"gte=0"`
}

func (s *Server) registerWorkoutService(mux *http.ServeMux) {
	unary(mux, workoutService, "List", s.listWorkouts)
	unary(mux, workoutService, "Get", s.getWorkout)
	unary(mux, workoutService, "Create", s.createWorkout)
	unary(mux, workoutService, "Delete", s.deleteWorkout)
	unary(mux, workoutService, "Recent", s.recentWorkouts)
}

func (s *Server) listWorkouts(ctx context.Context, req *ListWorkoutsRequest) (*ListWorkoutsResponse, error) {
	sessions, err := s.workouts.List(ctx, workout.ListOptions{ExerciseID: req.ExerciseID, Limit: req.Limit})
	if err != nil {
		return nil, err
	}
	return &ListWorkoutsResponse{Sessions: nonNil(sessions)}, nil
}

func (s *Server) getWorkout(ctx context.Context, req *IDRequest) (*WorkoutResponse, error) {
	session, err := s.workouts.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	sets, err := s.workouts.FindSetsBySessionIDs(ctx, []int64{session.ID})
	if err != nil {
		return nil, err
	}
	return &WorkoutResponse{Session: session, Sets: nonNil(sets), Summary: workout.Summary(*session)}, nil
}

// createWorkout records a session and its optional per-set detail.
func (s *Server) createWorkout(ctx context.Context, req *CreateWorkoutRequest) (*WorkoutResponse, error) {
	session, err := s.workouts.Create(ctx, req.CreateInput)
	if err != nil {
		return nil, err
	}
	if len(req.Sets) > 0 {
		if err := s.workouts.AddSets(ctx, session.ID, req.Sets); err != nil {
			return nil, err
		}
	}
	return s.getWorkout(ctx, &IDRequest{ID: session.ID})
}

func (s *Server) deleteWorkout(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := s.workouts.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// recentWorkouts returns the latest sessions of an exercise, shown while logging a new one.
func (s *Server) recentWorkouts(ctx context.Context, req *RecentWorkoutsRequest) (*ListWorkoutsResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = workout.DefaultRecentLimit
	}
	sessions, err := s.workouts.FindRecentByExercise(ctx, req.ExerciseID, limit)
	if err != nil {
		return nil, err
	}
	return &ListWorkoutsResponse{Sessions: nonNil(sessions)}, nil
}
