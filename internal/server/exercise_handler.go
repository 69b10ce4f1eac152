package server

import (
	"context"
	"net/http"

	"github.com/at-ishikawa/liftlog/internal/exercise"
)

const exerciseService = "ExerciseService"

type ListExercisesRequest struct {
	BodyPart exercise.BodyPart `json:"bodyPart" validate:"omitempty,bodypart"`
}

type ListExercisesResponse struct {
	Exercises []exercise.Exercise `json:"exercises"`
}

type ExerciseResponse struct {
	Exercise *exercise.Exercise `json:"exercise"`
}

type UpdateExerciseRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	exercise.UpdateInput
}

func (s *Server) registerExerciseService(mux *http.ServeMux) {
	unary(mux, exerciseService, "List", s.listExercises)
	unary(mux, exerciseService, "Get", s.getExercise)
	unary(mux, exerciseService, "Create", s.createExercise)
	unary(mux, exerciseService, "Update", s.updateExercise)
	unary(mux, exerciseService, "Delete", s.deleteExercise)
}

// listExercises returns all exercises, or the active ones tagged with a body part.
func (s *Server) listExercises(ctx context.Context, req *ListExercisesRequest) (*ListExercisesResponse, error) {
	var exercises []exercise.Exercise
	var err error
	if req.BodyPart == "" {
		exercises, err = s.exercises.FindAll(ctx)
	} else {
		exercises, err = s.exercises.FindByBodyPart(ctx, req.BodyPart)
	}
	if err != nil {
		return nil, err
	}
	return &ListExercisesResponse{Exercises: nonNil(exercises)}, nil
}

func (s *Server) getExercise(ctx context.Context, req *IDRequest) (*ExerciseResponse, error) {
	e, err := s.exercises.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &ExerciseResponse{Exercise: e}, nil
}

func (s *Server) createExercise(ctx context.Context, req *exercise.CreateInput) (*ExerciseResponse, error) {
	e, err := s.exercises.Create(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &ExerciseResponse{Exercise: e}, nil
}

func (s *Server) updateExercise(ctx context.Context, req *UpdateExerciseRequest) (*ExerciseResponse, error) {
	if err := s.exercises.Update(ctx, req.ID, req.UpdateInput); err != nil {
		return nil, err
	}
	return s.getExercise(ctx, &IDRequest{ID: req.ID})
}

func (s *Server) deleteExercise(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := s.exercises.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
