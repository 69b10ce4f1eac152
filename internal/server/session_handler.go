package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
	"github.com/at-ishikawa/liftlog/internal/validation"
)

const sessionService = "SessionService"

type MenuSessionRequest struct {
	MenuID int64 `json:"menuId" validate:"required,gt=0"`
}

type RecordRequest struct {
	MenuID     int64 `json:"menuId" validate:"required,gt=0"`
	ExerciseID int64 `json:"exerciseId" validate:"required,gt=0"`
	SessionID  int64 `json:"sessionId" validate:"required,gt=0"`
}

type ItemProgress struct {
	menu.ItemWithExercise
	Goal       string  `json:"goal"`
	Completed  bool    `json:"completed"`
	SessionIDs []int64 `json:"sessionIds"`
}

type MenuSessionResponse struct {
	Active   bool               `json:"active"`
	Progress *progress.Progress `json:"progress,omitempty"`
	Items    []ItemProgress     `json:"items"`
}

type SummaryResponse struct {
	Summary *progress.Summary `json:"summary"`
	Elapsed string            `json:"elapsed"`
}

func (s *Server) registerSessionService(mux *http.ServeMux) {
	unary(mux, sessionService, "Start", s.startSession)
	unary(mux, sessionService, "Record", s.recordExercise)
	unary(mux, sessionService, "Get", s.getSession)
	unary(mux, sessionService, "Summary", s.summarizeSession)
	unary(mux, sessionService, "Finish", s.finishSession)
	unary(mux, sessionService, "Clear", s.clearSession)
}

func (s *Server) openTracker(ctx context.Context, menuID int64) (*progress.Tracker, []menu.ItemWithExercise, error) {
	if _, err := s.menus.FindByID(ctx, menuID); err != nil {
		return nil, nil, err
	}
	items, err := s.menus.Items(ctx, menuID)
	if err != nil {
		return nil, nil, err
	}
	tracker, err := progress.Open(ctx, s.store, menuID)
	if err != nil {
		return nil, nil, err
	}
	return tracker, items, nil
}

func sessionResponse(tracker *progress.Tracker, items []menu.ItemWithExercise) *MenuSessionResponse {
	res := &MenuSessionResponse{
		Active:   tracker.HasActiveSession(),
		Progress: tracker.Progress(),
		Items:    make([]ItemProgress, 0, len(items)),
	}
	for _, item := range items {
		res.Items = append(res.Items, ItemProgress{
			ItemWithExercise: item,
			Goal:             menu.FormatGoal(item.Item),
			Completed:        tracker.IsExerciseCompleted(item.ExerciseID),
			SessionIDs:       tracker.SessionIDs(item.ExerciseID),
		})
	}
	return res
}

// startSession begins a new session of the menu, discarding earlier progress.
func (s *Server) startSession(ctx context.Context, req *MenuSessionRequest) (*MenuSessionResponse, error) {
	tracker, items, err := s.openTracker(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	if _, err := tracker.Start(ctx); err != nil {
		return nil, err
	}
	return sessionResponse(tracker, items), nil
}

// recordExercise marks an exercise of the menu as done by a logged session.
func (s *Server) recordExercise(ctx context.Context, req *RecordRequest) (*MenuSessionResponse, error) {
	tracker, items, err := s.openTracker(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	session, err := s.workouts.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.ExerciseID != req.ExerciseID {
		return nil, &validation.Error{Messages: []string{
			fmt.Sprintf("session %d belongs to exercise %d, not %d", session.ID, session.ExerciseID, req.ExerciseID),
		}}
	}
	if err := tracker.RecordExercise(ctx, req.ExerciseID, req.SessionID); err != nil {
		return nil, err
	}
	return sessionResponse(tracker, items), nil
}

func (s *Server) getSession(ctx context.Context, req *MenuSessionRequest) (*MenuSessionResponse, error) {
	tracker, items, err := s.openTracker(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(tracker, items), nil
}

func (s *Server) summarizeSession(ctx context.Context, req *MenuSessionRequest) (*SummaryResponse, error) {
	tracker, items, err := s.openTracker(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	summary, err := tracker.Summarize(ctx, items, s.workouts, s.now())
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{Summary: summary, Elapsed: progress.FormatElapsed(summary.Elapsed)}, nil
}

// finishSession returns the final summary, marks the menu completed and clears the progress.
func (s *Server) finishSession(ctx context.Context, req *MenuSessionRequest) (*SummaryResponse, error) {
	tracker, items, err := s.openTracker(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	summary, err := tracker.Summarize(ctx, items, s.workouts, now)
	if err != nil {
		return nil, err
	}
	if err := tracker.Finish(ctx, s.menus, now); err != nil {
		return nil, err
	}
	return &SummaryResponse{Summary: summary, Elapsed: progress.FormatElapsed(summary.Elapsed)}, nil
}

func (s *Server) clearSession(ctx context.Context, req *MenuSessionRequest) (*Empty, error) {
	tracker, _, err := s.openTracker(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	if err := tracker.Clear(ctx); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}
