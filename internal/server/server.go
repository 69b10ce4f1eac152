// Package server provides Connect RPC handlers for the workout services.
// Messages are plain Go structs encoded as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
	"github.com/at-ishikawa/liftlog/internal/settings"
	"github.com/at-ishikawa/liftlog/internal/statistics"
	"github.com/at-ishikawa/liftlog/internal/validation"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

const servicePrefix = "/liftlog.v1."

// Codec encodes messages as JSON. It replaces connect's protobuf JSON codec.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Server holds the dependencies of every service.
type Server struct {
	exercises exercise.Repository
	workouts  workout.Repository
	menus     menu.Repository
	store     progress.Store
	stats     *statistics.Service
	settings  *settings.Service
	now       func() time.Time
}

// NewServer creates a Server. Days are bucketed in loc.
func NewServer(exercises exercise.Repository, workouts workout.Repository, menus menu.Repository, store progress.Store, loc *time.Location) *Server {
	return &Server{
		exercises: exercises,
		workouts:  workouts,
		menus:     menus,
		store:     store,
		stats:     statistics.NewService(exercises, workouts, loc),
		settings:  settings.NewService(store),
		now:       time.Now,
	}
}

// Procedure returns the route of a method of a service.
func Procedure(service, method string) string {
	return servicePrefix + service + "/" + method
}

// Handler returns a mux serving every procedure.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerExerciseService(mux)
	s.registerWorkoutService(mux)
	s.registerMenuService(mux)
	s.registerSessionService(mux)
	s.registerStatsService(mux)
	s.registerSettingsService(mux)
	return mux
}

// unary registers fn under service/method. Requests are validated before fn runs.
func unary[Req, Res any](mux *http.ServeMux, service, method string, fn func(context.Context, *Req) (*Res, error)) {
	procedure := Procedure(service, method)
	mux.Handle(procedure, connect.NewUnaryHandler(
		procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			if err := validation.Struct(req.Msg); err != nil {
				return nil, toConnectError(procedure, err)
			}
			res, err := fn(ctx, req.Msg)
			if err != nil {
				return nil, toConnectError(procedure, err)
			}
			return connect.NewResponse(res), nil
		},
		connect.WithCodec(Codec{}),
	))
}

func toConnectError(procedure string, err error) error {
	switch {
	case validation.IsValidationError(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, exercise.ErrNotFound),
		errors.Is(err, workout.ErrNotFound),
		errors.Is(err, menu.ErrNotFound),
		errors.Is(err, menu.ErrItemNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, progress.ErrNoActiveSession):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	slog.Error("request failed", slog.String("procedure", procedure), slog.Any("error", err))
	return connect.NewError(connect.CodeInternal, fmt.Errorf("internal error"))
}

// CORSMiddleware allows browser clients from allowedOrigins.
func CORSMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Empty is the request or response of methods without fields.
type Empty struct{}

// IDRequest addresses one record.
type IDRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}
