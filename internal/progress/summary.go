package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

// SessionFinder loads stored sessions by ID, skipping missing ones.
type SessionFinder interface {
	FindByIDs(ctx context.Context, ids []int64) ([]workout.Session, error)
}

// Completer records that a menu was finished.
type Completer interface {
	MarkCompleted(ctx context.Context, menuID int64, at time.Time) error
}

// Summary is the reconciled state of an in-progress menu session.
type Summary struct {
	MenuID         int64             `json:"menuId"`
	StartedAt      time.Time         `json:"startedAt"`
	Elapsed        time.Duration     `json:"elapsed"`
	CompletedCount int               `json:"completedCount"`
	TotalItems     int               `json:"totalItems"`
	TotalSets      int               `json:"totalSets"`
	TotalReps      int               `json:"totalReps"`
	Sessions       []workout.Session `json:"sessions"`
}

// Summarize reconciles the progress with the menu's items and the stored sessions.
// Sessions are listed in menu order; sessions deleted since they were recorded are skipped.
func (t *Tracker) Summarize(ctx context.Context, items []menu.ItemWithExercise, finder SessionFinder, now time.Time) (*Summary, error) {
	if t.progress == nil {
		return nil, fmt.Errorf("menu %d: %w", t.menuID, ErrNoActiveSession)
	}

	var ids []int64
	seen := map[int64]bool{}
	completed := 0
	for _, item := range items {
		if seen[item.ExerciseID] {
			continue
		}
		seen[item.ExerciseID] = true
		sessionIDs := t.SessionIDs(item.ExerciseID)
		if len(sessionIDs) > 0 {
			completed++
		}
		ids = append(ids, sessionIDs...)
	}

	found, err := finder.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load sessions of menu %d: %w", t.menuID, err)
	}
	byID := make(map[int64]workout.Session, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	summary := &Summary{
		MenuID:         t.menuID,
		StartedAt:      t.progress.StartedAt,
		Elapsed:        now.Sub(t.progress.StartedAt),
		CompletedCount: completed,
		TotalItems:     len(seen),
		Sessions:       []workout.Session{},
	}
	if summary.Elapsed < 0 {
		summary.Elapsed = 0
	}
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			slog.Warn("recorded session no longer exists",
				slog.Int64("menu_id", t.menuID),
				slog.Int64("session_id", id))
			continue
		}
		summary.Sessions = append(summary.Sessions, s)
		summary.TotalSets += s.Sets()
		summary.TotalReps += s.RepsPerSet() * s.Sets()
	}
	return summary, nil
}

// Finish marks the menu completed at now and clears its progress.
func (t *Tracker) Finish(ctx context.Context, completer Completer, now time.Time) error {
	if err := completer.MarkCompleted(ctx, t.menuID, now); err != nil {
		return fmt.Errorf("mark menu %d completed: %w", t.menuID, err)
	}
	return t.Clear(ctx)
}

// FormatElapsed renders a session length as "45 min" or "1 h 5 min".
func FormatElapsed(d time.Duration) string {
	mins := int(d / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	return fmt.Sprintf("%d h %d min", mins/60, mins%60)
}
