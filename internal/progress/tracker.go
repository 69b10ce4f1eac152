package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const keyPrefix = "menu_session_"

// ErrNoActiveSession is returned when recording into a menu that has not been started.
var ErrNoActiveSession = errors.New("no active menu session")

// Key returns the storage key of a menu's progress.
func Key(menuID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, menuID)
}

// Record lists the sessions logged for one exercise of the menu.
type Record struct {
	ExerciseID int64   `json:"exerciseId"`
	SessionIDs []int64 `json:"sessionIds"`
}

// Progress is the stored state of an in-progress menu session.
type Progress struct {
	MenuID    int64     `json:"menuId"`
	StartedAt time.Time `json:"startedAt"`
	Records   []Record  `json:"records"`
}

func (p *Progress) record(exerciseID int64) *Record {
	for i := range p.Records {
		if p.Records[i].ExerciseID == exerciseID {
			return &p.Records[i]
		}
	}
	return nil
}

// Tracker reads and writes the progress of one menu.
// It holds the last loaded state; every write replaces the stored value.
type Tracker struct {
	store    Store
	menuID   int64
	now      func() time.Time
	progress *Progress
}

// NewTracker returns a tracker with no loaded state.
func NewTracker(store Store, menuID int64) *Tracker {
	return &Tracker{store: store, menuID: menuID, now: time.Now}
}

// Open returns a tracker with the stored progress loaded.
func Open(ctx context.Context, store Store, menuID int64) (*Tracker, error) {
	t := NewTracker(store, menuID)
	if err := t.Load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// MenuID returns the menu the tracker belongs to.
func (t *Tracker) MenuID() int64 {
	return t.menuID
}

// Load reads the stored progress. A missing or unreadable value means no active session.
func (t *Tracker) Load(ctx context.Context) error {
	data, err := t.store.Get(ctx, Key(t.menuID))
	if errors.Is(err, ErrKeyNotFound) {
		t.progress = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load progress of menu %d: %w", t.menuID, err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("discarding unreadable menu progress",
			slog.Int64("menu_id", t.menuID),
			slog.String("error", err.Error()))
		t.progress = nil
		return nil
	}
	t.progress = &p
	return nil
}

// Start begins a new session, replacing any stored progress.
func (t *Tracker) Start(ctx context.Context) (*Progress, error) {
	p := &Progress{
		MenuID:    t.menuID,
		StartedAt: t.now().UTC(),
		Records:   []Record{},
	}
	if err := t.save(ctx, p); err != nil {
		return nil, err
	}
	slog.Debug("menu session started", slog.Int64("menu_id", t.menuID))
	return t.Progress(), nil
}

// RecordExercise appends a logged session to the exercise's record.
func (t *Tracker) RecordExercise(ctx context.Context, exerciseID, sessionID int64) error {
	if t.progress == nil {
		return fmt.Errorf("menu %d: %w", t.menuID, ErrNoActiveSession)
	}

	next := t.Progress()
	if r := next.record(exerciseID); r != nil {
		r.SessionIDs = append(r.SessionIDs, sessionID)
	} else {
		next.Records = append(next.Records, Record{ExerciseID: exerciseID, SessionIDs: []int64{sessionID}})
	}
	if err := t.save(ctx, next); err != nil {
		return err
	}
	slog.Debug("menu exercise recorded",
		slog.Int64("menu_id", t.menuID),
		slog.Int64("exercise_id", exerciseID),
		slog.Int64("session_id", sessionID))
	return nil
}

// Clear removes the stored progress.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.store.Delete(ctx, Key(t.menuID)); err != nil {
		return fmt.Errorf("clear progress of menu %d: %w", t.menuID, err)
	}
	t.progress = nil
	return nil
}

func (t *Tracker) save(ctx context.Context, p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("json.Marshal(progress) > %w", err)
	}
	if err := t.store.Set(ctx, Key(t.menuID), data); err != nil {
		return fmt.Errorf("save progress of menu %d: %w", t.menuID, err)
	}
	t.progress = p
	return nil
}

// HasActiveSession reports whether progress is loaded.
func (t *Tracker) HasActiveSession() bool {
	return t.progress != nil
}

// Progress returns a copy of the loaded progress, or nil.
func (t *Tracker) Progress() *Progress {
	if t.progress == nil {
		return nil
	}
	p := *t.progress
	p.Records = make([]Record, len(t.progress.Records))
	for i, r := range t.progress.Records {
		p.Records[i] = Record{ExerciseID: r.ExerciseID, SessionIDs: append([]int64{}, r.SessionIDs...)}
	}
	return &p
}

// IsExerciseCompleted reports whether at least one session was logged for the exercise.
func (t *Tracker) IsExerciseCompleted(exerciseID int64) bool {
	return t.progress != nil && t.progress.record(exerciseID) != nil
}

// SessionIDs returns the sessions logged for the exercise in logging order.
func (t *Tracker) SessionIDs(exerciseID int64) []int64 {
	if t.progress == nil {
		return []int64{}
	}
	r := t.progress.record(exerciseID)
	if r == nil {
		return []int64{}
	}
	return append([]int64{}, r.SessionIDs...)
}

// CompletedCount returns the number of exercises with at least one session.
func (t *Tracker) CompletedCount() int {
	if t.progress == nil {
		return 0
	}
	return len(t.progress.Records)
}

// StartedAt returns when the session started and whether one is active.
func (t *Tracker) StartedAt() (time.Time, bool) {
	if t.progress == nil {
		return time.Time{}, false
	}
	return t.progress.StartedAt, true
}

// ActiveMenus returns the menus among menuIDs that have stored progress, in the given order.
func ActiveMenus(ctx context.Context, store Store, menuIDs []int64) ([]int64, error) {
	active := []int64{}
	for _, id := range menuIDs {
		_, err := store.Get(ctx, Key(id))
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("check progress of menu %d: %w", id, err)
		}
		active = append(active, id)
	}
	return active, nil
}
