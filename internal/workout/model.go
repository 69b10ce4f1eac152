// Package workout stores recorded workout sessions and their per-set detail.
package workout

import (
	"time"

	"github.com/at-ishikawa/liftlog/internal/exercise"
)

// Session is a single recorded performance of an exercise.
type Session struct {
	ID           int64     `db:"id" json:"id" yaml:"-"`
	ExerciseID   int64     `db:"exercise_id" json:"exerciseId" yaml:"-"`
	Date         time.Time `db:"date" json:"date" yaml:"date"`
	Mood         *int      `db:"mood" json:"mood,omitempty" yaml:"mood,omitempty"`
	Weight       *float64  `db:"weight" json:"weight,omitempty" yaml:"weight,omitempty"`
	Reps         *int      `db:"reps" json:"reps,omitempty" yaml:"reps,omitempty"`
	SetCount     *int      `db:"set_count" json:"setCount,omitempty" yaml:"set_count,omitempty"`
	Duration     *int      `db:"duration" json:"duration,omitempty" yaml:"duration,omitempty"`
	Difficulty   *int      `db:"difficulty" json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	IsBodyweight bool      `db:"is_bodyweight" json:"isBodyweight" yaml:"is_bodyweight"`
	Notes        *string   `db:"notes" json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt" yaml:"created_at"`
}

// Sets returns the recorded set count, or 0 when unknown.
func (s Session) Sets() int {
	if s.SetCount == nil {
		return 0
	}
	return *s.SetCount
}

// RepsPerSet returns the recorded reps per set, or 0 when unknown.
func (s Session) RepsPerSet() int {
	if s.Reps == nil {
		return 0
	}
	return *s.Reps
}

// WeightKg returns the recorded weight, or 0 for bodyweight and unknown weights.
func (s Session) WeightKg() float64 {
	if s.Weight == nil {
		return 0
	}
	return *s.Weight
}

// Set is the detail of one set inside a session.
type Set struct {
	ID        int64    `db:"id" json:"id" yaml:"-"`
	SessionID int64    `db:"session_id" json:"sessionId" yaml:"-"`
	SetNumber int      `db:"set_number" json:"setNumber" yaml:"set_number"`
	Reps      *int     `db:"reps" json:"reps,omitempty" yaml:"reps,omitempty"`
	Weight    *float64 `db:"weight" json:"weight,omitempty" yaml:"weight,omitempty"`
	Duration  *int     `db:"duration" json:"duration,omitempty" yaml:"duration,omitempty"`
	Notes     *string  `db:"notes" json:"notes,omitempty" yaml:"notes,omitempty"`
}

// CreateInput holds the fields of a new session.
// A non-nil Duration makes the session time based; its reps are not stored.
type CreateInput struct {
	ExerciseID   int64     `json:"exerciseId" validate:"required,gt=0"`
	Date         time.Time `json:"date" validate:"required"`
	Weight       *float64  `json:"weight" validate:"omitempty,gte=0"`
	Reps         *int      `json:"reps" validate:"omitempty,gte=0"`
	SetCount     int       `json:"setCount" validate:"gte=1"`
	Duration     *int      `json:"duration" validate:"omitempty,gt=0"`
	Difficulty   int       `json:"difficulty" validate:"gte=1,lte=5"`
	IsBodyweight bool      `json:"isBodyweight"`
	Notes        *string   `json:"notes"`
}

// SetInput holds the fields of one set to add to a session.
type SetInput struct {
	SetNumber int      `json:"setNumber" validate:"gte=1"`
	Reps      *int     `json:"reps" validate:"omitempty,gte=0"`
	Weight    *float64 `json:"weight" validate:"omitempty,gte=0"`
	Duration  *int     `json:"duration" validate:"omitempty,gte=0"`
	Notes     *string  `json:"notes"`
}

// ListOptions filters List. Zero values mean no filter and no limit.
type ListOptions struct {
	ExerciseID int64
	Limit      int
}

// BodyPartDate is one (session date, body part) pair of the trained exercise.
type BodyPartDate struct {
	Date     time.Time         `db:"date"`
	BodyPart exercise.BodyPart `db:"body_part"`
}
