// Package menu stores training menus and their ordered exercise items.
package menu

import (
	"fmt"
	"strings"
	"time"
)

// Menu is a named list of exercises performed together.
type Menu struct {
	ID              int64      `db:"id" json:"id" yaml:"-"`
	Name            string     `db:"name" json:"name" yaml:"name"`
	Description     *string    `db:"description" json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt" yaml:"created_at"`
	LastCompletedAt *time.Time `db:"last_completed_at" json:"lastCompletedAt,omitempty" yaml:"last_completed_at,omitempty"`
}

// Item is one exercise of a menu with an optional goal.
type Item struct {
	ID             int64   `db:"id" json:"id"`
	MenuID         int64   `db:"menu_id" json:"menuId"`
	ExerciseID     int64   `db:"exercise_id" json:"exerciseId"`
	SortOrder      int     `db:"sort_order" json:"sortOrder"`
	TargetSets     *int    `db:"target_sets" json:"targetSets,omitempty"`
	TargetReps     *int    `db:"target_reps" json:"targetReps,omitempty"`
	TargetDuration *int    `db:"target_duration" json:"targetDuration,omitempty"`
	TargetText     *string `db:"target_text" json:"targetText,omitempty"`
}

// ItemWithExercise is an item joined with its exercise name.
type ItemWithExercise struct {
	Item
	ExerciseName string `db:"exercise_name" json:"exerciseName"`
}

// Goal is the target of a menu item. A non-blank Text wins over the numeric targets.
type Goal struct {
	Sets     *int   `json:"sets" validate:"omitempty,gte=1"`
	Reps     *int   `json:"reps" validate:"omitempty,gte=1"`
	Duration *int   `json:"duration" validate:"omitempty,gte=1"`
	Text     string `json:"text" validate:"max=255"`
}

// GoalOf returns the goal currently stored on item.
func GoalOf(item Item) Goal {
	g := Goal{Sets: item.TargetSets, Reps: item.TargetReps, Duration: item.TargetDuration}
	if item.TargetText != nil {
		g.Text = *item.TargetText
	}
	return g
}

// IsEmpty reports whether the goal sets no target.
func (g Goal) IsEmpty() bool {
	return strings.TrimSpace(g.Text) == "" && g.Sets == nil && g.Reps == nil && g.Duration == nil
}

// normalized returns the stored form: either the text or the numeric targets.
func (g Goal) normalized() Goal {
	if text := strings.TrimSpace(g.Text); text != "" {
		return Goal{Text: text}
	}
	return Goal{Sets: g.Sets, Reps: g.Reps, Duration: g.Duration}
}

// CreateInput holds the fields of a new menu.
type CreateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateInput holds the fields to change. Nil fields are left untouched and an empty Description clears it.
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// OrderUpdate moves an item to a new sort order.
type OrderUpdate struct {
	ItemID    int64 `json:"itemId" validate:"required"`
	SortOrder int   `json:"sortOrder" validate:"gte=0"`
}

// FormatGoal renders the goal of an item, or "" when it has none.
func FormatGoal(item Item) string {
	if item.TargetText != nil && *item.TargetText != "" {
		return *item.TargetText
	}
	sets := item.TargetSets
	switch {
	case sets == nil || *sets == 0:
		return ""
	case item.TargetReps != nil && *item.TargetReps > 0:
		return fmt.Sprintf("%d sets × %d reps", *sets, *item.TargetReps)
	case item.TargetDuration != nil && *item.TargetDuration > 0:
		return fmt.Sprintf("%d sets × %ds", *sets, *item.TargetDuration)
	default:
		return fmt.Sprintf("%d sets", *sets)
	}
}

// FormatWithGoal renders "name (goal)", or just the name when the item has no goal.
func FormatWithGoal(exerciseName string, item Item) string {
	goal := FormatGoal(item)
	if goal == "" {
		return exerciseName
	}
	return fmt.Sprintf("%s (%s)", exerciseName, goal)
}
