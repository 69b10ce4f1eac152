// Package exercise provides exercise storage and body part tagging.
package exercise

import (
	"time"

	"github.com/at-ishikawa/liftlog/internal/validation"
)

// BodyPart is a muscle group an exercise trains.
type BodyPart string

const (
	BodyPartChest     BodyPart = "chest"
	BodyPartBack      BodyPart = "back"
	BodyPartLegs      BodyPart = "legs"
	BodyPartShoulders BodyPart = "shoulders"
	BodyPartArms      BodyPart = "arms"
	BodyPartCore      BodyPart = "core"
	BodyPartCardio    BodyPart = "cardio"
	BodyPartOther     BodyPart = "other"
)

// BodyPartInfo holds the display attributes of a body part.
type BodyPartInfo struct {
	Key   BodyPart
	Label string
	Color string
}

// BodyParts lists every known body part in display order.
var BodyParts = []BodyPartInfo{
	{Key: BodyPartChest, Label: "Chest", Color: "#EF4444"},
	{Key: BodyPartBack, Label: "Back", Color: "#3B82F6"},
	{Key: BodyPartLegs, Label: "Legs", Color: "#22C55E"},
	{Key: BodyPartShoulders, Label: "Shoulders", Color: "#F59E0B"},
	{Key: BodyPartArms, Label: "Arms", Color: "#8B5CF6"},
	{Key: BodyPartCore, Label: "Core", Color: "#EC4899"},
	{Key: BodyPartCardio, Label: "Cardio", Color: "#14B8A6"},
	{Key: BodyPartOther, Label: "Other", Color: "#6B7280"},
}

// Info returns the display attributes of b. Unknown parts use the key as label.
func (b BodyPart) Info() BodyPartInfo {
	for _, info := range BodyParts {
		if info.Key == b {
			return info
		}
	}
	return BodyPartInfo{Key: b, Label: string(b), Color: "#6B7280"}
}

// IsKnown reports whether b is one of BodyParts.
func (b BodyPart) IsKnown() bool {
	for _, info := range BodyParts {
		if info.Key == b {
			return true
		}
	}
	return false
}

func bodyPartKeys() []string {
	keys := make([]string, len(BodyParts))
	for i, info := range BodyParts {
		keys[i] = string(info.Key)
	}
	return keys
}

func init() {
	validation.RegisterEnum(validation.Enum{Tag: "bodypart", Values: bodyPartKeys})
}

// Exercise is a named activity tagged with body parts.
type Exercise struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Category    *string    `db:"category" json:"category,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	BodyParts   []BodyPart `db:"-" json:"bodyParts"`
}

// HasBodyPart reports whether the exercise is tagged with part.
func (e Exercise) HasBodyPart(part BodyPart) bool {
	for _, p := range e.BodyParts {
		if p == part {
			return true
		}
	}
	return false
}

// BodyPartRow is a row of exercise_body_parts.
type BodyPartRow struct {
	ID         int64    `db:"id"`
	ExerciseID int64    `db:"exercise_id"`
	BodyPart   BodyPart `db:"body_part"`
}

// CreateInput holds the fields of a new exercise.
type CreateInput struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description *string    `json:"description"`
	BodyParts   []BodyPart `json:"bodyParts" validate:"unique,dive,required,bodypart"`
}

// UpdateInput holds the fields to change. Nil fields are left untouched.
// An empty Description clears it, and a non-nil BodyParts replaces the whole set.
type UpdateInput struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"isActive"`
	BodyParts   []BodyPart `json:"bodyParts" validate:"unique,dive,required,bodypart"`
}

// IsEmpty reports whether the input changes nothing.
func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.IsActive == nil && in.BodyParts == nil
}
