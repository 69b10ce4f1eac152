package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type seedExercise struct {
	name        string
	description string
	bodyParts   []string
}

var defaultExercises = []seedExercise{
	{name: "Squat", description: "Classic lower body lift", bodyParts: []string{"legs"}},
	{name: "Bench Press", description: "Primary chest movement", bodyParts: []string{"chest"}},
	{name: "Deadlift", description: "Full body compound lift", bodyParts: []string{"back", "legs"}},
	{name: "Overhead Press", description: "Shoulder pressing movement", bodyParts: []string{"shoulders"}},
	{name: "Pull-up", description: "Classic back exercise", bodyParts: []string{"back", "arms"}},
	{name: "Biceps Curl", description: "Biceps isolation", bodyParts: []string{"arms"}},
	{name: "Triceps Pushdown", description: "Triceps isolation", bodyParts: []string{"arms"}},
	{name: "Leg Press", description: "Machine leg exercise", bodyParts: []string{"legs"}},
	{name: "Barbell Row", description: "Horizontal pulling movement", bodyParts: []string{"back"}},
	{name: "Plank", description: "Core stability hold", bodyParts: []string{"core"}},
	{name: "Running", description: "Aerobic exercise", bodyParts: []string{"cardio"}},
	{name: "Chest Fly", description: "Chest isolation", bodyParts: []string{"chest"}},
}

// Seed inserts the default exercise catalogue into an empty database.
// It returns the number of exercises inserted.
func Seed(ctx context.Context, db *sqlx.DB) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM exercises"); err != nil {
		return 0, fmt.Errorf("db.GetContext(count exercises) > %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, e := range defaultExercises {
			result, err := tx.ExecContext(ctx,
				"INSERT INTO exercises (name, category, description, is_active) VALUES (?, ?, ?, 1)",
				e.name, e.bodyParts[0], e.description)
			if err != nil {
				return fmt.Errorf("tx.ExecContext(insert exercise %s) > %w", e.name, err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("result.LastInsertId() > %w", err)
			}

			query := BuildMultiRowInsert("exercise_body_parts", []string{"exercise_id", "body_part"}, len(e.bodyParts))
			args := make([]interface{}, 0, len(e.bodyParts)*2)
			for _, part := range e.bodyParts {
				args = append(args, id, part)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("tx.ExecContext(insert body parts of %s) > %w", e.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(defaultExercises), nil
}
