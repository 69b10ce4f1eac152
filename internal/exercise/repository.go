package exercise

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/liftlog/internal/database"
	"github.com/at-ishikawa/liftlog/internal/validation"
)

// ErrNotFound is returned when an exercise does not exist.
var ErrNotFound = errors.New("exercise not found")

//go:generate mockgen -source=repository.go -destination=../mocks/exercise/mock_repository.go -package=mock_exercise Repository

// Repository defines operations for managing exercises.
type Repository interface {
	FindAll(ctx context.Context) ([]Exercise, error)
	FindByID(ctx context.Context, id int64) (*Exercise, error)
	FindByName(ctx context.Context, name string) (*Exercise, error)
	FindByBodyPart(ctx context.Context, part BodyPart) ([]Exercise, error)
	BodyPartsFor(ctx context.Context, id int64) ([]BodyPart, error)
	Create(ctx context.Context, input CreateInput) (*Exercise, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

// DBRepository implements Repository using SQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns every exercise ordered by name with its body parts.
func (r *DBRepository) FindAll(ctx context.Context) ([]Exercise, error) {
	var exercises []Exercise
	if err := r.db.SelectContext(ctx, &exercises,
		"SELECT id, name, category, description, created_at, is_active FROM exercises ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercises) > %w", err)
	}
	if err := r.loadBodyParts(ctx, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// FindByID returns the exercise with the given ID.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Exercise, error) {
	var e Exercise
	err := r.db.GetContext(ctx, &e,
		"SELECT id, name, category, description, created_at, is_active FROM exercises WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(exercise) > %w", err)
	}
	exercises := []Exercise{e}
	if err := r.loadBodyParts(ctx, exercises); err != nil {
		return nil, err
	}
	return &exercises[0], nil
}

// FindByName returns the first exercise with the given name, or nil if none exists.
func (r *DBRepository) FindByName(ctx context.Context, name string) (*Exercise, error) {
	var e Exercise
	err := r.db.GetContext(ctx, &e,
		"SELECT id, name, category, description, created_at, is_active FROM exercises WHERE name = ? ORDER BY id LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(exercise by name) > %w", err)
	}
	exercises := []Exercise{e}
	if err := r.loadBodyParts(ctx, exercises); err != nil {
		return nil, err
	}
	return &exercises[0], nil
}

// FindByBodyPart returns active exercises tagged with part.
// An empty part returns every active exercise.
func (r *DBRepository) FindByBodyPart(ctx context.Context, part BodyPart) ([]Exercise, error) {
	var exercises []Exercise
	var err error
	if part == "" {
		err = r.db.SelectContext(ctx, &exercises,
			"SELECT id, name, category, description, created_at, is_active FROM exercises WHERE is_active = 1 ORDER BY name ASC")
	} else {
		err = r.db.SelectContext(ctx, &exercises, `SELECT e.id, e.name, e.category, e.description, e.created_at, e.is_active
			FROM exercises e
			WHERE e.is_active = 1
			  AND EXISTS (SELECT 1 FROM exercise_body_parts bp WHERE bp.exercise_id = e.id AND bp.body_part = ?)
			ORDER BY e.name ASC`, part)
	}
	if err != nil {
		return nil, fmt.Errorf("db.SelectContext(exercises by body part) > %w", err)
	}
	if err := r.loadBodyParts(ctx, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// BodyPartsFor returns the body parts of one exercise in insertion order.
func (r *DBRepository) BodyPartsFor(ctx context.Context, id int64) ([]BodyPart, error) {
	parts := []BodyPart{}
	if err := r.db.SelectContext(ctx, &parts,
		"SELECT body_part FROM exercise_body_parts WHERE exercise_id = ? ORDER BY id", id); err != nil {
		return nil, fmt.Errorf("db.SelectContext(body parts) > %w", err)
	}
	return parts, nil
}

// Create inserts an active exercise and its body parts in a transaction.
func (r *DBRepository) Create(ctx context.Context, input CreateInput) (*Exercise, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var category *string
	if len(input.BodyParts) > 0 {
		c := string(input.BodyParts[0])
		category = &c
	}

	var created Exercise
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO exercises (name, category, description, is_active) VALUES (?, ?, ?, 1)",
			input.Name, category, input.Description)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(insert exercise) > %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("result.LastInsertId() > %w", err)
		}
		if err := insertBodyParts(ctx, tx, id, input.BodyParts); err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &created,
			"SELECT id, name, category, description, created_at, is_active FROM exercises WHERE id = ?", id); err != nil {
			return fmt.Errorf("tx.GetContext(created exercise) > %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	created.BodyParts = append([]BodyPart{}, input.BodyParts...)
	return &created, nil
}

// Update changes only the provided fields of an exercise.
func (r *DBRepository) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validation.Struct(input); err != nil {
		return err
	}
	if input.IsEmpty() {
		return nil
	}

	var updates []string
	var args []interface{}
	if input.Name != nil {
		updates = append(updates, "name = ?")
		args = append(args, *input.Name)
	}
	if input.Description != nil {
		updates = append(updates, "description = ?")
		if *input.Description == "" {
			args = append(args, nil)
		} else {
			args = append(args, *input.Description)
		}
	}
	if input.IsActive != nil {
		updates = append(updates, "is_active = ?")
		args = append(args, *input.IsActive)
	}
	if input.BodyParts != nil {
		updates = append(updates, "category = ?")
		if len(input.BodyParts) > 0 {
			args = append(args, string(input.BodyParts[0]))
		} else {
			args = append(args, nil)
		}
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		query := "UPDATE exercises SET " + strings.Join(updates, ", ") + " WHERE id = ?"
		result, err := tx.ExecContext(ctx, query, append(args, id)...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(update exercise) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("exercise %d: %w", id, ErrNotFound)
		}

		if input.BodyParts == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM exercise_body_parts WHERE exercise_id = ?", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete body parts) > %w", err)
		}
		return insertBodyParts(ctx, tx, id, input.BodyParts)
	})
}

// Delete removes an exercise together with its sessions and their sets.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM workout_sets WHERE session_id IN (SELECT id FROM workout_sessions WHERE exercise_id = ?)", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete sets) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM workout_sessions WHERE exercise_id = ?", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete sessions) > %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(delete exercise) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("exercise %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func insertBodyParts(ctx context.Context, tx *sqlx.Tx, exerciseID int64, parts []BodyPart) error {
	if len(parts) == 0 {
		return nil
	}
	query := database.BuildMultiRowInsert("exercise_body_parts", []string{"exercise_id", "body_part"}, len(parts))
	args := make([]interface{}, 0, len(parts)*2)
	for _, p := range parts {
		args = append(args, exerciseID, string(p))
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("tx.ExecContext(insert body parts) > %w", err)
	}
	return nil
}

func (r *DBRepository) loadBodyParts(ctx context.Context, exercises []Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	ids := make([]int64, len(exercises))
	byID := make(map[int64]*Exercise, len(exercises))
	for i := range exercises {
		ids[i] = exercises[i].ID
		byID[exercises[i].ID] = &exercises[i]
		exercises[i].BodyParts = []BodyPart{}
	}

	query, args, err := sqlx.In("SELECT id, exercise_id, body_part FROM exercise_body_parts WHERE exercise_id IN (?) ORDER BY id", ids)
	if err != nil {
		return fmt.Errorf("sqlx.In(exercise_body_parts) > %w", err)
	}
	var rows []BodyPartRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.SelectContext(exercise_body_parts) > %w", err)
	}
	for _, row := range rows {
		if e, ok := byID[row.ExerciseID]; ok {
			e.BodyParts = append(e.BodyParts, row.BodyPart)
		}
	}
	return nil
}
