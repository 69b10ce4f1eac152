package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/liftlog/internal/database"
	"github.com/at-ishikawa/liftlog/internal/validation"
)

// DefaultRecentLimit is the number of sessions FindRecentByExercise returns when no limit is given.
const DefaultRecentLimit = 3

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("workout session not found")

const sessionColumns = "id, exercise_id, date, mood, weight, reps, set_count, duration, difficulty, is_bodyweight, notes, created_at"

//go:generate mockgen -source=repository.go -destination=../mocks/workout/mock_repository.go -package=mock_workout Repository

// Repository defines operations for managing workout sessions.
type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Session, error)
	FindByID(ctx context.Context, id int64) (*Session, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Session, error)
	FindRecentByExercise(ctx context.Context, exerciseID int64, limit int) ([]Session, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]Session, error)
	FindByExerciseBetween(ctx context.Context, exerciseID int64, start, end time.Time) ([]Session, error)
	FindBodyPartDates(ctx context.Context, since time.Time) ([]BodyPartDate, error)
	Create(ctx context.Context, input CreateInput) (*Session, error)
	AddSets(ctx context.Context, sessionID int64, sets []SetInput) error
	FindSetsBySessionIDs(ctx context.Context, sessionIDs []int64) ([]Set, error)
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

// List returns sessions newest first.
func (r *DBRepository) List(ctx context.Context, opts ListOptions) ([]Session, error) {
	query := "SELECT " + sessionColumns + " FROM workout_sessions"
	var args []interface{}
	if opts.ExerciseID > 0 {
		query += " WHERE exercise_id = ?"
		args = append(args, opts.ExerciseID)
	}
	query += " ORDER BY date DESC, created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	sessions := []Session{}
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(workout_sessions) > %w", err)
	}
	return sessions, nil
}

// FindByID returns the session with the given ID.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Session, error) {
	var s Session
	err := r.db.GetContext(ctx, &s, "SELECT "+sessionColumns+" FROM workout_sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(workout_session) > %w", err)
	}
	return &s, nil
}

// FindByIDs returns the sessions that still exist among ids, newest first.
func (r *DBRepository) FindByIDs(ctx context.Context, ids []int64) ([]Session, error) {
	sessions := []Session{}
	if len(ids) == 0 {
		return sessions, nil
	}
	query, args, err := sqlx.In("SELECT "+sessionColumns+" FROM workout_sessions WHERE id IN (?) ORDER BY date DESC, id DESC", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(workout_sessions) > %w", err)
	}
	if err := r.db.SelectContext(ctx, &sessions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(workout_sessions by ids) > %w", err)
	}
	return sessions, nil
}

// FindRecentByExercise returns the latest sessions of an exercise.
// A non-positive limit uses DefaultRecentLimit.
func (r *DBRepository) FindRecentByExercise(ctx context.Context, exerciseID int64, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return r.List(ctx, ListOptions{ExerciseID: exerciseID, Limit: limit})
}

// FindBetween returns sessions dated within [start, end], newest first.
func (r *DBRepository) FindBetween(ctx context.Context, start, end time.Time) ([]Session, error) {
	sessions := []Session{}
	if err := r.db.SelectContext(ctx, &sessions,
		"SELECT "+sessionColumns+" FROM workout_sessions WHERE date >= ? AND date <= ? ORDER BY date DESC, created_at DESC, id DESC",
		database.Timestamp(start), database.Timestamp(end)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(workout_sessions between) > %w", err)
	}
	return sessions, nil
}

// FindByExerciseBetween returns sessions of one exercise dated within [start, end], oldest first.
func (r *DBRepository) FindByExerciseBetween(ctx context.Context, exerciseID int64, start, end time.Time) ([]Session, error) {
	sessions := []Session{}
	if err := r.db.SelectContext(ctx, &sessions,
		"SELECT "+sessionColumns+" FROM workout_sessions WHERE exercise_id = ? AND date >= ? AND date <= ? ORDER BY date ASC, id ASC",
		exerciseID, database.Timestamp(start), database.Timestamp(end)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(workout_sessions of exercise between) > %w", err)
	}
	return sessions, nil
}

// FindBodyPartDates returns one row per session and body part of its exercise since the given time.
func (r *DBRepository) FindBodyPartDates(ctx context.Context, since time.Time) ([]BodyPartDate, error) {
	rows := []BodyPartDate{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT ws.date, ebp.body_part
		FROM workout_sessions ws
		JOIN exercise_body_parts ebp ON ebp.exercise_id = ws.exercise_id
		WHERE ws.date >= ?
		ORDER BY ws.date ASC`, database.Timestamp(since)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(body part dates) > %w", err)
	}
	return rows, nil
}

// Create inserts a session and returns it as stored.
func (r *DBRepository) Create(ctx context.Context, input CreateInput) (*Session, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Reps == nil && input.Duration == nil {
		return nil, &validation.Error{Messages: []string{"reps or duration is required"}}
	}

	weight := input.Weight
	if input.IsBodyweight {
		weight = nil
	}
	reps := input.Reps
	if input.Duration != nil {
		reps = nil
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO workout_sessions
		(exercise_id, date, weight, reps, set_count, duration, difficulty, is_bodyweight, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.ExerciseID, database.Timestamp(input.Date), weight, reps, input.SetCount, input.Duration,
		input.Difficulty, input.IsBodyweight, input.Notes, database.Timestamp(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext(insert workout_session) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	return r.FindByID(ctx, id)
}

// AddSets stores per-set detail of a session in one statement.
func (r *DBRepository) AddSets(ctx context.Context, sessionID int64, sets []SetInput) error {
	if len(sets) == 0 {
		return nil
	}
	for _, s := range sets {
		if err := validation.Struct(s); err != nil {
			return err
		}
	}

	columns := []string{"session_id", "set_number", "reps", "weight", "duration", "notes"}
	query := database.BuildMultiRowInsert("workout_sets", columns, len(sets))
	args := make([]interface{}, 0, len(sets)*len(columns))
	for _, s := range sets {
		args = append(args, sessionID, s.SetNumber, s.Reps, s.Weight, s.Duration, s.Notes)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db.ExecContext(insert workout_sets) > %w", err)
	}
	return nil
}

// FindSetsBySessionIDs returns the sets of the given sessions ordered by session and set number.
func (r *DBRepository) FindSetsBySessionIDs(ctx context.Context, sessionIDs []int64) ([]Set, error) {
	sets := []Set{}
	if len(sessionIDs) == 0 {
		return sets, nil
	}
	query, args, err := sqlx.In(`SELECT id, session_id, set_number, reps, weight, duration, notes
		FROM workout_sets WHERE session_id IN (?) ORDER BY session_id ASC, set_number ASC`, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(workout_sets) > %w", err)
	}
	if err := r.db.SelectContext(ctx, &sets, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(workout_sets) > %w", err)
	}
	return sets, nil
}

// Delete removes a session. Its sets are removed by the foreign key cascade.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workout_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete workout_session) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}
