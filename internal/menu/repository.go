package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/liftlog/internal/database"
	"github.com/at-ishikawa/liftlog/internal/validation"
)

var (
	// ErrNotFound is returned when a menu does not exist.
	ErrNotFound = errors.New("menu not found")
	// ErrItemNotFound is returned when a menu item does not exist.
	ErrItemNotFound = errors.New("menu item not found")
)

const (
	menuColumns = "id, name, description, created_at, last_completed_at"
	itemColumns = "id, menu_id, exercise_id, sort_order, target_sets, target_reps, target_duration, target_text"
)

//go:generate mockgen -source=repository.go -destination=../mocks/menu/mock_repository.go -package=mock_menu Repository

// Repository defines operations for managing training menus and their items.
type Repository interface {
	FindAll(ctx context.Context) ([]Menu, error)
	FindByID(ctx context.Context, id int64) (*Menu, error)
	FindByName(ctx context.Context, name string) (*Menu, error)
	Create(ctx context.Context, input CreateInput) (*Menu, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
	Delete(ctx context.Context, id int64) error
	Items(ctx context.Context, menuID int64) ([]ItemWithExercise, error)
	FindItem(ctx context.Context, itemID int64) (*Item, error)
	AddItem(ctx context.Context, menuID, exerciseID int64) (*Item, error)
	RemoveItem(ctx context.Context, itemID int64) error
	Reorder(ctx context.Context, menuID int64, orders []OrderUpdate) error
	ItemCount(ctx context.Context, menuID int64) (int, error)
	UpdateGoal(ctx context.Context, itemID int64, goal Goal) error
	MarkCompleted(ctx context.Context, menuID int64, at time.Time) error
	RecentlyCompleted(ctx context.Context, limit int) ([]Menu, error)
}

// DBRepository implements Repository using SQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns every menu, newest first.
func (r *DBRepository) FindAll(ctx context.Context) ([]Menu, error) {
	menus := []Menu{}
	if err := r.db.SelectContext(ctx, &menus,
		"SELECT "+menuColumns+" FROM training_menus ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(training_menus) > %w", err)
	}
	return menus, nil
}

// FindByID returns the menu with the given ID.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Menu, error) {
	var m Menu
	err := r.db.GetContext(ctx, &m, "SELECT "+menuColumns+" FROM training_menus WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("menu %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(training_menu) > %w", err)
	}
	return &m, nil
}

// FindByName returns the oldest menu with the given name, or nil if none exists.
func (r *DBRepository) FindByName(ctx context.Context, name string) (*Menu, error) {
	var m Menu
	err := r.db.GetContext(ctx, &m, "SELECT "+menuColumns+" FROM training_menus WHERE name = ? ORDER BY id LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(training_menu by name) > %w", err)
	}
	return &m, nil
}

// Create inserts a menu without items.
func (r *DBRepository) Create(ctx context.Context, input CreateInput) (*Menu, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	description := input.Description
	if description != nil && *description == "" {
		description = nil
	}

	result, err := r.db.ExecContext(ctx, "INSERT INTO training_menus (name, description) VALUES (?, ?)", input.Name, description)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext(insert training_menu) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update changes only the provided fields of a menu.
func (r *DBRepository) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validation.Struct(input); err != nil {
		return err
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
	if len(updates) == 0 {
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE training_menus SET "+strings.Join(updates, ", ")+" WHERE id = ?", append(args, id)...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update training_menu) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("menu %d: %w", id, ErrNotFound))
}

// Delete removes a menu. Its items are removed by the foreign key cascade.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM training_menus WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete training_menu) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("menu %d: %w", id, ErrNotFound))
}

// Items returns the items of a menu in sort order, joined with exercise names.
func (r *DBRepository) Items(ctx context.Context, menuID int64) ([]ItemWithExercise, error) {
	items := []ItemWithExercise{}
	if err := r.db.SelectContext(ctx, &items, `SELECT
		tmi.id, tmi.menu_id, tmi.exercise_id, tmi.sort_order,
		tmi.target_sets, tmi.target_reps, tmi.target_duration, tmi.target_text,
		e.name AS exercise_name
		FROM training_menu_items tmi
		JOIN exercises e ON tmi.exercise_id = e.id
		WHERE tmi.menu_id = ?
		ORDER BY tmi.sort_order ASC, tmi.id ASC`, menuID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(training_menu_items) > %w", err)
	}
	return items, nil
}

// AddItem appends an exercise to the end of a menu.
func (r *DBRepository) AddItem(ctx context.Context, menuID, exerciseID int64) (*Item, error) {
	var item Item
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var maxOrder sql.NullInt64
		if err := tx.GetContext(ctx, &maxOrder,
			"SELECT MAX(sort_order) FROM training_menu_items WHERE menu_id = ?", menuID); err != nil {
			return fmt.Errorf("tx.GetContext(max sort_order) > %w", err)
		}
		next := 0
		if maxOrder.Valid {
			next = int(maxOrder.Int64) + 1
		}

		result, err := tx.ExecContext(ctx,
			"INSERT INTO training_menu_items (menu_id, exercise_id, sort_order) VALUES (?, ?, ?)", menuID, exerciseID, next)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(insert training_menu_item) > %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("result.LastInsertId() > %w", err)
		}
		item = Item{ID: id, MenuID: menuID, ExerciseID: exerciseID, SortOrder: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item from its menu.
func (r *DBRepository) RemoveItem(ctx context.Context, itemID int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM training_menu_items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete training_menu_item) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("item %d: %w", itemID, ErrItemNotFound))
}

// Reorder applies new sort orders to items of a menu in one transaction.
func (r *DBRepository) Reorder(ctx context.Context, menuID int64, orders []OrderUpdate) error {
	for _, o := range orders {
		if err := validation.Struct(o); err != nil {
			return err
		}
	}
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, o := range orders {
			result, err := tx.ExecContext(ctx,
				"UPDATE training_menu_items SET sort_order = ? WHERE id = ? AND menu_id = ?", o.SortOrder, o.ItemID, menuID)
			if err != nil {
				return fmt.Errorf("tx.ExecContext(update sort_order) > %w", err)
			}
			if err := expectAffected(result, fmt.Errorf("item %d of menu %d: %w", o.ItemID, menuID, ErrItemNotFound)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ItemCount returns the number of items in a menu.
func (r *DBRepository) ItemCount(ctx context.Context, menuID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_menu_items WHERE menu_id = ?", menuID); err != nil {
		return 0, fmt.Errorf("db.GetContext(count training_menu_items) > %w", err)
	}
	return count, nil
}

// UpdateGoal replaces the goal of an item.
// A text goal clears the numeric targets and a numeric goal clears the text.
func (r *DBRepository) UpdateGoal(ctx context.Context, itemID int64, goal Goal) error {
	if err := validation.Struct(goal); err != nil {
		return err
	}
	if goal.Reps != nil && goal.Duration != nil {
		return &validation.Error{Messages: []string{"reps and duration cannot both be set"}}
	}

	g := goal.normalized()
	var text *string
	if g.Text != "" {
		text = &g.Text
	}
	result, err := r.db.ExecContext(ctx, `UPDATE training_menu_items
		SET target_sets = ?, target_reps = ?, target_duration = ?, target_text = ?
		WHERE id = ?`, g.Sets, g.Reps, g.Duration, text, itemID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update goal) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("item %d: %w", itemID, ErrItemNotFound))
}

// FindItem returns one item by ID.
func (r *DBRepository) FindItem(ctx context.Context, itemID int64) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, "SELECT "+itemColumns+" FROM training_menu_items WHERE id = ?", itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(training_menu_item) > %w", err)
	}
	return &item, nil
}

// MarkCompleted records when a menu was last finished.
func (r *DBRepository) MarkCompleted(ctx context.Context, menuID int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE training_menus SET last_completed_at = ? WHERE id = ?", database.Timestamp(at), menuID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update last_completed_at) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("menu %d: %w", menuID, ErrNotFound))
}

// RecentlyCompleted returns completed menus, most recently finished first.
func (r *DBRepository) RecentlyCompleted(ctx context.Context, limit int) ([]Menu, error) {
	query := "SELECT " + menuColumns + " FROM training_menus WHERE last_completed_at IS NOT NULL ORDER BY last_completed_at DESC, id DESC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	menus := []Menu{}
	if err := r.db.SelectContext(ctx, &menus, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(recently completed menus) > %w", err)
	}
	return menus, nil
}

func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
