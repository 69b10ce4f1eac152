// Package datasync provides import/export orchestration between YAML files and the database.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/validation"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

const (
	defaultSetCount   = 1
	defaultDifficulty = 3
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	ExercisesNew     int
	ExercisesSkipped int
	ExercisesUpdated int
	SessionsNew      int
	SessionsSkipped  int
	SessionsWarnings int
	MenusNew         int
	MenusSkipped     int
	MenuWarnings     int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes a snapshot to the database. Records that already exist are matched by
// exercise name, session exercise and date, and menu name, so importing twice is a no-op.
type Importer struct {
	exerciseRepo exercise.Repository
	workoutRepo  workout.Repository
	menuRepo     menu.Repository
	writer       io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(exerciseRepo exercise.Repository, workoutRepo workout.Repository, menuRepo menu.Repository, writer io.Writer) *Importer {
	return &Importer{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		menuRepo:     menuRepo,
		writer:       writer,
	}
}

// Import imports exercises, then sessions, then menus.
func (imp *Importer) Import(ctx context.Context, snapshot *Snapshot, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	ids, err := imp.importExercises(ctx, snapshot.Exercises, opts, &result)
	if err != nil {
		return nil, fmt.Errorf("importExercises() > %w", err)
	}
	if err := imp.importSessions(ctx, snapshot.Sessions, ids, opts, &result); err != nil {
		return nil, fmt.Errorf("importSessions() > %w", err)
	}
	if err := imp.importMenus(ctx, snapshot.Menus, ids, opts, &result); err != nil {
		return nil, fmt.Errorf("importMenus() > %w", err)
	}
	return &result, nil
}

// importExercises returns the ID of every exercise by name. Exercises only created in a dry run map to 0.
func (imp *Importer) importExercises(ctx context.Context, records []ExerciseRecord, opts ImportOptions, result *ImportResult) (map[string]int64, error) {
	existing, err := imp.exerciseRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}
	ids := make(map[string]int64, len(existing)+len(records))
	for _, e := range existing {
		ids[e.Name] = e.ID
	}

	for _, rec := range records {
		parts := make([]exercise.BodyPart, len(rec.BodyParts))
		for i, p := range rec.BodyParts {
			parts[i] = exercise.BodyPart(p)
		}
		active := !rec.Inactive

		if id, ok := ids[rec.Name]; ok {
			if !opts.UpdateExisting {
				fmt.Fprintf(imp.writer, "  [SKIP]  exercise %q\n", rec.Name)
				result.ExercisesSkipped++
				continue
			}
			if !opts.DryRun && id != 0 {
				description := rec.Description
				if err := imp.exerciseRepo.Update(ctx, id, exercise.UpdateInput{
					Description: &description,
					IsActive:    &active,
					BodyParts:   parts,
				}); err != nil {
					return nil, fmt.Errorf("Update(%s) > %w", rec.Name, err)
				}
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  exercise %q\n", rec.Name)
			result.ExercisesUpdated++
			continue
		}

		ids[rec.Name] = 0
		if !opts.DryRun {
			input := exercise.CreateInput{Name: rec.Name, BodyParts: parts}
			if rec.Description != "" {
				input.Description = &rec.Description
			}
			created, err := imp.exerciseRepo.Create(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("Create(%s) > %w", rec.Name, err)
			}
			if !active {
				if err := imp.exerciseRepo.Update(ctx, created.ID, exercise.UpdateInput{IsActive: &active}); err != nil {
					return nil, fmt.Errorf("Update(%s) > %w", rec.Name, err)
				}
			}
			ids[rec.Name] = created.ID
		}
		fmt.Fprintf(imp.writer, "  [NEW]  exercise %q\n", rec.Name)
		result.ExercisesNew++
	}
	return ids, nil
}

func (imp *Importer) importSessions(ctx context.Context, records []SessionRecord, ids map[string]int64, opts ImportOptions, result *ImportResult) error {
	for _, rec := range records {
		exerciseID, ok := ids[rec.Exercise]
		if !ok {
			fmt.Fprintf(imp.writer, "  [WARN]  exercise not found for session %q at %s\n", rec.Exercise, rec.Date.Format("2006-01-02 15:04"))
			result.SessionsWarnings++
			continue
		}
		if exerciseID == 0 {
			result.SessionsNew++
			continue
		}

		existing, err := imp.workoutRepo.FindByExerciseBetween(ctx, exerciseID, rec.Date, rec.Date)
		if err != nil {
			return fmt.Errorf("FindByExerciseBetween(%s) > %w", rec.Exercise, err)
		}
		if len(existing) > 0 {
			result.SessionsSkipped++
			continue
		}

		if opts.DryRun {
			result.SessionsNew++
			continue
		}
		input := workout.CreateInput{
			ExerciseID:   exerciseID,
			Date:         rec.Date,
			Weight:       rec.Weight,
			Reps:         rec.Reps,
			SetCount:     valueOr(rec.SetCount, defaultSetCount),
			Duration:     rec.Duration,
			Difficulty:   valueOr(rec.Difficulty, defaultDifficulty),
			IsBodyweight: rec.IsBodyweight,
			Notes:        rec.Notes,
		}
		session, err := imp.workoutRepo.Create(ctx, input)
		if validation.IsValidationError(err) {
			fmt.Fprintf(imp.writer, "  [WARN]  invalid session %q at %s: %v\n", rec.Exercise, rec.Date.Format("2006-01-02 15:04"), err)
			result.SessionsWarnings++
			continue
		}
		if err != nil {
			return fmt.Errorf("Create(%s) > %w", rec.Exercise, err)
		}

		if len(rec.Sets) > 0 {
			sets := make([]workout.SetInput, len(rec.Sets))
			for i, s := range rec.Sets {
				sets[i] = workout.SetInput{SetNumber: s.SetNumber, Reps: s.Reps, Weight: s.Weight, Duration: s.Duration}
			}
			if err := imp.workoutRepo.AddSets(ctx, session.ID, sets); err != nil {
				return fmt.Errorf("AddSets(%d) > %w", session.ID, err)
			}
		}
		result.SessionsNew++
	}
	return nil
}

func (imp *Importer) importMenus(ctx context.Context, records []MenuRecord, ids map[string]int64, opts ImportOptions, result *ImportResult) error {
	for _, rec := range records {
		existing, err := imp.menuRepo.FindByName(ctx, rec.Name)
		if err != nil {
			return fmt.Errorf("FindByName(%s) > %w", rec.Name, err)
		}
		if existing != nil {
			fmt.Fprintf(imp.writer, "  [SKIP]  menu %q\n", rec.Name)
			result.MenusSkipped++
			continue
		}

		for _, item := range rec.Items {
			if _, ok := ids[item.Exercise]; !ok {
				fmt.Fprintf(imp.writer, "  [WARN]  exercise %q not found for menu %q\n", item.Exercise, rec.Name)
				result.MenuWarnings++
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  menu %q\n", rec.Name)
		result.MenusNew++
		if opts.DryRun {
			continue
		}

		input := menu.CreateInput{Name: rec.Name}
		if rec.Description != "" {
			input.Description = &rec.Description
		}
		created, err := imp.menuRepo.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("Create(%s) > %w", rec.Name, err)
		}
		for _, item := range rec.Items {
			exerciseID, ok := ids[item.Exercise]
			if !ok {
				continue
			}
			added, err := imp.menuRepo.AddItem(ctx, created.ID, exerciseID)
			if err != nil {
				return fmt.Errorf("AddItem(%s, %s) > %w", rec.Name, item.Exercise, err)
			}
			goal := menu.Goal{Sets: item.TargetSets, Reps: item.TargetReps, Duration: item.TargetDuration}
			if item.TargetText != nil {
				goal.Text = *item.TargetText
			}
			if goal.IsEmpty() {
				continue
			}
			if err := imp.menuRepo.UpdateGoal(ctx, added.ID, goal); err != nil {
				return fmt.Errorf("UpdateGoal(%s, %s) > %w", rec.Name, item.Exercise, err)
			}
		}
		if rec.LastCompletedAt != nil {
			if err := imp.menuRepo.MarkCompleted(ctx, created.ID, *rec.LastCompletedAt); err != nil {
				return fmt.Errorf("MarkCompleted(%s) > %w", rec.Name, err)
			}
		}
	}
	return nil
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// Exporter reads the database into a Snapshot.
type Exporter struct {
	exerciseRepo exercise.Repository
	workoutRepo  workout.Repository
	menuRepo     menu.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(exerciseRepo exercise.Repository, workoutRepo workout.Repository, menuRepo menu.Repository) *Exporter {
	return &Exporter{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		menuRepo:     menuRepo,
	}
}

// Export reads all data from the database. Sessions and menus are listed oldest first.
func (e *Exporter) Export(ctx context.Context) (*Snapshot, error) {
	exercises, err := e.exerciseRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exerciseRepo.FindAll() > %w", err)
	}
	names := make(map[int64]string, len(exercises))
	snapshot := &Snapshot{
		Exercises: make([]ExerciseRecord, 0, len(exercises)),
		Sessions:  []SessionRecord{},
		Menus:     []MenuRecord{},
	}
	for _, ex := range exercises {
		names[ex.ID] = ex.Name
		rec := ExerciseRecord{Name: ex.Name, Inactive: !ex.IsActive}
		if ex.Description != nil {
			rec.Description = *ex.Description
		}
		for _, p := range ex.BodyParts {
			rec.BodyParts = append(rec.BodyParts, string(p))
		}
		snapshot.Exercises = append(snapshot.Exercises, rec)
	}

	sessions, err := e.workoutRepo.List(ctx, workout.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("workoutRepo.List() > %w", err)
	}
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	sets, err := e.workoutRepo.FindSetsBySessionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("workoutRepo.FindSetsBySessionIDs() > %w", err)
	}
	setsBySession := make(map[int64][]SetRecord)
	for _, s := range sets {
		setsBySession[s.SessionID] = append(setsBySession[s.SessionID], SetRecord{
			SetNumber: s.SetNumber,
			Reps:      s.Reps,
			Weight:    s.Weight,
			Duration:  s.Duration,
		})
	}
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		snapshot.Sessions = append(snapshot.Sessions, SessionRecord{
			Exercise:     names[s.ExerciseID],
			Date:         s.Date,
			Weight:       s.Weight,
			Reps:         s.Reps,
			SetCount:     s.SetCount,
			Duration:     s.Duration,
			Difficulty:   s.Difficulty,
			IsBodyweight: s.IsBodyweight,
			Notes:        s.Notes,
			Sets:         setsBySession[s.ID],
		})
	}

	menus, err := e.menuRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("menuRepo.FindAll() > %w", err)
	}
	for i := len(menus) - 1; i >= 0; i-- {
		m := menus[i]
		items, err := e.menuRepo.Items(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("menuRepo.Items(%d) > %w", m.ID, err)
		}
		rec := MenuRecord{Name: m.Name, LastCompletedAt: m.LastCompletedAt}
		if m.Description != nil {
			rec.Description = *m.Description
		}
		for _, item := range items {
			rec.Items = append(rec.Items, MenuItemRecord{
				Exercise:       item.ExerciseName,
				TargetSets:     item.TargetSets,
				TargetReps:     item.TargetReps,
				TargetDuration: item.TargetDuration,
				TargetText:     item.TargetText,
			})
		}
		snapshot.Menus = append(snapshot.Menus, rec)
	}
	return snapshot, nil
}
