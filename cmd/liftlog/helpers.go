package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/bootstrap"
	"github.com/at-ishikawa/liftlog/internal/config"
	"github.com/at-ishikawa/liftlog/internal/database"
	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
	"github.com/at-ishikawa/liftlog/internal/report"
	"github.com/at-ishikawa/liftlog/internal/settings"
	"github.com/at-ishikawa/liftlog/internal/statistics"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// app holds the dependencies of one command run.
type app struct {
	cfg       *config.Config
	db        *sqlx.DB
	loc       *time.Location
	exercises exercise.Repository
	workouts  workout.Repository
	menus     menu.Repository
	store     progress.Store
	out       io.Writer
	printer   *report.Printer
	now       func() time.Time
}

// withApp loads the configuration, opens the database and the progress store, runs fn,
// and closes everything once fn returns or the process is interrupted.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lifecycle := bootstrap.New()
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	lifecycle.AddCloser("database", db)

	store, err := progress.NewStore(cfg.Progress)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("progress.NewStore() > %w", err)
	}
	lifecycle.AddCloser("progress store", store)

	loc := cfg.App.Location()
	a := &app{
		cfg:       cfg,
		db:        db,
		loc:       loc,
		exercises: exercise.NewDBRepository(db),
		workouts:  workout.NewDBRepository(db),
		menus:     menu.NewDBRepository(db),
		store:     store,
		out:       cmd.OutOrStdout(),
		printer:   report.NewPrinter(cmd.OutOrStdout(), loc),
		now:       time.Now,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return lifecycle.Run(ctx, func(ctx context.Context) error {
		return fn(ctx, a)
	})
}

func (a *app) migrate(ctx context.Context, seed bool) (int, error) {
	applied, err := database.Migrate(ctx, a.db)
	if err != nil {
		return applied, fmt.Errorf("database.Migrate() > %w", err)
	}
	if seed {
		if _, err := a.seed(ctx); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

func (a *app) seed(ctx context.Context) (int, error) {
	inserted, err := database.Seed(ctx, a.db)
	if err != nil {
		return 0, fmt.Errorf("database.Seed() > %w", err)
	}
	return inserted, nil
}

func (a *app) statistics() *statistics.Service {
	return statistics.NewService(a.exercises, a.workouts, a.loc)
}

func (a *app) settings() *settings.Service {
	return settings.NewService(a.store)
}

// exerciseNames maps every exercise ID to its name.
func (a *app) exerciseNames(ctx context.Context) (map[int64]string, error) {
	exercises, err := a.exercises.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names, nil
}

// resolveExercise finds an exercise by ID or by exact name.
func (a *app) resolveExercise(ctx context.Context, ref string) (*exercise.Exercise, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return a.exercises.FindByID(ctx, id)
	}
	e, err := a.exercises.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("exercise %q: %w", ref, exercise.ErrNotFound)
	}
	return e, nil
}

// resolveMenu finds a menu by ID or by exact name.
func (a *app) resolveMenu(ctx context.Context, ref string) (*menu.Menu, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return a.menus.FindByID(ctx, id)
	}
	m, err := a.menus.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("menu %q: %w", ref, menu.ErrNotFound)
	}
	return m, nil
}

// parseDate parses "YYYY-MM-DD" or "YYYY-MM-DD HH:MM" in loc.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{dateTimeLayout, dateLayout} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", value)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

var errRangeRequired = errors.New("either --preset or both --from and --to are required")

// dateRange resolves the --preset or --from/--to flags into whole days.
func (a *app) dateRange(preset PresetFlag, from, to string) (time.Time, time.Time, error) {
	if preset != "" {
		return report.Preset(preset).Range(a.now(), a.loc)
	}
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, errRangeRequired
	}
	start, err := parseDate(from, a.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(to, a.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return start, end, nil
}
