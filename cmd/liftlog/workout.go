package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/workout"
)

func newWorkoutCommand() *cobra.Command {
	workoutCmd := &cobra.Command{
		Use:   "workout",
		Short: "Record and review workout sessions",
	}
	workoutCmd.AddCommand(
		newWorkoutListCommand(),
		newWorkoutLogCommand(),
		newWorkoutShowCommand(),
		newWorkoutDeleteCommand(),
	)
	return workoutCmd
}

func newWorkoutListCommand() *cobra.Command {
	var exerciseRef string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workout sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				opts := workout.ListOptions{Limit: limit}
				if exerciseRef != "" {
					e, err := a.resolveExercise(ctx, exerciseRef)
					if err != nil {
						return err
					}
					opts.ExerciseID = e.ID
				}
				sessions, err := a.workouts.List(ctx, opts)
				if err != nil {
					return err
				}
				names, err := a.exerciseNames(ctx)
				if err != nil {
					return err
				}
				a.printer.Sessions(sessions, names)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&exerciseRef, "exercise", "", "Only list sessions of this exercise (ID or name)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions, 0 for all")
	return cmd
}

// workoutFlags are the fields of a session given on the command line.
type workoutFlags struct {
	date         string
	weight       float64
	reps         int
	setCount     int
	duration     int
	difficulty   int
	isBodyweight bool
	notes        string
	sets         SetFlag
}

func (f *workoutFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "Date as YYYY-MM-DD or \"YYYY-MM-DD HH:MM\", defaults to now")
	flags.Float64Var(&f.weight, "weight", 0, "Weight in kg")
	flags.IntVar(&f.reps, "reps", 0, "Reps per set")
	flags.IntVar(&f.setCount, "sets", 1, "Number of sets")
	flags.IntVar(&f.duration, "duration", 0, "Seconds per set, makes the session time based")
	flags.IntVar(&f.difficulty, "difficulty", 3, "Difficulty from 1 to 5")
	flags.BoolVar(&f.isBodyweight, "bodyweight", false, "Bodyweight exercise")
	flags.StringVar(&f.notes, "notes", "", "Notes")
	flags.Var(&f.sets, "set", "Per-set detail as reps, reps@weight or 30s; repeatable")
}

func (f *workoutFlags) input(cmd *cobra.Command, a *app, exerciseID int64) (workout.CreateInput, error) {
	in := workout.CreateInput{
		ExerciseID:   exerciseID,
		Date:         a.now(),
		SetCount:     f.setCount,
		Difficulty:   f.difficulty,
		IsBodyweight: f.isBodyweight,
	}
	flags := cmd.Flags()
	if f.date != "" {
		date, err := parseDate(f.date, a.loc)
		if err != nil {
			return workout.CreateInput{}, err
		}
		in.Date = date
	}
	if flags.Changed("weight") {
		in.Weight = &f.weight
	}
	if flags.Changed("reps") {
		in.Reps = &f.reps
	}
	if flags.Changed("duration") {
		in.Duration = &f.duration
	}
	if f.notes != "" {
		in.Notes = &f.notes
	}
	if len(f.sets) > 0 && !flags.Changed("sets") {
		in.SetCount = len(f.sets)
	}
	return in, nil
}

// logWorkout stores a session of exerciseRef and its per-set detail.
func (f *workoutFlags) logWorkout(ctx context.Context, cmd *cobra.Command, a *app, exerciseRef string) (*workout.Session, error) {
	e, err := a.resolveExercise(ctx, exerciseRef)
	if err != nil {
		return nil, err
	}
	in, err := f.input(cmd, a, e.ID)
	if err != nil {
		return nil, err
	}
	session, err := a.workouts.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(f.sets) > 0 {
		if err := a.workouts.AddSets(ctx, session.ID, f.sets); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(a.out, "Logged workout %d: %s %s\n", session.ID, e.Name, workout.Summary(*session))
	return session, nil
}

func newWorkoutLogCommand() *cobra.Command {
	var f workoutFlags
	cmd := &cobra.Command{
		Use:   "log <exercise>",
		Short: "Log a workout session of an exercise (ID or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				session, err := f.logWorkout(ctx, cmd, a, args[0])
				if err != nil {
					return err
				}
				recent, err := a.workouts.FindRecentByExercise(ctx, session.ExerciseID, workout.DefaultRecentLimit+1)
				if err != nil {
					return err
				}
				previous := make([]workout.Session, 0, len(recent))
				for _, s := range recent {
					if s.ID != session.ID {
						previous = append(previous, s)
					}
				}
				if len(previous) > 0 {
					fmt.Fprintln(a.out, "Previous:")
					names, err := a.exerciseNames(ctx)
					if err != nil {
						return err
					}
					a.printer.Sessions(previous, names)
				}
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newWorkoutShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session id>",
		Short: "Show a workout session with its sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				session, err := a.workouts.FindByID(ctx, id)
				if err != nil {
					return err
				}
				names, err := a.exerciseNames(ctx)
				if err != nil {
					return err
				}
				sets, err := a.workouts.FindSetsBySessionIDs(ctx, []int64{id})
				if err != nil {
					return err
				}
				a.printer.Sessions([]workout.Session{*session}, names)
				a.printer.Sets(sets)
				return nil
			})
		},
	}
}

func newWorkoutDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session id>",
		Short: "Delete a workout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.workouts.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted workout %d\n", id)
				return nil
			})
		},
	}
}
