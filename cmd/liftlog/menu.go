package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
)

func newMenuCommand() *cobra.Command {
	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage training menus and run menu sessions",
	}
	menuCmd.AddCommand(
		newMenuListCommand(),
		newMenuCreateCommand(),
		newMenuRenameCommand(),
		newMenuDeleteCommand(),
		newMenuItemsCommand(),
		newMenuAddItemCommand(),
		newMenuRemoveItemCommand(),
		newMenuReorderCommand(),
		newMenuGoalCommand(),
		newMenuStartCommand(),
		newMenuRecordCommand(),
		newMenuStatusCommand(),
		newMenuFinishCommand(),
		newMenuClearCommand(),
	)
	return menuCmd
}

func newMenuListCommand() *cobra.Command {
	var recent int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List menus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				var menus []menu.Menu
				var err error
				if recent > 0 {
					menus, err = a.menus.RecentlyCompleted(ctx, recent)
				} else {
					menus, err = a.menus.FindAll(ctx)
				}
				if err != nil {
					return err
				}
				ids := make([]int64, len(menus))
				for i, m := range menus {
					ids[i] = m.ID
				}
				active, err := progress.ActiveMenus(ctx, a.store, ids)
				if err != nil {
					return err
				}
				inProgress := make(map[int64]bool, len(active))
				for _, id := range active {
					inProgress[id] = true
				}
				a.printer.Menus(menus, inProgress)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&recent, "recent", 0, "Only list the N most recently completed menus")
	return cmd
}

func newMenuCreateCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <name> [exercise...]",
		Short: "Create a menu, optionally with exercises (ID or name)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				input := menu.CreateInput{Name: args[0]}
				if description != "" {
					input.Description = &description
				}
				m, err := a.menus.Create(ctx, input)
				if err != nil {
					return err
				}
				for _, ref := range args[1:] {
					e, err := a.resolveExercise(ctx, ref)
					if err != nil {
						return err
					}
					if _, err := a.menus.AddItem(ctx, m.ID, e.ID); err != nil {
						return err
					}
				}
				fmt.Fprintf(a.out, "Created menu %d: %s\n", m.ID, m.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func newMenuRenameCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "rename <menu> <new name>",
		Short: "Rename a menu",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, err := a.resolveMenu(ctx, args[0])
				if err != nil {
					return err
				}
				input := menu.UpdateInput{Name: &args[1]}
				if cmd.Flags().Changed("description") {
					input.Description = &description
				}
				if err := a.menus.Update(ctx, m.ID, input); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Renamed menu %d to %s\n", m.ID, args[1])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "New description, empty to clear")
	return cmd
}

func newMenuDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <menu>",
		Short: "Delete a menu and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, err := a.resolveMenu(ctx, args[0])
				if err != nil {
					return err
				}
				if err := a.menus.Delete(ctx, m.ID); err != nil {
					return err
				}
				if err := progress.NewTracker(a.store, m.ID).Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted menu %d: %s\n", m.ID, m.Name)
				return nil
			})
		},
	}
}

// openMenu resolves a menu with its items and its session progress.
func (a *app) openMenu(ctx context.Context, ref string) (*menu.Menu, []menu.ItemWithExercise, *progress.Tracker, error) {
	m, err := a.resolveMenu(ctx, ref)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := a.menus.Items(ctx, m.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	tracker, err := progress.Open(ctx, a.store, m.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, items, tracker, nil
}

func (a *app) printMenu(m *menu.Menu, items []menu.ItemWithExercise, tracker *progress.Tracker) {
	fmt.Fprintf(a.out, "%s (%d/%d done)\n", m.Name, tracker.CompletedCount(), len(items))
	if !tracker.HasActiveSession() {
		a.printer.Items(items, nil)
		return
	}
	a.printer.Items(items, tracker.IsExerciseCompleted)
}

func newMenuItemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "items <menu>",
		Short: "Show the exercises of a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, items, tracker, err := a.openMenu(ctx, args[0])
				if err != nil {
					return err
				}
				a.printMenu(m, items, tracker)
				return nil
			})
		},
	}
}

func newMenuAddItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-item <menu> <exercise>",
		Short: "Append an exercise to a menu",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, err := a.resolveMenu(ctx, args[0])
				if err != nil {
					return err
				}
				e, err := a.resolveExercise(ctx, args[1])
				if err != nil {
					return err
				}
				item, err := a.menus.AddItem(ctx, m.ID, e.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Added %s to %s as item %d\n", e.Name, m.Name, item.ID)
				return nil
			})
		},
	}
}

func newMenuRemoveItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <item id>",
		Short: "Remove an item from its menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.menus.RemoveItem(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Removed item %d\n", id)
				return nil
			})
		},
	}
}

func newMenuReorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <menu> <item id>...",
		Short: "Reorder the items of a menu in the given order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orders := make([]menu.OrderUpdate, 0, len(args)-1)
			for i, arg := range args[1:] {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				orders = append(orders, menu.OrderUpdate{ItemID: id, SortOrder: i})
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, err := a.resolveMenu(ctx, args[0])
				if err != nil {
					return err
				}
				if err := a.menus.Reorder(ctx, m.ID, orders); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Reordered %d items of %s\n", len(orders), m.Name)
				return nil
			})
		},
	}
}

func newMenuGoalCommand() *cobra.Command {
	var sets, reps, duration int
	var text string
	cmd := &cobra.Command{
		Use:   "goal <item id>",
		Short: "Set the goal of a menu item; no flags clears it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var goal menu.Goal
			flags := cmd.Flags()
			if flags.Changed("sets") {
				goal.Sets = &sets
			}
			if flags.Changed("reps") {
				goal.Reps = &reps
			}
			if flags.Changed("duration") {
				goal.Duration = &duration
			}
			goal.Text = text

			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.menus.UpdateGoal(ctx, id, goal); err != nil {
					return err
				}
				item, err := a.menus.FindItem(ctx, id)
				if err != nil {
					return err
				}
				if formatted := menu.FormatGoal(*item); formatted != "" {
					fmt.Fprintf(a.out, "Goal of item %d: %s\n", id, formatted)
				} else {
					fmt.Fprintf(a.out, "Cleared goal of item %d\n", id)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&sets, "sets", 0, "Target sets")
	cmd.Flags().IntVar(&reps, "reps", 0, "Target reps per set")
	cmd.Flags().IntVar(&duration, "duration", 0, "Target seconds per set")
	cmd.Flags().StringVar(&text, "text", "", "Free-form goal, replaces the numeric targets")
	return cmd
}

func newMenuStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <menu>",
		Short: "Start a session of a menu, discarding earlier progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, items, tracker, err := a.openMenu(ctx, args[0])
				if err != nil {
					return err
				}
				if _, err := tracker.Start(ctx); err != nil {
					return err
				}
				a.printMenu(m, items, tracker)
				return nil
			})
		},
	}
}

func newMenuRecordCommand() *cobra.Command {
	var f workoutFlags
	var sessionID int64
	cmd := &cobra.Command{
		Use:   "record <menu> <exercise>",
		Short: "Log a workout of a menu exercise and mark it done",
		Long: "Log a workout of a menu exercise and mark it done.\n" +
			"With --session, an already logged workout is recorded instead.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, items, tracker, err := a.openMenu(ctx, args[0])
				if err != nil {
					return err
				}
				if !tracker.HasActiveSession() {
					return fmt.Errorf("menu %s: %w, run menu start first", m.Name, progress.ErrNoActiveSession)
				}
				e, err := a.resolveExercise(ctx, args[1])
				if err != nil {
					return err
				}

				id := sessionID
				if id == 0 {
					session, err := f.logWorkout(ctx, cmd, a, args[1])
					if err != nil {
						return err
					}
					id = session.ID
				} else {
					session, err := a.workouts.FindByID(ctx, id)
					if err != nil {
						return err
					}
					if session.ExerciseID != e.ID {
						return fmt.Errorf("workout %d is not a session of %s", id, e.Name)
					}
				}

				if err := tracker.RecordExercise(ctx, e.ID, id); err != nil {
					return err
				}
				a.printMenu(m, items, tracker)
				return nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().Int64Var(&sessionID, "session", 0, "Record an already logged workout")
	return cmd
}

func newMenuStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <menu>",
		Short: "Show the progress of the current session of a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, items, tracker, err := a.openMenu(ctx, args[0])
				if err != nil {
					return err
				}
				a.printMenu(m, items, tracker)
				if !tracker.HasActiveSession() {
					return nil
				}
				summary, err := tracker.Summarize(ctx, items, a.workouts, a.now())
				if err != nil {
					return err
				}
				names, err := a.exerciseNames(ctx)
				if err != nil {
					return err
				}
				a.printer.Summary(summary, names)
				return nil
			})
		},
	}
}

func newMenuFinishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finish <menu>",
		Short: "Finish the current session of a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, items, tracker, err := a.openMenu(ctx, args[0])
				if err != nil {
					return err
				}
				now := a.now()
				summary, err := tracker.Summarize(ctx, items, a.workouts, now)
				if err != nil {
					return err
				}
				if err := tracker.Finish(ctx, a.menus, now); err != nil {
					return err
				}
				names, err := a.exerciseNames(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Finished %s\n", m.Name)
				a.printer.Summary(summary, names)
				return nil
			})
		},
	}
}

func newMenuClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <menu>",
		Short: "Discard the current session of a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				m, _, tracker, err := a.openMenu(ctx, args[0])
				if err != nil {
					return err
				}
				if err := tracker.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Cleared the session of %s\n", m.Name)
				return nil
			})
		},
	}
}
