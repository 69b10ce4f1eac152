package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/exercise"
)

func newExerciseCommand() *cobra.Command {
	exerciseCmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage exercises",
	}
	exerciseCmd.AddCommand(
		newExerciseListCommand(),
		newExerciseAddCommand(),
		newExerciseUpdateCommand(),
		newExerciseDeleteCommand(),
	)
	return exerciseCmd
}

func newExerciseListCommand() *cobra.Command {
	var bodyParts BodyPartFlag
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(bodyParts) > 1 {
				return fmt.Errorf("only one --body-part can be listed at a time")
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if len(bodyParts) == 0 {
					exercises, err := a.exercises.FindAll(ctx)
					if err != nil {
						return err
					}
					a.printer.Exercises(exercises)
					return nil
				}
				exercises, err := a.exercises.FindByBodyPart(ctx, bodyParts[0])
				if err != nil {
					return err
				}
				a.printer.Exercises(exercises)
				return nil
			})
		},
	}
	cmd.Flags().Var(&bodyParts, "body-part", "Only list active exercises tagged with this body part")
	return cmd
}

func newExerciseAddCommand() *cobra.Command {
	var bodyParts BodyPartFlag
	var description string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				input := exercise.CreateInput{Name: args[0], BodyParts: bodyParts}
				if description != "" {
					input.Description = &description
				}
				e, err := a.exercises.Create(ctx, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Added exercise %d: %s\n", e.ID, e.Name)
				return nil
			})
		},
	}
	cmd.Flags().Var(&bodyParts, "body-part", "Body part, repeatable or comma separated")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func newExerciseUpdateCommand() *cobra.Command {
	var bodyParts BodyPartFlag
	var name, description string
	var active bool
	cmd := &cobra.Command{
		Use:   "update <exercise>",
		Short: "Update an exercise by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input exercise.UpdateInput
			flags := cmd.Flags()
			if flags.Changed("name") {
				input.Name = &name
			}
			if flags.Changed("description") {
				input.Description = &description
			}
			if flags.Changed("active") {
				input.IsActive = &active
			}
			if flags.Changed("body-part") {
				input.BodyParts = bodyParts
			}
			if input.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				e, err := a.resolveExercise(ctx, args[0])
				if err != nil {
					return err
				}
				if err := a.exercises.Update(ctx, e.ID, input); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Updated exercise %d\n", e.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description, empty to clear")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the exercise is offered when logging")
	cmd.Flags().Var(&bodyParts, "body-part", "Replace the body parts, repeatable or comma separated")
	return cmd
}

func newExerciseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <exercise>",
		Short: "Delete an exercise with its workouts and menu items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				e, err := a.resolveExercise(ctx, args[0])
				if err != nil {
					return err
				}
				if err := a.exercises.Delete(ctx, e.ID); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted exercise %d: %s\n", e.ID, e.Name)
				return nil
			})
		},
	}
}
