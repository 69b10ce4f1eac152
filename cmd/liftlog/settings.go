package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/settings"
)

func printSettings(w io.Writer, s settings.Settings) {
	state := "off"
	if s.RestTimerEnabled {
		state = "on"
	}
	fmt.Fprintf(w, "Rest timer: %s (%d:%02d)\n", state, s.RestTimerMinutes, s.RestTimerSeconds)
}

func newSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}
	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) error {
					s, err := a.settings().Load(ctx)
					if err != nil {
						return err
					}
					printSettings(a.out, s)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Turn the rest timer on or off",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) error {
					s, err := a.settings().ToggleRestTimer(ctx)
					if err != nil {
						return err
					}
					printSettings(a.out, s)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <minutes> <seconds>",
			Short: "Set the rest time",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				minutes, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid minutes %q", args[0])
				}
				seconds, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid seconds %q", args[1])
				}
				return withApp(cmd, func(ctx context.Context, a *app) error {
					s, err := a.settings().SetRestTime(ctx, minutes, seconds)
					if err != nil {
						return err
					}
					printSettings(a.out, s)
					return nil
				})
			},
		},
	)
	return settingsCmd
}
