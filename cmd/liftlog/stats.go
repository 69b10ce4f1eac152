package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/report"
	"github.com/at-ishikawa/liftlog/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show workout statistics",
	}
	statsCmd.AddCommand(
		&cobra.Command{
			Use:   "overview",
			Short: "Show counts of this week and month and the difficulty spread",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) error {
					overview, err := a.statistics().Overview(ctx, a.now())
					if err != nil {
						return err
					}
					a.printer.Overview(overview)
					return nil
				})
			},
		},
		newStatsProgressCommand(),
		newStatsTrendCommand(),
		&cobra.Command{
			Use:   "body-parts",
			Short: "Show training days per body part over the last four weeks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app) error {
					stats, err := a.statistics().BodyPartDistribution(ctx, a.now())
					if err != nil {
						return err
					}
					a.printer.BodyParts(stats)
					return nil
				})
			},
		},
	)
	return statsCmd
}

func newStatsProgressCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "progress <exercise>",
		Short: "Show the latest sessions of an exercise, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				e, err := a.resolveExercise(ctx, args[0])
				if err != nil {
					return err
				}
				points, err := a.statistics().ExerciseProgress(ctx, e.ID, limit)
				if err != nil {
					return err
				}
				a.printer.Progress(points)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", statistics.DefaultProgressLimit, "Number of sessions")
	return cmd
}

// rangeFlags selects whole days by preset or by --from and --to.
type rangeFlags struct {
	preset PresetFlag
	from   string
	to     string
}

func (f *rangeFlags) register(cmd *cobra.Command, defaultPreset report.Preset) {
	f.preset = PresetFlag(defaultPreset)
	cmd.Flags().Var(&f.preset, "preset", fmt.Sprintf("Date range preset, one of %v", report.Presets))
	cmd.Flags().StringVar(&f.from, "from", "", "First day as YYYY-MM-DD, overrides --preset")
	cmd.Flags().StringVar(&f.to, "to", "", "Last day as YYYY-MM-DD, overrides --preset")
}

func (f *rangeFlags) resolve(a *app) (time.Time, time.Time, error) {
	if f.from != "" || f.to != "" {
		return a.dateRange("", f.from, f.to)
	}
	return a.dateRange(f.preset, "", "")
}

func newStatsTrendCommand() *cobra.Command {
	var r rangeFlags
	cmd := &cobra.Command{
		Use:   "trend <exercise>",
		Short: "Show max weight, volume and estimated 1RM per session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				e, err := a.resolveExercise(ctx, args[0])
				if err != nil {
					return err
				}
				start, end, err := r.resolve(a)
				if err != nil {
					return err
				}
				points, err := a.statistics().ProgressTrend(ctx, e.ID, start, end)
				if err != nil {
					return err
				}
				a.printer.Trend(points)
				return nil
			})
		},
	}
	r.register(cmd, report.Preset30Days)
	return cmd
}

func newExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the training log of a date range",
	}
	exportCmd.AddCommand(
		newExportTextCommand(),
		newExportDocumentCommand("markdown", "Write the training log as a markdown file", false),
		newExportDocumentCommand("pdf", "Write the training log as markdown and PDF files", true),
	)
	return exportCmd
}

func newExportTextCommand() *cobra.Command {
	var r rangeFlags
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Print the training log in the plain-text share format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				start, end, err := r.resolve(a)
				if err != nil {
					return err
				}
				data, err := a.statistics().Export(ctx, start, end)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, report.ExportText(data))
				return nil
			})
		},
	}
	r.register(cmd, report.Preset7Days)
	return cmd
}

func newExportDocumentCommand(use, short string, pdf bool) *cobra.Command {
	var r rangeFlags
	var outputDir string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				start, end, err := r.resolve(a)
				if err != nil {
					return err
				}
				data, err := a.statistics().Export(ctx, start, end)
				if err != nil {
					return err
				}

				dir := outputDir
				if dir == "" {
					dir = a.cfg.Outputs.ExportDirectory
				}
				name := fmt.Sprintf("training-log-%s-%s", data.Stats.StartDate, data.Stats.EndDate)
				path, err := report.WriteMarkdown(dir, name, data)
				if err != nil {
					return fmt.Errorf("report.WriteMarkdown() > %w", err)
				}
				if pdf {
					path, err = report.ConvertMarkdownToPDF(path)
					if err != nil {
						return fmt.Errorf("report.ConvertMarkdownToPDF() > %w", err)
					}
				}
				fmt.Fprintf(a.out, "Wrote %s\n", path)
				return nil
			})
		},
	}
	r.register(cmd, report.Preset30Days)
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory, defaults to outputs.export_directory")
	return cmd
}
