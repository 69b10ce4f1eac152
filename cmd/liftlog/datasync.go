package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/liftlog/internal/backup"
	"github.com/at-ishikawa/liftlog/internal/datasync"
)

func newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Export and import the data set as YAML files",
	}
	dataCmd.AddCommand(newDataExportCommand(), newDataImportCommand())
	return dataCmd
}

func newDataExportCommand() *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export database data to YAML files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snapshot, err := datasync.NewExporter(a.exercises, a.workouts, a.menus).Export(ctx)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
				if err := datasync.WriteDir(outputDir, snapshot); err != nil {
					return fmt.Errorf("datasync.WriteDir() > %w", err)
				}
				fmt.Fprintf(a.out, "Exported %d exercises, %d sessions and %d menus to %s\n",
					len(snapshot.Exercises), len(snapshot.Sessions), len(snapshot.Menus), outputDir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outputDir, "output", "./export", "Output directory")
	return cmd
}

// importFlags control how a snapshot is merged into the database.
type importFlags struct {
	dryRun         bool
	updateExisting bool
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&f.updateExisting, "update-existing", false, "Update existing records with new data")
}

func (f *importFlags) run(ctx context.Context, a *app, snapshot *datasync.Snapshot) error {
	importer := datasync.NewImporter(a.exercises, a.workouts, a.menus, a.out)
	opts := datasync.ImportOptions{DryRun: f.dryRun, UpdateExisting: f.updateExisting}
	result, err := importer.Import(ctx, snapshot, opts)
	if err != nil {
		return fmt.Errorf("importer.Import() > %w", err)
	}
	printImportSummary(a.out, result, opts)
	return nil
}

func printImportSummary(w io.Writer, result *datasync.ImportResult, opts datasync.ImportOptions) {
	fmt.Fprintln(w, "\nImport Summary:")
	if opts.DryRun {
		fmt.Fprintln(w, "  (dry-run mode, no changes made)")
	}
	fmt.Fprintf(w, "  Exercises: %d new, %d skipped, %d updated\n", result.ExercisesNew, result.ExercisesSkipped, result.ExercisesUpdated)
	fmt.Fprintf(w, "  Sessions:  %d new, %d skipped, %d warnings\n", result.SessionsNew, result.SessionsSkipped, result.SessionsWarnings)
	fmt.Fprintf(w, "  Menus:     %d new, %d skipped, %d warnings\n", result.MenusNew, result.MenusSkipped, result.MenuWarnings)
}

func newDataImportCommand() *cobra.Command {
	var f importFlags
	var inputDir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import YAML files into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snapshot, err := datasync.ReadDir(inputDir)
				if err != nil {
					return fmt.Errorf("datasync.ReadDir() > %w", err)
				}
				return f.run(ctx, a, snapshot)
			})
		},
	}
	cmd.Flags().StringVar(&inputDir, "input", "./export", "Directory with the YAML files")
	f.register(cmd)
	return cmd
}

func newBackupCommand() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload or download a snapshot of the data set",
	}
	backupCmd.AddCommand(newBackupPushCommand(), newBackupPullCommand())
	return backupCmd
}

func withBackupClient(a *app, fn func(client *backup.Client) error) error {
	client, err := backup.NewClient(a.cfg.Backup)
	if err != nil {
		return fmt.Errorf("backup.NewClient() > %w", err)
	}
	defer func() {
		_ = client.Close()
	}()
	return fn(client)
}

func newBackupPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload a snapshot to the backup endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return withBackupClient(a, func(client *backup.Client) error {
					snapshot, err := datasync.NewExporter(a.exercises, a.workouts, a.menus).Export(ctx)
					if err != nil {
						return fmt.Errorf("exporter.Export() > %w", err)
					}
					if err := client.Push(ctx, snapshot); err != nil {
						return fmt.Errorf("client.Push() > %w", err)
					}
					fmt.Fprintf(a.out, "Pushed %d exercises, %d sessions and %d menus\n",
						len(snapshot.Exercises), len(snapshot.Sessions), len(snapshot.Menus))
					return nil
				})
			})
		},
	}
}

func newBackupPullCommand() *cobra.Command {
	var f importFlags
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download the snapshot from the backup endpoint and import it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return withBackupClient(a, func(client *backup.Client) error {
					snapshot, err := client.Pull(ctx)
					if err != nil {
						return fmt.Errorf("client.Pull() > %w", err)
					}
					return f.run(ctx, a, snapshot)
				})
			})
		},
	}
	f.register(cmd)
	return cmd
}
