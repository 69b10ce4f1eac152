package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/liftlog/internal/bootstrap"
	"github.com/at-ishikawa/liftlog/internal/config"
	"github.com/at-ishikawa/liftlog/internal/database"
	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
	"github.com/at-ishikawa/liftlog/internal/server"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "liftlog-server",
		Short:         "liftlog Connect RPC server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddCloser("database", db)

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("database.Migrate() > %w", err)
	}
	slog.Info("database ready", slog.Int("applied_migrations", applied))
	if cfg.Database.Seed {
		if _, err := database.Seed(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("database.Seed() > %w", err)
		}
	}

	store, err := progress.NewStore(cfg.Progress)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("progress.NewStore() > %w", err)
	}
	app.AddCloser("progress store", store)

	handler := server.NewServer(
		exercise.NewDBRepository(db),
		workout.NewDBRepository(db),
		menu.NewDBRepository(db),
		store,
		cfg.App.Location(),
	).Handler()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.CORSMiddleware(h2c.NewHandler(handler, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
