package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/generator"
	"github.com/teachtool/quizengine/internal/infrastructure/config"
	"github.com/teachtool/quizengine/internal/service"
	"github.com/teachtool/quizengine/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "quizengine",
	Short:        "Course quiz generation, grading and score reports",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database DSN (overrides DB_DSN)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides DB_DRIVER)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reseedCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(historyCmd)
}

// app bundles the dependencies every command needs. The store handle is owned
// here and closed by the command that opened it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.SQLStore
	engine *service.Engine
}

// newApp loads configuration, applies flag overrides and opens the store.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBDSN = v
	}
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.DBDriver = v
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	db, err := store.Open(cmd.Context(), store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	engine := service.NewEngine(db, generator.NewSelector(cat, nil), cat, logger)
	return &app{cfg: cfg, logger: logger, store: db, engine: engine}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
}

// withApp wraps a command body with app setup and teardown.
func withApp(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, cmd, args)
	}
}
