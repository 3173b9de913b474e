// Package cmd implements the mathtutor command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/config"
	"github.com/abhisek/mathtutor/internal/logger"
	"github.com/abhisek/mathtutor/internal/oracle"
	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/store"
	"github.com/abhisek/mathtutor/internal/verify"
)

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mathtutor",
		Short:        "Answer checking and difficulty progression for a Hebrew math tutor",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHTUTOR_DB)")
	root.PersistentFlags().String("config", "", "Path to a YAML, TOML or JSON config file")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newVerifyCmd(),
		newProgressCmd(),
		newPracticeCmd(),
		newOracleCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file and environment, applies the persistent
// flags on top and installs the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DB = db
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if _, err := logger.Setup(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the configured database, creating its directory.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DB
	switch {
	case path == "":
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	case path != ":memory:":
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadTracker opens a tracker backed by s and loads every stored record.
func loadTracker(ctx context.Context, s *store.Store) (*progress.Tracker, error) {
	t := progress.NewTracker(s.ProgressRepo())
	if err := t.Load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// newEngine builds the grading engine. Offline mode, or an oracle that
// cannot be configured, grades with the local checkers only.
func newEngine(ctx context.Context, cfg *config.Config, events store.EventRepo, offline bool) *verify.Engine {
	if offline {
		return verify.NewEngine(nil, verify.WithLogger(slog.Default()))
	}
	o, err := oracle.New(ctx, cfg.OracleSettings(), events)
	if err != nil {
		slog.Warn("oracle unavailable, grading locally", "backend", cfg.Oracle.Backend, "error", err)
		return verify.NewEngine(nil, verify.WithLogger(slog.Default()))
	}
	return verify.NewEngine(o, verify.WithLogger(slog.Default()))
}
