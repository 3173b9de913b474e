package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/app"
	"github.com/abhisek/mathtutor/internal/logger"
	prac "github.com/abhisek/mathtutor/internal/practice"
	"github.com/abhisek/mathtutor/internal/screen"
	"github.com/abhisek/mathtutor/internal/screens/overview"
	"github.com/abhisek/mathtutor/internal/screens/practice"
)

func newPracticeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "practice",
		Short: "Practice one operation interactively",
		Example: `  mathtutor practice --questions questions.json --operation algebra_simplify
  mathtutor practice --questions questions.json --operation coordinate_quadrant --offline`,
		Args: cobra.NoArgs,
		RunE: runPractice,
	}
	f := c.Flags()
	f.String("questions", "", "Path to a JSON question bank")
	f.String("operation", "", "Operation key to practice")
	f.Bool("offline", false, "Grade with local checks only, never calling the oracle")
	f.String("log-file", "", "Write logs to this file while the interface runs")
	_ = c.MarkFlagRequired("questions")
	_ = c.MarkFlagRequired("operation")
	return c
}

func runPractice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	bankPath, _ := f.GetString("questions")
	op, _ := f.GetString("operation")
	offline, _ := f.GetBool("offline")

	bank, err := prac.LoadBank(bankPath)
	if err != nil {
		return err
	}

	// Log lines on the terminal would tear the full-screen view.
	var logOut io.Writer = io.Discard
	if path, _ := f.GetString("log-file"); path != "" {
		lf, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer lf.Close()
		logOut = lf
	}
	if _, err := logger.Setup(cfg.LogLevel, logOut); err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	t, err := loadTracker(ctx, s)
	if err != nil {
		return err
	}

	session, err := prac.NewSession(newEngine(ctx, cfg, s.EventRepo(), offline), t, bank, prac.SessionConfig{
		Operation:   op,
		StudentName: cfg.Student.Name,
		Grade:       cfg.Student.Grade,
	})
	if err != nil {
		return err
	}

	root := practice.New(ctx, session, func() screen.Screen { return overview.New(t) })
	return app.Run(root)
}
