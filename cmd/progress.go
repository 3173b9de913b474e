package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/progress"
)

func newProgressCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "progress",
		Short: "Inspect and manage difficulty progression",
	}

	show := &cobra.Command{
		Use:   "show [operation]",
		Short: "Show progression for one or every tracked operation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProgressShow,
	}
	show.Flags().Bool("json", false, "Print as JSON")

	reset := &cobra.Command{
		Use:   "reset [operation]",
		Short: "Discard progression for one operation, or all with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProgressReset,
	}
	reset.Flags().Bool("all", false, "Reset every operation")

	seed := &cobra.Command{
		Use:   "seed <profile.json>",
		Short: "Seed starting tiers from a learner profile",
		Long: `Seed starting tiers from a JSON learner profile such as

  {"topicMastery": {"משוואות": "struggle", "נגזרות": "good"}}

Operations that already have progress are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: runProgressSeed,
	}

	next := &cobra.Command{
		Use:   "next <operation>",
		Short: "Show the tier the next question should come from",
		Args:  cobra.ExactArgs(1),
		RunE:  runProgressNext,
	}

	c.AddCommand(show, reset, seed, next)
	return c
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := loadTracker(cmd.Context(), s)
	if err != nil {
		return err
	}

	var infos []progress.ProgressInfo
	if len(args) == 1 {
		infos = []progress.ProgressInfo{t.ProgressInfo(args[0])}
	} else {
		infos = t.AllProgress()
	}

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(w, "No progress yet.")
		return nil
	}
	printProgressTable(w, infos)
	return nil
}

func printProgressTable(w io.Writer, infos []progress.ProgressInfo) {
	fmt.Fprintf(w, "%-22s  %-20s  %-12s  %-9s  %-8s  %s\n",
		"Operation", "Name", "Tier", "Progress", "Accuracy", "Streak")
	fmt.Fprintln(w, strings.Repeat("─", 86))
	for _, p := range infos {
		prog := fmt.Sprintf("%d/%d", p.CorrectInTier, p.RequiredForNext)
		if p.IsMaxTier {
			prog = "max"
		}
		fmt.Fprintf(w, "%-22s  %-20s  %-12s  %-9s  %-8s  %d\n",
			p.Key,
			progress.DisplayName(p.Key),
			fmt.Sprintf("%d %s", p.CurrentTier, p.TierName),
			prog,
			fmt.Sprintf("%.1f%%", p.Accuracy),
			p.Streak,
		)
	}
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	switch {
	case all && len(args) == 1:
		return errors.New("pass an operation or --all, not both")
	case !all && len(args) == 0:
		return errors.New("pass an operation to reset, or --all")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
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

	w := cmd.OutOrStdout()
	if all {
		t.ResetAll()
		if err := t.SaveAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "All progress reset.")
		return nil
	}

	key := args[0]
	t.ResetOperation(key)
	if err := t.Save(ctx, key); err != nil {
		return err
	}
	fmt.Fprintf(w, "Progress for %s reset.\n", key)
	return nil
}

func runProgressSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var p progress.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
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

	seeded := t.InitializeFromProfile(p)
	for _, key := range seeded {
		if err := t.Save(ctx, key); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if len(seeded) == 0 {
		fmt.Fprintln(w, "Nothing to seed; every mapped operation already has progress.")
		return nil
	}
	for _, key := range seeded {
		info := t.ProgressInfo(key)
		fmt.Fprintf(w, "%s: tier %d %s\n", key, info.CurrentTier, info.TierName)
	}
	return nil
}

func runProgressNext(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := loadTracker(cmd.Context(), s)
	if err != nil {
		return err
	}

	tier := t.AdaptiveTier(args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", tier, progress.TierByLevel(tier).Name)
	return nil
}
