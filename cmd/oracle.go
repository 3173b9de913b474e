package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/llm"
	"github.com/abhisek/mathtutor/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

func newOracleCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "oracle",
		Short: "Inspect recorded oracle requests",
	}

	events := &cobra.Command{
		Use:   "events",
		Short: "List recent oracle events",
		Args:  cobra.NoArgs,
		RunE:  runOracleEvents,
	}
	events.Flags().IntP("limit", "n", 20, "Maximum number of events to show (0 = all)")
	events.Flags().String("purpose", "", "Only show events with this purpose")

	view := &cobra.Command{
		Use:   "view <id>",
		Short: "Show the full request and response of one event",
		Args:  cobra.ExactArgs(1),
		RunE:  runOracleView,
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize oracle calls per backend and model",
		Args:  cobra.NoArgs,
		RunE:  runOracleStats,
	}

	c.AddCommand(events, view, stats)
	return c
}

func runOracleEvents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.EventRepo().QueryOracleEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(w, "No oracle events found.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-10s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Backend", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 110))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		model := e.Model
		if len(model) > 28 {
			model = model[:28]
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-10s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			e.Backend,
			e.Purpose,
			model,
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
	return nil
}

func runOracleView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid ID %q: %w", args[0], err)
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

	e, err := s.EventRepo().GetOracleEvent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return fmt.Errorf("event %d not found", id)
	}
	printEvent(cmd.OutOrStdout(), e)
	return nil
}

func printEvent(w io.Writer, e *store.OracleEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Request:   %s\n", e.RequestID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format(timeLayout))
	fmt.Fprintf(w, "Backend:   %s\n", e.Backend)
	if e.Model != "" {
		fmt.Fprintf(w, "Model:     %s\n", e.Model)
	}
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, sep)
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

type oracleStats struct {
	backend, model string
	calls, failed  int
	in, out        int
	latencyMs      int64
}

func runOracleStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.EventRepo().QueryOracleEvents(cmd.Context(), store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(w, "No oracle events found.")
		return nil
	}

	rows := aggregateEvents(events)
	fmt.Fprintf(w, "%-10s  %-28s  %-6s  %-6s  %-8s  %-8s  %-7s  %s\n",
		"Backend", "Model", "Calls", "Failed", "In", "Out", "Avg ms", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	var total float64
	partial := false
	for _, r := range rows {
		cost := "-"
		if r.model != "" {
			if p, ok := llm.LookupPricing(r.model); ok {
				c := p.Estimate(r.in, r.out)
				total += c
				cost = formatCost(c)
			} else {
				cost = "?"
				partial = true
			}
		}
		fmt.Fprintf(w, "%-10s  %-28s  %-6d  %-6d  %-8d  %-8d  %-7d  %s\n",
			r.backend, r.model, r.calls, r.failed, r.in, r.out, r.latencyMs/int64(r.calls), cost)
	}

	fmt.Fprintln(w, strings.Repeat("─", 100))
	label := "Estimated cost"
	if partial {
		label += " (partial)"
	}
	fmt.Fprintf(w, "%s: %s\n", label, formatCost(total))
	return nil
}

func formatCost(usd float64) string {
	if usd > 0 && usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// aggregateEvents groups events by backend and model, sorted by backend then model.
func aggregateEvents(events []store.OracleEvent) []oracleStats {
	byKey := make(map[[2]string]*oracleStats)
	for _, e := range events {
		k := [2]string{e.Backend, e.Model}
		st, ok := byKey[k]
		if !ok {
			st = &oracleStats{backend: e.Backend, model: e.Model}
			byKey[k] = st
		}
		st.calls++
		if !e.Success {
			st.failed++
		}
		st.in += e.InputTokens
		st.out += e.OutputTokens
		st.latencyMs += e.LatencyMs
	}

	rows := make([]oracleStats, 0, len(byKey))
	for _, st := range byKey {
		rows = append(rows, *st)
	}
	slices.SortFunc(rows, func(a, b oracleStats) int {
		if c := strings.Compare(a.backend, b.backend); c != 0 {
			return c
		}
		return strings.Compare(a.model, b.model)
	})
	return rows
}
