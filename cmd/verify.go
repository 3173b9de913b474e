package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/store"
	"github.com/abhisek/mathtutor/internal/verify"
)

type verifyOutput struct {
	Result    verify.Result          `json:"result"`
	Progress  *progress.ProgressInfo `json:"progress,omitempty"`
	Promotion *progress.Promotion    `json:"promotion,omitempty"`
}

func newVerifyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Grade one answer and print the result as JSON",
		Example: `  mathtutor verify --question "באיזה רביע נמצאת הנקודה (-3, 4)?" --answer 2 --expected 2 --subtopic quadrants
  mathtutor verify --answer "3x+10" --expected "3(x+4)" --offline --record algebra_simplify`,
		RunE: runVerify,
	}
	f := c.Flags()
	f.String("question", "", "Question text")
	f.String("answer", "", "The learner's answer")
	f.String("expected", "", "The correct answer")
	f.String("subtopic", "", "Subtopic, e.g. quadrants or expansion")
	f.String("topic", "", "Topic")
	f.String("name", "", "Student name for feedback (default from config)")
	f.String("grade", "", "Student grade level (default from config)")
	f.Bool("offline", false, "Grade with local checks only, never calling the oracle")
	f.String("record", "", "Record the attempt under this operation key and save it")
	_ = c.MarkFlagRequired("expected")
	return c
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	offline, _ := f.GetBool("offline")
	record, _ := f.GetString("record")

	in := verify.Input{Context: verify.Context{StudentName: cfg.Student.Name, Grade: cfg.Student.Grade}}
	in.UserAnswer, _ = f.GetString("answer")
	in.CorrectAnswer, _ = f.GetString("expected")
	in.Question, _ = f.GetString("question")
	in.Context.Subtopic, _ = f.GetString("subtopic")
	in.Context.Topic, _ = f.GetString("topic")
	if v, _ := f.GetString("name"); v != "" {
		in.Context.StudentName = v
	}
	if v, _ := f.GetString("grade"); v != "" {
		in.Context.Grade = v
	}

	ctx := cmd.Context()

	// The store is needed for oracle events and for recording.
	var (
		s      *store.Store
		events store.EventRepo
	)
	if !offline || record != "" {
		s, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		events = s.EventRepo()
	}

	out := verifyOutput{Result: newEngine(ctx, cfg, events, offline).Verify(ctx, in)}

	if record != "" {
		t, err := loadTracker(ctx, s)
		if err != nil {
			return err
		}
		out.Promotion = t.RecordAttempt(record, out.Result.IsCorrect)
		if err := t.Save(ctx, record); err != nil {
			return err
		}
		info := t.ProgressInfo(record)
		out.Progress = &info
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
