package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teachtool/quizengine/internal/domain/quiz"
)

var reseedCmd = &cobra.Command{
	Use:   "reseed",
	Short: "Wipe all quiz items and reload the canonical bank",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.engine.ReseedCanonicalBank(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "canonical bank reloaded")
		return nil
	}),
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List registered courses",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "KIND")
		for _, c := range a.engine.Courses(ctx) {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Kind)
		}
		return tw.Flush()
	}),
}

var generateCmd = &cobra.Command{
	Use:   "generate [course]",
	Short: "Generate quiz items for a course and append them",
	Args: func(cmd *cobra.Command, args []string) error {
		if all, _ := cmd.Flags().GetBool("all"); all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			count = a.cfg.UploadQuizCount
		}
		out := cmd.OutOrStdout()

		if all, _ := cmd.Flags().GetBool("all"); all {
			inserted := a.engine.GenerateForAllCourses(ctx, count)
			names := make([]string, 0, len(inserted))
			for name := range inserted {
				names = append(names, name)
			}
			slices.Sort(names)
			tw := newTable(out, "COURSE", "INSERTED")
			for _, name := range names {
				fmt.Fprintf(tw, "%s\t%d\n", name, inserted[name])
			}
			return tw.Flush()
		}

		text, err := sourceText(cmd)
		if err != nil {
			return err
		}
		var n int
		if text == "" {
			n = a.engine.GenerateForCourse(ctx, args[0], count)
		} else {
			n = a.engine.GenerateAndAppend(ctx, args[0], text, count)
		}
		fmt.Fprintf(out, "%d items appended to %s\n", n, args[0])
		return nil
	}),
}

var itemsCmd = &cobra.Command{
	Use:   "items <course>",
	Short: "List the quiz items of a course",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		showAnswers, _ := cmd.Flags().GetBool("answers")
		out := cmd.OutOrStdout()
		for _, it := range a.engine.ItemsFor(ctx, args[0]) {
			fmt.Fprintf(out, "[%d] %s\n", it.ID, it.Question)
			for i, opt := range it.Options {
				mark := ""
				if showAnswers && quiz.LabelAt(i) == it.Correct {
					mark = "  *"
				}
				fmt.Fprintf(out, "    %s) %s%s\n", quiz.LabelAt(i), opt, mark)
			}
		}
		return nil
	}),
}

var gradeCmd = &cobra.Command{
	Use:   "grade <course> <student> <item-id>=<label>...",
	Short: "Grade an answer set and log every answer",
	Args:  cobra.MinimumNArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		answers, err := parseAnswers(args[2:])
		if err != nil {
			return err
		}
		res, err := a.engine.GradeAttempt(ctx, args[1], args[0], answers)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "score %d%% (%d/%d) attempt %s\n",
			res.Score, res.Correct, res.Total, res.AttemptID)
		return nil
	}),
}

var rosterCmd = &cobra.Command{
	Use:   "roster <course>",
	Short: "Show per-student scores for a course",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		return writeSummaries(cmd.OutOrStdout(), "STUDENT", a.engine.CourseRoster(ctx, args[0]))
	}),
}

var historyCmd = &cobra.Command{
	Use:   "history <student>",
	Short: "Show per-course scores for a student",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		return writeSummaries(cmd.OutOrStdout(), "COURSE", a.engine.StudentHistory(ctx, args[0]))
	}),
}

func init() {
	generateCmd.Flags().String("text", "", "Source text to generate from")
	generateCmd.Flags().String("text-file", "", "Read source text from a file")
	generateCmd.Flags().Int("count", 0, "Number of items to generate (defaults to UPLOAD_QUIZ_COUNT)")
	generateCmd.Flags().Bool("all", false, "Generate for every registered course")
	generateCmd.MarkFlagsMutuallyExclusive("text", "text-file")

	itemsCmd.Flags().Bool("answers", false, "Mark the stored correct option")
}

func sourceText(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("text-file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read source text: %w", err)
		}
		return string(b), nil
	}
	text, _ := cmd.Flags().GetString("text")
	return text, nil
}

// parseAnswers reads "id=label" pairs. Labels are kept verbatim and graded by
// exact match. A repeated id keeps the last label.
func parseAnswers(pairs []string) (map[int64]string, error) {
	answers := make(map[int64]string, len(pairs))
	for _, p := range pairs {
		idStr, label, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: expected <item-id>=<label>", p)
		}
		itemID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("answer %q: invalid item id: %w", p, err)
		}
		answers[itemID] = label
	}
	return answers, nil
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func writeSummaries(w io.Writer, labelHeader string, rows []quiz.ScoreSummary) error {
	tw := newTable(w, labelHeader, "ATTEMPTED", "CORRECT", "SCORE", "PERCENT", "LAST SUBMISSION")
	for _, s := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
			s.Label, s.Attempted, s.Correct, s.Fraction(), s.PercentLabel(),
			s.LastSubmittedAt.Format(quiz.TimestampLayout))
	}
	return tw.Flush()
}
