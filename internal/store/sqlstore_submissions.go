package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/teachtool/quizengine/internal/domain/quiz"
)

// ============================================================================
// Submissions
// ============================================================================

// GradeAndLog grades every answer of an attempt against the stored correct
// label and appends one submission row per answer, correct or not. Answers
// for unknown items are logged with a 0 flag. The whole attempt is written in
// one transaction.
func (s *SQLStore) GradeAndLog(ctx context.Context, a Attempt) ([]quiz.Submission, error) {
	subs := make([]quiz.Submission, 0, len(a.Answers))

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.rebind(`INSERT INTO submissions
			(attempt_id, student, course_id, item_id, submitted_label, correct, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`))
		if err != nil {
			return fmt.Errorf("prepare insert submission: %w", err)
		}
		defer stmt.Close()

		for _, ans := range a.Answers {
			sub := quiz.Submission{
				AttemptID:   a.ID,
				Student:     a.Student,
				CourseID:    a.CourseID,
				ItemID:      ans.ItemID,
				Answer:      ans.Label,
				SubmittedAt: a.SubmittedAt,
			}

			it, err := s.itemByID(ctx, tx, ans.ItemID)
			switch {
			case err == nil:
				sub.Correct = it.IsCorrect(ans.Label)
			case !errors.Is(err, ErrNotFound):
				return err
			}

			if _, err := stmt.ExecContext(ctx,
				sub.AttemptID, sub.Student, sub.CourseID, sub.ItemID,
				sub.Answer, sub.Flag(), sub.SubmittedAt.UnixMilli(),
			); err != nil {
				return fmt.Errorf("insert submission: %w", err)
			}
			subs = append(subs, sub)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// Submissions returns the raw log of one student in one course, oldest first.
func (s *SQLStore) Submissions(ctx context.Context, student, courseName string) ([]quiz.Submission, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT s.id, s.attempt_id, s.student, s.course_id, s.item_id, s.submitted_label, s.correct, s.submitted_at
		FROM submissions s
		JOIN courses c ON s.course_id = c.id
		WHERE s.student = ? AND c.name = ?
		ORDER BY s.id`), student, courseName)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []quiz.Submission{}
	for rows.Next() {
		var sub quiz.Submission
		var flag int
		var at int64
		if err := rows.Scan(&sub.ID, &sub.AttemptID, &sub.Student, &sub.CourseID,
			&sub.ItemID, &sub.Answer, &flag, &at); err != nil {
			return nil, err
		}
		sub.Correct = flag == 1
		sub.SubmittedAt = time.UnixMilli(at).UTC()
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ============================================================================
// Aggregates
// ============================================================================

// CourseRoster summarises a course per student, ordered by student.
// Attempted counts distinct items; Correct sums every logged flag, so retakes
// of the same item add to Correct but not to Attempted.
func (s *SQLStore) CourseRoster(ctx context.Context, courseName string) ([]quiz.ScoreSummary, error) {
	return s.summaries(ctx, `
		SELECT s.student, COUNT(DISTINCT s.item_id), SUM(s.correct), MAX(s.submitted_at)
		FROM submissions s
		JOIN courses c ON s.course_id = c.id
		WHERE c.name = ?
		GROUP BY s.student
		ORDER BY s.student`, courseName)
}

// StudentHistory summarises one student per course, most recent first.
func (s *SQLStore) StudentHistory(ctx context.Context, student string) ([]quiz.ScoreSummary, error) {
	return s.summaries(ctx, `
		SELECT c.name, COUNT(DISTINCT s.item_id), SUM(s.correct), MAX(s.submitted_at)
		FROM submissions s
		JOIN courses c ON s.course_id = c.id
		WHERE s.student = ?
		GROUP BY c.id, c.name
		ORDER BY MAX(s.submitted_at) DESC, c.name`, student)
}

func (s *SQLStore) summaries(ctx context.Context, query string, arg string) ([]quiz.ScoreSummary, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), arg)
	if err != nil {
		return nil, fmt.Errorf("aggregate submissions: %w", err)
	}
	defer rows.Close()

	out := []quiz.ScoreSummary{}
	for rows.Next() {
		var sum quiz.ScoreSummary
		var last int64
		if err := rows.Scan(&sum.Label, &sum.Attempted, &sum.Correct, &last); err != nil {
			return nil, err
		}
		sum.LastSubmittedAt = time.UnixMilli(last).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}
