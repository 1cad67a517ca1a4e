package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/domain/quiz"
)

const insertItem = `INSERT INTO quiz_items
    (course_id, question, option_a, option_b, option_c, option_d, correct_label)
    VALUES (?, ?, ?, ?, ?, ?, ?)`

const selectItem = `SELECT id, course_id, question, option_a, option_b, option_c, option_d, correct_label
    FROM quiz_items`

// ============================================================================
// Quiz items
// ============================================================================

// Reseed replaces the whole item bank with the canonical banks, creating any
// missing course. It runs in a single transaction, so readers never observe a
// partially loaded bank. Item ids are not reused afterwards.
func (s *SQLStore) Reseed(ctx context.Context, banks []catalog.CourseBank) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM quiz_items"); err != nil {
			return fmt.Errorf("wipe quiz items: %w", err)
		}

		for _, b := range banks {
			c, err := s.ensureCourse(ctx, tx, b.Course)
			if err != nil {
				return err
			}
			if _, err := s.insertItems(ctx, tx, c.ID, b.Drafts()); err != nil {
				return fmt.Errorf("reseed %q: %w", b.Course, err)
			}
		}
		return nil
	})
}

// AppendItems adds drafts to a course without touching existing items.
func (s *SQLStore) AppendItems(ctx context.Context, courseID int64, drafts []quiz.Draft) (int, error) {
	var inserted int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := s.insertItems(ctx, tx, courseID, drafts)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLStore) insertItems(ctx context.Context, tx *sql.Tx, courseID int64, drafts []quiz.Draft) (int, error) {
	if len(drafts) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(insertItem))
	if err != nil {
		return 0, fmt.Errorf("prepare insert item: %w", err)
	}
	defer stmt.Close()

	for i, d := range drafts {
		_, err := stmt.ExecContext(ctx,
			courseID, d.Question,
			d.Options[0], d.Options[1], d.Options[2], d.Options[3],
			string(d.Correct),
		)
		if err != nil {
			return i, fmt.Errorf("insert item: %w", err)
		}
	}
	return len(drafts), nil
}

// ItemsFor returns the items of a course in insertion order. An unknown
// course yields an empty list.
func (s *SQLStore) ItemsFor(ctx context.Context, courseName string) ([]quiz.Item, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT q.id, q.course_id, q.question, q.option_a, q.option_b, q.option_c, q.option_d, q.correct_label
		FROM quiz_items q
		JOIN courses c ON q.course_id = c.id
		WHERE c.name = ?
		ORDER BY q.id`), courseName)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []quiz.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *SQLStore) ItemByID(ctx context.Context, id int64) (*quiz.Item, error) {
	return s.itemByID(ctx, s.db, id)
}

func (s *SQLStore) itemByID(ctx context.Context, q querier, id int64) (*quiz.Item, error) {
	it, err := scanItem(q.QueryRowContext(ctx, s.rebind(selectItem+" WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select item %d: %w", id, err)
	}
	return it, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*quiz.Item, error) {
	var it quiz.Item
	var label string
	err := row.Scan(&it.ID, &it.CourseID, &it.Question,
		&it.Options[0], &it.Options[1], &it.Options[2], &it.Options[3], &label)
	if err != nil {
		return nil, err
	}
	it.Correct = quiz.Label(label)
	return &it, nil
}
