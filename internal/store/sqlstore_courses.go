package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/teachtool/quizengine/internal/domain/course"
)

// ============================================================================
// Courses
// ============================================================================

// EnsureCourse returns the course with the given name, creating it when
// missing. The kind is resolved from the name only at creation.
func (s *SQLStore) EnsureCourse(ctx context.Context, name string) (*course.Course, error) {
	return s.ensureCourse(ctx, s.db, name)
}

func (s *SQLStore) ensureCourse(ctx context.Context, q querier, name string) (*course.Course, error) {
	c := course.New(name)
	_, err := q.ExecContext(ctx, s.rebind(
		"INSERT INTO courses (name, kind, created_at) VALUES (?, ?, ?) ON CONFLICT (name) DO NOTHING"),
		c.Name, string(c.Kind), time.Now().UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert course %q: %w", name, err)
	}
	return s.courseByName(ctx, q, name)
}

func (s *SQLStore) CourseByName(ctx context.Context, name string) (*course.Course, error) {
	return s.courseByName(ctx, s.db, name)
}

func (s *SQLStore) courseByName(ctx context.Context, q querier, name string) (*course.Course, error) {
	var c course.Course
	var kind string
	var createdAt int64
	err := q.QueryRowContext(ctx, s.rebind(
		"SELECT id, name, kind, created_at FROM courses WHERE name = ?"), name,
	).Scan(&c.ID, &c.Name, &kind, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select course %q: %w", name, err)
	}
	c.Kind = course.ParseKind(kind)
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &c, nil
}

// ListCourses returns every registered course in creation order.
func (s *SQLStore) ListCourses(ctx context.Context) ([]*course.Course, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, kind, created_at FROM courses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []*course.Course
	for rows.Next() {
		var c course.Course
		var kind string
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Name, &kind, &createdAt); err != nil {
			return nil, err
		}
		c.Kind = course.ParseKind(kind)
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}
