// Package service exposes the quiz engine: canonical bank reseeding,
// upload-time generation, grading and score aggregation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/content"
	"github.com/teachtool/quizengine/internal/domain/course"
	"github.com/teachtool/quizengine/internal/domain/quiz"
	"github.com/teachtool/quizengine/internal/generator"
	"github.com/teachtool/quizengine/internal/id"
	"github.com/teachtool/quizengine/internal/store"
)

// Engine is the entry point used by the HTTP and CLI layers.
//
// Read and grading operations never fail outward: errors are logged and the
// result degrades to an empty collection or a zero score, so callers cannot
// tell "no data" from "store unavailable". Ping reports the latter.
type Engine struct {
	store    store.Store
	selector *generator.Selector
	catalog  *catalog.Catalog
	logger   *slog.Logger

	now     func() time.Time
	workers int
}

type Option func(*Engine)

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithWorkers sets how many courses are generated concurrently by
// GenerateForAllCourses.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func NewEngine(s store.Store, sel *generator.Selector, c *catalog.Catalog, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		selector: sel,
		catalog:  c,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ping checks the underlying store.
func (e *Engine) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

// ReseedCanonicalBank wipes every quiz item and reloads the canonical bank,
// creating the default courses when missing. The submission log is kept.
func (e *Engine) ReseedCanonicalBank(ctx context.Context) error {
	start := time.Now()
	if err := e.store.Reseed(ctx, e.catalog.Canonical); err != nil {
		e.logger.Error("reseed failed", "error", err)
		return fmt.Errorf("reseed canonical bank: %w", err)
	}
	e.logger.Info("canonical bank reseeded",
		"courses", e.catalog.CourseNames(),
		"duration", time.Since(start),
	)
	return nil
}

// EnsureCourse registers a course by name, resolving its kind on creation.
func (e *Engine) EnsureCourse(ctx context.Context, name string) (*course.Course, error) {
	return e.store.EnsureCourse(ctx, name)
}

// Courses lists registered courses in creation order.
func (e *Engine) Courses(ctx context.Context) []*course.Course {
	cs, err := e.store.ListCourses(ctx)
	if err != nil {
		e.logger.Error("list courses failed", "error", err)
		return []*course.Course{}
	}
	return cs
}

// GenerateAndAppend runs the course's strategy over text and appends up to
// count items to the course. It returns the number of items inserted.
func (e *Engine) GenerateAndAppend(ctx context.Context, courseLabel, text string, count int) int {
	c, err := e.store.EnsureCourse(ctx, courseLabel)
	if err != nil {
		e.logger.Error("resolve course failed", "course", courseLabel, "error", err)
		return 0
	}

	st := e.selector.For(c.Kind)
	return e.appendDrafts(ctx, c, st.Name(), st.Generate(text, count))
}

// GenerateForCourse generates from the representative text of the course, the
// way an uploaded material is turned into a quiz.
func (e *Engine) GenerateForCourse(ctx context.Context, courseLabel string, count int) int {
	return e.GenerateAndAppend(ctx, courseLabel, content.Text(courseLabel), count)
}

func (e *Engine) appendDrafts(ctx context.Context, c *course.Course, strategy string, drafts []quiz.Draft) int {
	n, err := e.store.AppendItems(ctx, c.ID, drafts)
	if err != nil {
		e.logger.Error("append items failed",
			"course", c.Name,
			"strategy", strategy,
			"error", err,
		)
		return 0
	}
	e.logger.Info("items appended",
		"course", c.Name,
		"strategy", strategy,
		"inserted", n,
	)
	return n
}

// ItemsFor returns the items of a course in insertion order.
func (e *Engine) ItemsFor(ctx context.Context, courseLabel string) []quiz.Item {
	items, err := e.store.ItemsFor(ctx, courseLabel)
	if err != nil {
		e.logger.Error("list items failed", "course", courseLabel, "error", err)
		return []quiz.Item{}
	}
	return items
}

// Result describes one graded attempt.
type Result struct {
	AttemptID string
	Score     int
	Correct   int
	Total     int
}

// GradeAttempt grades answers (item id to submitted label) and logs one
// submission per answer in a single transaction. An unknown course yields
// store.ErrNotFound and writes nothing. Answers naming unknown items are
// logged as incorrect.
func (e *Engine) GradeAttempt(ctx context.Context, student, courseLabel string, answers map[int64]string) (Result, error) {
	c, err := e.store.CourseByName(ctx, courseLabel)
	if err != nil {
		return Result{}, fmt.Errorf("resolve course %q: %w", courseLabel, err)
	}
	if len(answers) == 0 {
		return Result{}, nil
	}

	ids := make([]int64, 0, len(answers))
	for itemID := range answers {
		ids = append(ids, itemID)
	}
	slices.Sort(ids)

	attempt := store.Attempt{
		ID:          id.NewAttemptID(),
		Student:     student,
		CourseID:    c.ID,
		Answers:     make([]quiz.Answer, 0, len(ids)),
		SubmittedAt: e.now(),
	}
	for _, itemID := range ids {
		attempt.Answers = append(attempt.Answers, quiz.Answer{ItemID: itemID, Label: answers[itemID]})
	}

	subs, err := e.store.GradeAndLog(ctx, attempt)
	if err != nil {
		return Result{}, fmt.Errorf("grade attempt: %w", err)
	}

	res := Result{AttemptID: attempt.ID, Total: len(subs)}
	for _, s := range subs {
		if s.Correct {
			res.Correct++
		}
	}
	res.Score = quiz.ScorePercent(res.Correct, res.Total)

	e.logger.Info("attempt graded",
		"attempt_id", res.AttemptID,
		"student", student,
		"course", c.Name,
		"correct", res.Correct,
		"total", res.Total,
		"score", res.Score,
	)
	return res, nil
}

// Grade is GradeAttempt reduced to the percentage score; failures yield 0.
func (e *Engine) Grade(ctx context.Context, student, courseLabel string, answers map[int64]string) int {
	res, err := e.GradeAttempt(ctx, student, courseLabel, answers)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.logger.Warn("grade for unknown course", "course", courseLabel, "student", student)
		} else {
			e.logger.Error("grade failed", "course", courseLabel, "student", student, "error", err)
		}
		return 0
	}
	return res.Score
}

// CourseRoster summarises a course per student, ordered by student.
func (e *Engine) CourseRoster(ctx context.Context, courseLabel string) []quiz.ScoreSummary {
	rows, err := e.store.CourseRoster(ctx, courseLabel)
	if err != nil {
		e.logger.Error("course roster failed", "course", courseLabel, "error", err)
		return []quiz.ScoreSummary{}
	}
	return rows
}

// StudentHistory summarises one student per course, most recent first.
func (e *Engine) StudentHistory(ctx context.Context, student string) []quiz.ScoreSummary {
	rows, err := e.store.StudentHistory(ctx, student)
	if err != nil {
		e.logger.Error("student history failed", "student", student, "error", err)
		return []quiz.ScoreSummary{}
	}
	return rows
}
