package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/domain/course"
	"github.com/teachtool/quizengine/internal/domain/quiz"
	"github.com/teachtool/quizengine/internal/generator"
	"github.com/teachtool/quizengine/internal/id"
	"github.com/teachtool/quizengine/internal/service"
	"github.com/teachtool/quizengine/internal/store"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, s store.Store) *service.Engine {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	sel := generator.NewSelector(c, rand.New(rand.NewPCG(7, 11)))
	return service.NewEngine(s, sel, c, discardLogger(),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithWorkers(2),
	)
}

func setup(t *testing.T) (*service.Engine, *store.SQLStore) {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	e := newEngine(t, s)
	require.NoError(t, e.ReseedCanonicalBank(context.Background()))
	return e, s
}

func courseNames(t *testing.T) []string {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return c.CourseNames()
}

// answersMatching answers the first n items correctly and the rest wrongly.
func answersMatching(items []quiz.Item, n int) map[int64]string {
	out := make(map[int64]string, len(items))
	for i, it := range items {
		if i < n {
			out[it.ID] = string(it.Correct)
			continue
		}
		wrong := quiz.LabelAt((it.Correct.Index() + 1) % quiz.OptionCount)
		out[it.ID] = string(wrong)
	}
	return out
}

func TestReseedCanonicalBank_Idempotent(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	before := map[string]int{}
	for _, name := range courseNames(t) {
		before[name] = len(e.ItemsFor(ctx, name))
	}
	require.NoError(t, e.ReseedCanonicalBank(ctx))
	for _, name := range courseNames(t) {
		assert.Equal(t, before[name], len(e.ItemsFor(ctx, name)), name)
		assert.Equal(t, 10, before[name], name)
	}
}

func TestGrade_OOADScenario(t *testing.T) {
	e, s := setup(t)
	ctx := context.Background()

	items := e.ItemsFor(ctx, "OOAD")
	require.Len(t, items, 10)

	score := e.Grade(ctx, "alice", "OOAD", answersMatching(items, 6))
	assert.Equal(t, 60, score)

	history := e.StudentHistory(ctx, "alice")
	require.Len(t, history, 1)
	assert.Equal(t, "OOAD", history[0].Label)
	assert.Equal(t, 10, history[0].Attempted)
	assert.Equal(t, 6, history[0].Correct)
	assert.Equal(t, "60.0%", history[0].PercentLabel())
	assert.Equal(t, "6/10", history[0].Fraction())
	assert.Equal(t, fixedNow, history[0].LastSubmittedAt)

	// Second attempt at the same items with different answers.
	score = e.Grade(ctx, "alice", "OOAD", answersMatching(items, 10))
	assert.Equal(t, 100, score)

	logged, err := s.Submissions(ctx, "alice", "OOAD")
	require.NoError(t, err)
	assert.Len(t, logged, 20)

	roster := e.CourseRoster(ctx, "OOAD")
	require.Len(t, roster, 1)
	assert.Equal(t, "alice", roster[0].Label)
	assert.Equal(t, 10, roster[0].Attempted)
	assert.Equal(t, 16, roster[0].Correct)
	assert.Equal(t, "160.0%", roster[0].PercentLabel())
}

func TestGrade_ScoreIsTruncated(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	items := e.ItemsFor(ctx, "Cloud Computing")[:3]
	assert.Equal(t, 66, e.Grade(ctx, "bob", "Cloud Computing", answersMatching(items, 2)))
	assert.Equal(t, 33, e.Grade(ctx, "bob", "Cloud Computing", answersMatching(items, 1)))
}

func TestGrade_EmptyAnswers(t *testing.T) {
	e, s := setup(t)
	ctx := context.Background()

	assert.Equal(t, 0, e.Grade(ctx, "alice", "OOAD", map[int64]string{}))

	logged, err := s.Submissions(ctx, "alice", "OOAD")
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestGrade_UnknownCourseWritesNothing(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	items := e.ItemsFor(ctx, "OOAD")
	assert.Equal(t, 0, e.Grade(ctx, "alice", "Astrophysics", answersMatching(items, 10)))
	assert.Empty(t, e.StudentHistory(ctx, "alice"))

	_, err := e.GradeAttempt(ctx, "alice", "Astrophysics", map[int64]string{1: "A"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGrade_UnknownItemIsLoggedIncorrect(t *testing.T) {
	e, s := setup(t)
	ctx := context.Background()

	items := e.ItemsFor(ctx, "Robotics")
	answers := map[int64]string{
		items[0].ID: string(items[0].Correct),
		987654:      "A",
	}

	res, err := e.GradeAttempt(ctx, "dana", "Robotics", answers)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, 2, res.Total)
	assert.True(t, id.Valid(res.AttemptID))

	logged, err := s.Submissions(ctx, "dana", "Robotics")
	require.NoError(t, err)
	require.Len(t, logged, 2)
	// Rows are written in ascending item id order.
	assert.Equal(t, items[0].ID, logged[0].ItemID)
	assert.Equal(t, int64(987654), logged[1].ItemID)
	assert.False(t, logged[1].Correct)
	assert.Equal(t, res.AttemptID, logged[1].AttemptID)
}

func TestGrade_AppendsOneRowPerAnswer(t *testing.T) {
	e, s := setup(t)
	ctx := context.Background()

	items := e.ItemsFor(ctx, "Computer Design")
	for n := 1; n <= 3; n++ {
		e.Grade(ctx, "erin", "Computer Design", answersMatching(items[:n], 0))
	}

	logged, err := s.Submissions(ctx, "erin", "Computer Design")
	require.NoError(t, err)
	assert.Len(t, logged, 1+2+3)
}

func TestGenerateAndAppend_CloudComputingAlwaysFive(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	for _, text := range []string{"", "irrelevant", "Anything at all. With several sentences in it!"} {
		before := len(e.ItemsFor(ctx, "Cloud Computing"))
		n := e.GenerateAndAppend(ctx, "Cloud Computing", text, 5)
		assert.Equal(t, 5, n)

		items := e.ItemsFor(ctx, "Cloud Computing")
		require.Len(t, items, before+5)
		for _, it := range items[before:] {
			assert.Equal(t, quiz.LabelA, it.Correct)
		}
	}
}

func TestGenerateAndAppend_HeuristicLabelA(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	text := "Neural networks are layered function approximators trained by gradient descent. " +
		"Transformers include attention layers between feedforward blocks."
	n := e.GenerateAndAppend(ctx, "GENAI", text, 4)
	assert.Equal(t, 4, n)

	items := e.ItemsFor(ctx, "GENAI")
	require.Len(t, items, 14)
	for _, it := range items[10:] {
		// Documented behaviour: heuristic items always record A as correct.
		assert.Equal(t, quiz.LabelA, it.Correct)
	}
}

func TestGenerateAndAppend_CreatesUnknownCourse(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	n := e.GenerateForCourse(ctx, "Data Mining", 3)
	assert.Equal(t, 3, n)
	assert.Len(t, e.ItemsFor(ctx, "Data Mining"), 3)

	names := []string{}
	for _, c := range e.Courses(ctx) {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Data Mining")
}

func TestGenerateForAllCourses(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	got := e.GenerateForAllCourses(ctx, 5)
	require.Len(t, got, len(courseNames(t)))
	for _, name := range courseNames(t) {
		assert.Equal(t, 5, got[name], name)
		assert.Len(t, e.ItemsFor(ctx, name), 15, name)
	}
}

func TestStudentHistory_MostRecentFirst(t *testing.T) {
	s, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c, err := catalog.Load()
	require.NoError(t, err)
	clock := fixedNow
	e := service.NewEngine(s, generator.NewSelector(c, nil), c, discardLogger(),
		service.WithClock(func() time.Time { return clock }))
	ctx := context.Background()
	require.NoError(t, e.ReseedCanonicalBank(ctx))

	e.Grade(ctx, "frank", "OOAD", answersMatching(e.ItemsFor(ctx, "OOAD")[:1], 1))
	clock = clock.Add(time.Hour)
	e.Grade(ctx, "frank", "GENAI", answersMatching(e.ItemsFor(ctx, "GENAI")[:1], 1))

	history := e.StudentHistory(ctx, "frank")
	require.Len(t, history, 2)
	assert.Equal(t, "GENAI", history[0].Label)
	assert.Equal(t, "OOAD", history[1].Label)
}

// brokenStore fails every call the engine makes on the degrade paths.
type brokenStore struct {
	store.Store
}

var errDown = errors.New("database is down")

func (brokenStore) Ping(context.Context) error { return errDown }
func (brokenStore) ListCourses(context.Context) ([]*course.Course, error) {
	return nil, errDown
}
func (brokenStore) EnsureCourse(context.Context, string) (*course.Course, error) {
	return nil, errDown
}
func (brokenStore) CourseByName(context.Context, string) (*course.Course, error) {
	return nil, errDown
}
func (brokenStore) Reseed(context.Context, []catalog.CourseBank) error { return errDown }
func (brokenStore) ItemsFor(context.Context, string) ([]quiz.Item, error) {
	return nil, errDown
}
func (brokenStore) CourseRoster(context.Context, string) ([]quiz.ScoreSummary, error) {
	return nil, errDown
}
func (brokenStore) StudentHistory(context.Context, string) ([]quiz.ScoreSummary, error) {
	return nil, errDown
}

func TestEngine_DegradesWhenStoreFails(t *testing.T) {
	e := newEngine(t, brokenStore{})
	ctx := context.Background()

	assert.ErrorIs(t, e.ReseedCanonicalBank(ctx), errDown)
	assert.ErrorIs(t, e.Ping(ctx), errDown)

	assert.NotNil(t, e.Courses(ctx))
	assert.Empty(t, e.Courses(ctx))
	assert.NotNil(t, e.ItemsFor(ctx, "OOAD"))
	assert.Empty(t, e.ItemsFor(ctx, "OOAD"))
	assert.Empty(t, e.CourseRoster(ctx, "OOAD"))
	assert.Empty(t, e.StudentHistory(ctx, "alice"))
	assert.Equal(t, 0, e.Grade(ctx, "alice", "OOAD", map[int64]string{1: "A"}))
	assert.Equal(t, 0, e.GenerateAndAppend(ctx, "OOAD", "text", 5))
	assert.Empty(t, e.GenerateForAllCourses(ctx, 5))
}
