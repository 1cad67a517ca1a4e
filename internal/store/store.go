package store

import (
	"context"
	"errors"
	"time"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/domain/course"
	"github.com/teachtool/quizengine/internal/domain/quiz"
)

var (
	ErrNotFound = errors.New("not found")
)

// Attempt is one graded answer set, logged as one submission row per answer.
type Attempt struct {
	ID          string
	Student     string
	CourseID    int64
	Answers     []quiz.Answer
	SubmittedAt time.Time
}

// Store is the persistence boundary of the quiz engine.
type Store interface {
	Ping(ctx context.Context) error

	EnsureCourse(ctx context.Context, name string) (*course.Course, error)
	CourseByName(ctx context.Context, name string) (*course.Course, error)
	ListCourses(ctx context.Context) ([]*course.Course, error)

	Reseed(ctx context.Context, banks []catalog.CourseBank) error
	AppendItems(ctx context.Context, courseID int64, drafts []quiz.Draft) (int, error)
	ItemsFor(ctx context.Context, courseName string) ([]quiz.Item, error)
	ItemByID(ctx context.Context, id int64) (*quiz.Item, error)

	GradeAndLog(ctx context.Context, attempt Attempt) ([]quiz.Submission, error)
	Submissions(ctx context.Context, student, courseName string) ([]quiz.Submission, error)
	CourseRoster(ctx context.Context, courseName string) ([]quiz.ScoreSummary, error)
	StudentHistory(ctx context.Context, student string) ([]quiz.ScoreSummary, error)
}
