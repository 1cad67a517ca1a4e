package quiz

import (
	"fmt"
	"time"
)

// TimestampLayout is the display format used for score tables.
const TimestampLayout = "2006-01-02 15:04:05"

// ScoreSummary aggregates submissions for one student (course roster) or one
// course (student history). It is derived from the submission log and never stored.
type ScoreSummary struct {
	Label           string // student name or course name, depending on the view
	Attempted       int    // distinct items attempted
	Correct         int    // sum of correctness flags across every submission
	LastSubmittedAt time.Time
}

// Percentage is 100 × Correct / Attempted. Repeated attempts at the same item
// all count toward Correct, so values above 100 are possible.
func (s ScoreSummary) Percentage() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Attempted)
}

// PercentLabel formats the percentage with one decimal, e.g. "60.0%".
func (s ScoreSummary) PercentLabel() string {
	return fmt.Sprintf("%.1f%%", s.Percentage())
}

// Fraction formats the score as "correct/attempted".
func (s ScoreSummary) Fraction() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Attempted)
}

// Submission is one graded answer in the append-only log.
type Submission struct {
	ID          int64
	AttemptID   string
	Student     string
	CourseID    int64
	ItemID      int64
	Answer      string
	Correct     bool
	SubmittedAt time.Time
}

// Flag returns the stored 0/1 correctness value.
func (s Submission) Flag() int {
	if s.Correct {
		return 1
	}
	return 0
}

// ScorePercent computes the integer-truncated score for a graded answer set.
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return correct * 100 / total
}
