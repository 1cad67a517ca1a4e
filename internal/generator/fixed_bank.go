package generator

import (
	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/domain/quiz"
)

// FixedBank serves curated rows in authored order. The source text is ignored,
// options are never shuffled and the first option is always the correct one.
type FixedBank struct {
	name string
	rows []catalog.Entry
}

func NewFixedBank(name string, rows []catalog.Entry) *FixedBank {
	return &FixedBank{name: name, rows: rows}
}

func (f *FixedBank) Name() string { return "fixed_bank:" + f.name }

func (f *FixedBank) Generate(_ string, count int) []quiz.Draft {
	n := min(max(count, 0), len(f.rows))
	drafts := make([]quiz.Draft, 0, n)
	for _, row := range f.rows[:n] {
		d := quiz.Draft{Question: row.Question, Correct: quiz.LabelA}
		copy(d.Options[:], row.Options)
		drafts = append(drafts, d)
	}
	return drafts
}
