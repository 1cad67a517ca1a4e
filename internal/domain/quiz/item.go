package quiz

import (
	"errors"
	"fmt"
)

// Label identifies one of the four answer options.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// OptionCount is the number of answer options every item carries.
const OptionCount = 4

var labels = [OptionCount]Label{LabelA, LabelB, LabelC, LabelD}

// LabelAt returns the label for a zero-based option position.
// Positions outside 0..3 fall back to A.
func LabelAt(i int) Label {
	if i < 0 || i >= OptionCount {
		return LabelA
	}
	return labels[i]
}

// ParseLabel validates a stored or submitted label.
func ParseLabel(s string) (Label, error) {
	for _, l := range labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid option label %q", s)
}

// Index returns the zero-based option position for the label, or -1.
func (l Label) Index() int {
	for i, v := range labels {
		if v == l {
			return i
		}
	}
	return -1
}

// Draft is a generated item that has not been persisted yet.
type Draft struct {
	Question string
	Options  [OptionCount]string
	Correct  Label
}

// NewDraft builds a draft from an option slice. Exactly four options are required.
func NewDraft(question string, options []string, correct Label) (Draft, error) {
	if question == "" {
		return Draft{}, errors.New("question cannot be empty")
	}
	if len(options) != OptionCount {
		return Draft{}, fmt.Errorf("expected %d options, got %d", OptionCount, len(options))
	}
	if correct.Index() < 0 {
		return Draft{}, fmt.Errorf("invalid option label %q", correct)
	}
	d := Draft{Question: question, Correct: correct}
	copy(d.Options[:], options)
	return d, nil
}

// Item is a persisted multiple-choice question scoped to one course.
// Items are never updated; the bank is only appended to or reseeded.
type Item struct {
	ID       int64
	CourseID int64
	Question string
	Options  [OptionCount]string
	Correct  Label
}

// IsCorrect reports whether a submitted label matches exactly.
func (it Item) IsCorrect(submitted string) bool {
	return submitted == string(it.Correct)
}

// Answer is one submitted (item, label) pair.
type Answer struct {
	ItemID int64
	Label  string
}
