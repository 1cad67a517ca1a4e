// Package catalog loads the static question catalog: the canonical bank that
// reseeding reloads, and the tables behind the fixed-bank generation strategies.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/teachtool/quizengine/internal/domain/course"
	"github.com/teachtool/quizengine/internal/domain/quiz"
)

//go:embed catalog.yaml
var embedded []byte

// Entry is one authored question.
type Entry struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Correct  string   `yaml:"correct"`
}

// CourseBank is the canonical item list of one course, in authored order.
type CourseBank struct {
	Course string  `yaml:"course"`
	Items  []Entry `yaml:"items"`
}

// Catalog is the parsed asset.
type Catalog struct {
	Canonical  []CourseBank            `yaml:"canonical"`
	FixedBanks map[course.Kind][]Entry `yaml:"fixed_banks"`
}

var loadOnce = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embedded)
})

// Load returns the embedded catalog, parsed on first use.
func Load() (*Catalog, error) {
	return loadOnce()
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Canonical))
	for _, b := range c.Canonical {
		if b.Course == "" {
			return fmt.Errorf("catalog: canonical bank without course name")
		}
		if seen[b.Course] {
			return fmt.Errorf("catalog: duplicate canonical bank %q", b.Course)
		}
		seen[b.Course] = true
		for i, e := range b.Items {
			if _, err := e.Draft(); err != nil {
				return fmt.Errorf("catalog: %s item %d: %w", b.Course, i, err)
			}
		}
	}
	for kind, rows := range c.FixedBanks {
		for i, e := range rows {
			if len(e.Options) != quiz.OptionCount {
				return fmt.Errorf("catalog: fixed bank %s row %d: expected %d options, got %d",
					kind, i, quiz.OptionCount, len(e.Options))
			}
		}
	}
	return nil
}

// Draft converts a canonical entry into an insertable draft.
func (e Entry) Draft() (quiz.Draft, error) {
	label, err := quiz.ParseLabel(e.Correct)
	if err != nil {
		return quiz.Draft{}, err
	}
	return quiz.NewDraft(e.Question, e.Options, label)
}

// Drafts returns the bank's items as drafts. The catalog is validated on
// parse, so conversion cannot fail here.
func (b CourseBank) Drafts() []quiz.Draft {
	drafts := make([]quiz.Draft, 0, len(b.Items))
	for _, e := range b.Items {
		d, _ := e.Draft()
		drafts = append(drafts, d)
	}
	return drafts
}

// Bank returns the canonical bank of a course, if present.
func (c *Catalog) Bank(courseName string) (CourseBank, bool) {
	for _, b := range c.Canonical {
		if b.Course == courseName {
			return b, true
		}
	}
	return CourseBank{}, false
}

// CourseNames lists the courses with a canonical bank, in catalog order.
func (c *Catalog) CourseNames() []string {
	names := make([]string, 0, len(c.Canonical))
	for _, b := range c.Canonical {
		names = append(names, b.Course)
	}
	return names
}
