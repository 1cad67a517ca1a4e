package course

import (
	"strings"
	"time"
)

// Kind selects the generation strategy for a course. It is resolved once,
// when the course is created, and stored alongside it.
type Kind string

const (
	KindCloudComputing Kind = "cloud_computing"
	KindOOAD           Kind = "ooad"
	KindComputerDesign Kind = "computer_design"
	KindGeneral        Kind = "general"
)

// kindKeywords is checked in order; the first keyword contained in the
// course name wins.
var kindKeywords = []struct {
	keyword string
	kind    Kind
}{
	{"Cloud Computing", KindCloudComputing},
	{"OOAD", KindOOAD},
	{"Computer Design", KindComputerDesign},
}

// KindOf resolves the kind of a course from its name.
func KindOf(name string) Kind {
	for _, kw := range kindKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.kind
		}
	}
	return KindGeneral
}

// ParseKind converts a stored kind back to its typed value.
// Unknown values resolve to KindGeneral.
func ParseKind(s string) Kind {
	switch k := Kind(s); k {
	case KindCloudComputing, KindOOAD, KindComputerDesign:
		return k
	default:
		return KindGeneral
	}
}

// Course is identified by its unique, human-readable name.
type Course struct {
	ID        int64
	Name      string
	Kind      Kind
	CreatedAt time.Time
}

// New creates an unsaved course with its kind resolved from the name.
func New(name string) *Course {
	return &Course{
		Name: name,
		Kind: KindOf(name),
	}
}
