package course_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teachtool/quizengine/internal/domain/course"
)

func TestNewCourse(t *testing.T) {
	c := course.New("Cloud Computing 101")

	assert.Equal(t, "Cloud Computing 101", c.Name)
	assert.Equal(t, course.KindCloudComputing, c.Kind)
	assert.Zero(t, c.ID)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want course.Kind
	}{
		{"Cloud Computing", course.KindCloudComputing},
		{"Intro to OOAD", course.KindOOAD},
		{"Computer Design II", course.KindComputerDesign},
		{"GENAI", course.KindGeneral},
		{"Robotics", course.KindGeneral},
		{"", course.KindGeneral},
		// Matching is case-sensitive.
		{"cloud computing", course.KindGeneral},
		// Priority order: Cloud Computing is checked before OOAD.
		{"OOAD for Cloud Computing", course.KindCloudComputing},
		{"OOAD and Computer Design", course.KindOOAD},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, course.KindOf(tt.name), "KindOf(%q)", tt.name)
	}
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, course.KindOOAD, course.ParseKind("ooad"))
	assert.Equal(t, course.KindComputerDesign, course.ParseKind("computer_design"))
	assert.Equal(t, course.KindGeneral, course.ParseKind("something-else"))
}
