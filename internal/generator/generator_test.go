package generator_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/content"
	"github.com/teachtool/quizengine/internal/domain/course"
	"github.com/teachtool/quizengine/internal/domain/quiz"
	"github.com/teachtool/quizengine/internal/generator"
)

var placeholders = []string{
	"The correct answer",
	"An incorrect option",
	"Another wrong choice",
	"Yet another distractor",
}

func newSelector(t *testing.T) *generator.Selector {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return generator.NewSelector(c, rand.New(rand.NewPCG(1, 2)))
}

func TestSelector_FixedBankKinds(t *testing.T) {
	sel := newSelector(t)

	assert.Equal(t, "fixed_bank:cloud_computing", sel.For(course.KindCloudComputing).Name())
	assert.Equal(t, "fixed_bank:ooad", sel.For(course.KindOOAD).Name())
	assert.Equal(t, "fixed_bank:computer_design", sel.For(course.KindComputerDesign).Name())
	assert.Equal(t, "heuristic", sel.For(course.KindGeneral).Name())
	assert.Equal(t, "heuristic", sel.For(course.Kind("unknown")).Name())
}

func TestSelector_ForLabel(t *testing.T) {
	sel := newSelector(t)

	assert.Equal(t, "fixed_bank:ooad", sel.ForLabel("Advanced OOAD").Name())
	assert.Equal(t, "heuristic", sel.ForLabel("GENAI").Name())
	assert.Equal(t, "heuristic", sel.ForLabel("Robotics").Name())
}

func TestFixedBank_AlwaysLabelA(t *testing.T) {
	sel := newSelector(t)

	for _, kind := range []course.Kind{course.KindCloudComputing, course.KindOOAD, course.KindComputerDesign} {
		for count := 0; count <= 8; count++ {
			drafts := sel.For(kind).Generate("ignored", count)
			assert.Len(t, drafts, min(count, 5), "kind %s count %d", kind, count)
			for _, d := range drafts {
				assert.Equal(t, quiz.LabelA, d.Correct)
			}
		}
	}
}

func TestFixedBank_IgnoresTextAndKeepsAuthoredOrder(t *testing.T) {
	sel := newSelector(t)
	st := sel.For(course.KindCloudComputing)

	a := st.Generate("", 5)
	b := st.Generate(content.Text("Cloud Computing"), 5)
	require.Equal(t, a, b)

	assert.Equal(t, "What is the primary service model that provides virtual machines in the cloud?", a[0].Question)
	assert.Equal(t, "Infrastructure as a Service (IaaS)", a[0].Options[0])
	assert.Equal(t, "Nokia Cloud", a[1].Options[0])
}

func TestFixedBank_NegativeCount(t *testing.T) {
	sel := newSelector(t)
	assert.Empty(t, sel.For(course.KindOOAD).Generate("", -3))
}

// The heuristic strategy resolves the label after shuffling, against the
// shuffled list itself, so every item reports A whatever the shuffle did.
// This is documented behavior, not a statement that A is the right answer.
func TestHeuristic_LabelAlwaysA(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		h := generator.NewHeuristic(rand.New(rand.NewPCG(seed, seed+1)))
		drafts := h.Generate(content.General, 5)
		require.Len(t, drafts, 5)
		for _, d := range drafts {
			assert.Equal(t, quiz.LabelA, d.Correct)
			assert.Len(t, d.Options, quiz.OptionCount)
			for _, o := range d.Options {
				assert.NotEmpty(t, o)
			}
		}
	}
}

func TestHeuristic_QuestionCues(t *testing.T) {
	h := generator.NewHeuristic(rand.New(rand.NewPCG(7, 7)))
	drafts := h.Generate(content.General, 5)
	require.Len(t, drafts, 5)

	assert.Equal(t, "This is a what?", drafts[0].Question)
	// "software" contains the "are" cue.
	assert.Equal(t, "Topics include algorithms, data structures, programming languages, and software what?", drafts[1].Question)
	assert.True(t, strings.HasPrefix(drafts[2].Question, "What is the main concept described in: Students will learn"))
	assert.True(t, strings.HasSuffix(drafts[2].Question, "...?"))
	assert.Equal(t, "What is the main concept described in: Projects and assignments help reinforce learning...?", drafts[4].Question)
}

func TestHeuristic_OptionsComeFromSentenceTerms(t *testing.T) {
	h := generator.NewHeuristic(rand.New(rand.NewPCG(3, 4)))
	drafts := h.Generate("Projects and assignments help reinforce learning.", 1)
	require.Len(t, drafts, 1)

	assert.ElementsMatch(t, []string{"Projects", "assignments", "reinforce", "learning"}, drafts[0].Options[:])
	assert.Equal(t, quiz.LabelA, drafts[0].Correct)
}

func TestHeuristic_FewTermsUsePlaceholders(t *testing.T) {
	h := generator.NewHeuristic(rand.New(rand.NewPCG(5, 6)))
	drafts := h.Generate("It is big and so is a cat on a mat", 1)
	require.Len(t, drafts, 1)

	assert.ElementsMatch(t, placeholders, drafts[0].Options[:])
	assert.Equal(t, quiz.LabelA, drafts[0].Correct)
}

func TestHeuristic_PadsWithGenericQuestions(t *testing.T) {
	h := generator.NewHeuristic(nil)
	drafts := h.Generate("Short. Tiny!", 5)
	require.Len(t, drafts, 5)

	assert.Equal(t, "What is the main purpose of this course?", drafts[0].Question)
	assert.Equal(t, "Which of the following is NOT related to this course?", drafts[4].Question)
	for _, d := range drafts {
		assert.Equal(t, placeholders, d.Options[:])
		assert.Equal(t, quiz.LabelA, d.Correct)
	}
}

func TestHeuristic_PaddingContinuesFromCurrentCount(t *testing.T) {
	h := generator.NewHeuristic(nil)
	text := "Distributed systems replicate state across many machines. " +
		"Consensus protocols coordinate replicas through elected leaders."
	drafts := h.Generate(text, 5)
	require.Len(t, drafts, 5)

	assert.Equal(t, "How would you apply these concepts in a real-world scenario?", drafts[2].Question)
	assert.Equal(t, "Which of the following is NOT related to this course?", drafts[4].Question)
}

func TestHeuristic_TruncatedWhenGenericPoolRunsOut(t *testing.T) {
	h := generator.NewHeuristic(nil)
	assert.Len(t, h.Generate("", 9), 5)
	assert.Empty(t, h.Generate("", 0))
}

func TestGenerate_HugeCountIsBoundedBySource(t *testing.T) {
	h := generator.NewHeuristic(rand.New(rand.NewPCG(9, 10)))
	assert.Len(t, h.Generate(content.General, 1<<40), 5)
	assert.Len(t, h.Generate("", 1<<40), 5)

	sel := newSelector(t)
	assert.Len(t, sel.For(course.KindOOAD).Generate("", 1<<40), 5)
}

func TestHeuristic_OnlyFirstCountSentencesExamined(t *testing.T) {
	h := generator.NewHeuristic(nil)
	text := "One. Two. Replication keeps copies of data on several nodes."
	drafts := h.Generate(text, 2)
	require.Len(t, drafts, 2)

	// Both examined sentences are too short, so only generic items remain.
	assert.Equal(t, "What is the main purpose of this course?", drafts[0].Question)
	assert.Equal(t, "Which concept is most fundamental to this subject?", drafts[1].Question)
}

func TestHeuristic_SameSeedSameOutput(t *testing.T) {
	a := generator.NewHeuristic(rand.New(rand.NewPCG(42, 43))).Generate(content.General, 5)
	b := generator.NewHeuristic(rand.New(rand.NewPCG(42, 43))).Generate(content.General, 5)
	assert.Equal(t, a, b)
}
