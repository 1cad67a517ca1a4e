package generator

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/teachtool/quizengine/internal/domain/quiz"
)

const (
	minSentenceLen = 20
	minTermLen     = 4 // terms must be longer than this
	excerptLen     = 50
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// cues are checked in order; the sentence is cut at the first match.
var cues = []struct {
	cue string
	re  *regexp.Regexp
}{
	{"is a", regexp.MustCompile(`is a.*`)},
	{"are", regexp.MustCompile(`are.*`)},
	{"include", regexp.MustCompile(`include.*`)},
	{"involves", regexp.MustCompile(`involves.*`)},
}

var stopWords = map[string]bool{
	"which": true, "what": true, "this": true, "that": true,
	"with": true, "from": true, "have": true, "they": true,
}

var placeholderOptions = [quiz.OptionCount]string{
	"The correct answer",
	"An incorrect option",
	"Another wrong choice",
	"Yet another distractor",
}

var genericQuestions = []string{
	"What is the main purpose of this course?",
	"Which concept is most fundamental to this subject?",
	"How would you apply these concepts in a real-world scenario?",
	"What are the key benefits of understanding this subject?",
	"Which of the following is NOT related to this course?",
}

// Heuristic derives questions from arbitrary text by sentence splitting and
// term sampling. Output varies between calls because options are shuffled.
type Heuristic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHeuristic returns a heuristic strategy. A nil rng uses a randomly seeded source.
func NewHeuristic(rng *rand.Rand) *Heuristic {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Heuristic{rng: rng}
}

func (h *Heuristic) Name() string { return "heuristic" }

// Generate examines the first count sentences of text, skipping short ones,
// then pads with generic questions until count is reached or the generic pool
// runs out.
func (h *Heuristic) Generate(text string, count int) []quiz.Draft {
	if count <= 0 {
		return []quiz.Draft{}
	}

	sentences := splitSentences(text)
	drafts := make([]quiz.Draft, 0, min(count, len(sentences)+len(genericQuestions)))

	for i := 0; i < count && i < len(sentences); i++ {
		sentence := strings.TrimSpace(sentences[i])
		if utf8.RuneCountInString(sentence) < minSentenceLen {
			continue
		}

		options := h.optionsFrom(sentence)
		h.shuffle(options)

		// The label is looked up after the in-place shuffle, against the
		// shuffled slice's own first element, so it always resolves to A.
		label := quiz.LabelAt(slices.Index(options, options[0]))

		d := quiz.Draft{Question: questionFrom(sentence), Correct: label}
		copy(d.Options[:], options)
		drafts = append(drafts, d)
	}

	for i := len(drafts); i < count && i < len(genericQuestions); i++ {
		drafts = append(drafts, quiz.Draft{
			Question: genericQuestions[i],
			Options:  placeholderOptions,
			Correct:  quiz.LabelA,
		})
	}

	return drafts
}

func (h *Heuristic) optionsFrom(sentence string) []string {
	var terms []string
	for _, w := range strings.Fields(sentence) {
		if utf8.RuneCountInString(w) > minTermLen && !stopWords[w] {
			terms = append(terms, w)
		}
	}

	if len(terms) < quiz.OptionCount {
		return slices.Clone(placeholderOptions[:])
	}

	h.shuffle(terms)
	return slices.Clone(terms[:quiz.OptionCount])
}

func (h *Heuristic) shuffle(s []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

func splitSentences(text string) []string {
	parts := sentenceBreak.Split(text, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func questionFrom(sentence string) string {
	for _, c := range cues {
		if strings.Contains(sentence, c.cue) {
			return c.re.ReplaceAllString(sentence, c.cue+" what?")
		}
	}
	return "What is the main concept described in: " + truncate(sentence, excerptLen) + "...?"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
