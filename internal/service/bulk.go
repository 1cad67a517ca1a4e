package service

import (
	"context"
	"strconv"

	"github.com/teachtool/quizengine/internal/content"
	"github.com/teachtool/quizengine/internal/domain/quiz"
	"github.com/teachtool/quizengine/internal/worker"
)

// GenerateForAllCourses runs upload-time generation for every registered
// course. Drafts are produced concurrently on the worker pool; inserts are
// applied one course at a time. It returns inserted counts keyed by course name.
func (e *Engine) GenerateForAllCourses(ctx context.Context, count int) map[string]int {
	courses := e.Courses(ctx)
	inserted := make(map[string]int, len(courses))
	if len(courses) == 0 {
		return inserted
	}

	type generated struct {
		strategy string
		drafts   []quiz.Draft
	}

	pool := worker.NewPool[generated](e.workers, len(courses))
	for i, c := range courses {
		st := e.selector.For(c.Kind)
		text := content.Text(c.Name)
		pool.Submit(strconv.Itoa(i), func() generated {
			return generated{strategy: st.Name(), drafts: st.Generate(text, count)}
		})
	}
	pool.Close()
	results := pool.Collect()

	for i, c := range courses {
		if ctx.Err() != nil {
			e.logger.Warn("bulk generation cancelled", "error", ctx.Err())
			break
		}
		g := results[strconv.Itoa(i)]
		inserted[c.Name] = e.appendDrafts(ctx, c, g.strategy, g.drafts)
	}
	return inserted
}
