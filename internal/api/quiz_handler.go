package api

import (
	"net/http"

	"github.com/teachtool/quizengine/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type GenerateRequest struct {
	SourceText string `json:"source_text"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=100"`
}

type GenerateResponse struct {
	Course   string `json:"course"`
	Inserted int    `json:"inserted"`
}

type GenerateAllRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=100"`
}

type GenerateAllResponse struct {
	Inserted map[string]int `json:"inserted"`
}

type OptionResponse struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// ItemResponse never carries the correct label.
type ItemResponse struct {
	ID       int64            `json:"id"`
	Question string           `json:"question"`
	Options  []OptionResponse `json:"options"`
}

type SubmitRequest struct {
	Student string           `json:"student" validate:"required,max=200"`
	Answers map[int64]string `json:"answers" validate:"required,dive,keys,gt=0,endkeys,max=64"`
}

type SubmitResponse struct {
	AttemptID string `json:"attempt_id,omitempty"`
	Score     int    `json:"score"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
}

type RosterRow struct {
	Student         string  `json:"student"`
	Attempted       int     `json:"attempted"`
	Correct         int     `json:"correct"`
	Fraction        string  `json:"fraction"`
	Percentage      string  `json:"percentage"`
	PercentValue    float64 `json:"percent_value"`
	LastSubmittedAt string  `json:"last_submitted_at"`
}

type HistoryRow struct {
	Course          string  `json:"course"`
	Attempted       int     `json:"attempted"`
	Correct         int     `json:"correct"`
	Fraction        string  `json:"fraction"`
	Percentage      string  `json:"percentage"`
	PercentValue    float64 `json:"percent_value"`
	LastSubmittedAt string  `json:"last_submitted_at"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generate runs the course's strategy and appends the result. Without
// source_text the course's representative text is used.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	courseName := pathParam(r, "course")
	var req GenerateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	count := req.Count
	if count == 0 {
		count = h.uploadCount
	}

	var n int
	if req.SourceText == "" {
		n = h.engine.GenerateForCourse(r.Context(), courseName, count)
	} else {
		n = h.engine.GenerateAndAppend(r.Context(), courseName, req.SourceText, count)
	}
	respondJSON(w, http.StatusCreated, GenerateResponse{Course: courseName, Inserted: n})
}

func (h *Handler) generateAll(w http.ResponseWriter, r *http.Request) {
	var req GenerateAllRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	count := req.Count
	if count == 0 {
		count = h.uploadCount
	}
	respondJSON(w, http.StatusCreated, GenerateAllResponse{
		Inserted: h.engine.GenerateForAllCourses(r.Context(), count),
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items := h.engine.ItemsFor(r.Context(), pathParam(r, "course"))

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		opts := make([]OptionResponse, 0, quiz.OptionCount)
		for i, text := range it.Options {
			opts = append(opts, OptionResponse{Label: string(quiz.LabelAt(i)), Text: text})
		}
		resp = append(resp, ItemResponse{ID: it.ID, Question: it.Question, Options: opts})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.engine.GradeAttempt(r.Context(), req.Student, pathParam(r, "course"), req.Answers)
	if h.handleStoreError(w, err, "course") {
		return
	}
	respondJSON(w, http.StatusOK, SubmitResponse{
		AttemptID: res.AttemptID,
		Score:     res.Score,
		Correct:   res.Correct,
		Total:     res.Total,
	})
}

func (h *Handler) roster(w http.ResponseWriter, r *http.Request) {
	rows := h.engine.CourseRoster(r.Context(), pathParam(r, "course"))

	resp := make([]RosterRow, 0, len(rows))
	for _, s := range rows {
		resp = append(resp, RosterRow{
			Student:         s.Label,
			Attempted:       s.Attempted,
			Correct:         s.Correct,
			Fraction:        s.Fraction(),
			Percentage:      s.PercentLabel(),
			PercentValue:    s.Percentage(),
			LastSubmittedAt: s.LastSubmittedAt.Format(quiz.TimestampLayout),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	rows := h.engine.StudentHistory(r.Context(), pathParam(r, "student"))

	resp := make([]HistoryRow, 0, len(rows))
	for _, s := range rows {
		resp = append(resp, HistoryRow{
			Course:          s.Label,
			Attempted:       s.Attempted,
			Correct:         s.Correct,
			Fraction:        s.Fraction(),
			Percentage:      s.PercentLabel(),
			PercentValue:    s.Percentage(),
			LastSubmittedAt: s.LastSubmittedAt.Format(quiz.TimestampLayout),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
