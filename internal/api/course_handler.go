package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/teachtool/quizengine/internal/domain/course"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateCourseRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type CourseResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

func toCourseResponse(c *course.Course) CourseResponse {
	return CourseResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses := h.engine.Courses(r.Context())

	resp := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, toCourseResponse(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

// createCourse registers a course. Creating an existing course returns it
// unchanged.
func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.engine.EnsureCourse(r.Context(), name)
	if h.handleStoreError(w, err, "course") {
		return
	}
	respondJSON(w, http.StatusCreated, toCourseResponse(c))
}

func (h *Handler) reseed(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ReseedCanonicalBank(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "reseed failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reseeded"})
}
