package api

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/internal/output"
	"github.com/buemura/willie/internal/web/jobs"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager  *jobs.Manager
	Registry *analyzer.Registry
	// Root confines job paths when non-empty.
	Root          string
	MaxIterations int
	MaxLineLength int
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager, registry *analyzer.Registry) *Handlers {
	return &Handlers{
		Manager:       manager,
		Registry:      registry,
		MaxIterations: 10,
		MaxLineLength: analyzer.DefaultMaxLineLength,
	}
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r, h.Root, h.MaxIterations)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := h.Manager.Create(req.mode, req.path, req.maxIterations)
	if err := h.Manager.Start(job.ID); err != nil {
		_ = h.Manager.Delete(job.ID)
		if errors.Is(err, jobs.ErrPathBusy) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start job: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     job.ID,
		"mode":   job.Mode,
		"status": jobs.StatusRunning,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID         string         `json:"id"`
		Mode       jobs.Mode      `json:"mode"`
		Path       string         `json:"path"`
		Status     jobs.JobStatus `json:"status"`
		CreatedAt  time.Time      `json:"created_at"`
		IssueCount int            `json:"issue_count"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:         j.ID,
			Mode:       j.Mode,
			Path:       j.Path,
			Status:     j.Status,
			CreatedAt:  j.CreatedAt,
			IssueCount: j.IssueCount(),
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	job, err := h.Manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report?format=.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	job, err := h.Manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "job is not yet completed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Results); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ruleView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IDs         []string `json:"ids"`
}

type ruleSetView struct {
	Name       string     `json:"name"`
	Extensions []string   `json:"extensions"`
	Rules      []ruleView `json:"rules"`
}

func newRuleSetView(name string, extensions []string, rules []analyzer.Rule) ruleSetView {
	view := ruleSetView{Name: name, Extensions: extensions, Rules: make([]ruleView, len(rules))}
	if view.Extensions == nil {
		view.Extensions = []string{}
	}
	for i, rule := range rules {
		view.Rules[i] = ruleView{Name: rule.Name, Description: rule.Description, IDs: rule.IDs}
	}
	return view
}

// ListRules handles GET /api/v1/rules. Common rules come first since they run
// on every file.
func (h *Handlers) ListRules(w http.ResponseWriter, r *http.Request) {
	views := []ruleSetView{newRuleSetView("common", nil, analyzer.CommonRules(h.MaxLineLength))}
	for _, set := range h.Registry.Sets() {
		views = append(views, newRuleSetView(set.Name, set.Extensions, set.Rules))
	}
	writeJSON(w, http.StatusOK, views)
}
