package jobs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buemura/willie/internal/scrub"
	"github.com/buemura/willie/pkg/types"
)

// newUUID generates job ids. Extracted as a variable for testing.
var newUUID = uuid.NewString

// ErrPathBusy is returned by Start when a scrub would rewrite files that a
// running scrub owns.
var ErrPathBusy = errors.New("path is being scrubbed by another job")

// Runner does the work behind a job.
type Runner interface {
	Scan(ctx context.Context, root string) ([]types.AnalysisResult, error)
	Scrub(ctx context.Context, root string, maxIterations int, opts ...scrub.Option) (scrub.Report, error)
}

// Manager manages job lifecycle: create, execute, track, store results.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	scrubs  map[string]string // running scrub job id -> absolute root
	runner  Runner
	timeout time.Duration
	log     *zap.SugaredLogger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout bounds how long a single job may run.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a job manager backed by runner.
func NewManager(runner Runner, opts ...Option) *Manager {
	m := &Manager{
		jobs:   make(map[string]*Job),
		scrubs: make(map[string]string),
		runner: runner,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create creates a new pending job.
func (m *Manager) Create(mode Mode, path string, maxIterations int) Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:            newUUID(),
		Mode:          mode,
		Path:          path,
		MaxIterations: maxIterations,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}
	m.jobs[job.ID] = job
	return *job
}

// Start launches the job in a background goroutine.
func (m *Manager) Start(jobID string) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("job %q not found", jobID)
	}
	if job.Status != StatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job %q already %s", jobID, job.Status)
	}
	if job.Mode == ModeScrub {
		root := absPath(job.Path)
		for id, other := range m.scrubs {
			if overlaps(root, other) {
				m.mu.Unlock()
				return fmt.Errorf("job %q: %s overlaps job %q: %w", jobID, job.Path, id, ErrPathBusy)
			}
		}
		m.scrubs[jobID] = root
	}
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	mode, path, limit := job.Mode, job.Path, job.MaxIterations
	m.mu.Unlock()

	go m.execute(jobID, mode, path, limit)
	return nil
}

func (m *Manager) execute(jobID string, mode Mode, path string, limit int) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Errorw("job panicked", "job", jobID, "panic", r)
			m.finish(jobID, nil, nil, fmt.Errorf("panic: %v", r))
		}
	}()

	ctx := context.Background()
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	m.log.Debugw("job started", "job", jobID, "mode", mode, "path", path)
	switch mode {
	case ModeScrub:
		observe := scrub.WithObserver(func(r scrub.Round) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if job, ok := m.jobs[jobID]; ok {
				job.Progress.Iterations = r.Iteration
				job.Progress.FixesApplied += r.Applied
			}
		})
		report, err := m.runner.Scrub(ctx, path, limit, observe)
		outcome := &ScrubOutcome{State: string(report.State), Iterations: report.Iterations}
		m.finish(jobID, report.Results, outcome, err)
	default:
		results, err := m.runner.Scan(ctx, path)
		m.finish(jobID, results, nil, err)
	}
}

func (m *Manager) finish(jobID string, results []types.AnalysisResult, outcome *ScrubOutcome, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.scrubs, jobID)
	job, ok := m.jobs[jobID]
	if !ok {
		// Deleted while running.
		return
	}
	job.CompletedAt = time.Now()
	job.Results = results
	job.Scrub = outcome
	if results != nil {
		report := types.NewReport(results)
		job.Report = &report
	}
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		m.log.Warnw("job failed", "job", jobID, "error", err)
		return
	}
	job.Status = StatusCompleted
	m.log.Debugw("job completed", "job", jobID, "issues", job.IssueCount())
}

// Get returns a snapshot of a job by ID.
func (m *Manager) Get(jobID string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return Job{}, fmt.Errorf("job %q not found", jobID)
	}
	return *job, nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, *j)
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Delete removes a job from the manager.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	delete(m.jobs, jobID)
	return nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// overlaps reports whether one root equals or contains the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
