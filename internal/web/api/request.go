package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/buemura/willie/internal/web/jobs"
)

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	Path          string `json:"path"`
	Mode          string `json:"mode"`
	MaxIterations *int   `json:"max_iterations"`
}

// scanRequest is a validated CreateScanRequest.
type scanRequest struct {
	path          string
	mode          jobs.Mode
	maxIterations int
}

// decodeCreateScanRequest reads and validates the request body. Relative
// paths resolve against root; when root is set the path must stay inside it.
func decodeCreateScanRequest(r *http.Request, root string, defaultIterations int) (scanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return scanRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if strings.TrimSpace(req.Path) == "" {
		return scanRequest{}, fmt.Errorf("path is required")
	}

	mode, ok := jobs.ParseMode(req.Mode)
	if !ok {
		return scanRequest{}, fmt.Errorf("unknown mode %q (want scan or scrub)", req.Mode)
	}

	iterations := defaultIterations
	if req.MaxIterations != nil {
		if *req.MaxIterations < 0 {
			return scanRequest{}, fmt.Errorf("max_iterations must be non-negative")
		}
		iterations = *req.MaxIterations
	}

	path, err := confine(root, req.Path)
	if err != nil {
		return scanRequest{}, err
	}

	return scanRequest{path: path, mode: mode, maxIterations: iterations}, nil
}

func confine(root, path string) (string, error) {
	if root == "" {
		return filepath.Clean(path), nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside %s", path, root)
	}
	return path, nil
}
