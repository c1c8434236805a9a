// Package discovery enumerates the files under a scan root.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultIgnoreDirs are directory names never descended into.
var DefaultIgnoreDirs = []string{
	".git", "__pycache__", "node_modules", "venv", ".venv", "env", ".env",
	"dist", "build", ".idea", ".vscode", "target", "bin", "obj", ".next",
	"coverage", ".pytest_cache",
}

// DefaultIgnoreFiles are file names always skipped.
var DefaultIgnoreFiles = []string{
	".DS_Store", "Thumbs.db", ".gitignore", ".gitattributes",
	"package-lock.json", "yarn.lock", "poetry.lock", "Cargo.lock",
}

// Discoverer walks a filesystem for analyzable files.
type Discoverer struct {
	fs          afero.Fs
	ignoreDirs  map[string]bool
	ignoreFiles map[string]bool
	log         *zap.SugaredLogger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithIgnoreDirs adds directory names to skip.
func WithIgnoreDirs(names ...string) Option {
	return func(d *Discoverer) { addAll(d.ignoreDirs, names) }
}

// WithIgnoreFiles adds file names to skip.
func WithIgnoreFiles(names ...string) Option {
	return func(d *Discoverer) { addAll(d.ignoreFiles, names) }
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(d *Discoverer) { d.log = log }
}

// New creates a Discoverer on fs with the default ignore lists.
func New(fs afero.Fs, opts ...Option) *Discoverer {
	d := &Discoverer{
		fs:          fs,
		ignoreDirs:  make(map[string]bool),
		ignoreFiles: make(map[string]bool),
		log:         zap.NewNop().Sugar(),
	}
	addAll(d.ignoreDirs, DefaultIgnoreDirs)
	addAll(d.ignoreFiles, DefaultIgnoreFiles)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover returns the files under root whose extension is in extensions,
// in lexical walk order. A root that is a regular file is returned as-is.
// An empty extension list keeps every file. Entries below root that cannot
// be read are skipped; only a failure on root itself is returned.
func (d *Discoverer) Discover(root string, extensions []string) ([]string, error) {
	info, err := d.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discovering %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	var files []string
	err = afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			d.log.Warnw("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := info.Name()
		if info.IsDir() {
			if path != root && d.ignoreDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.ignoreFiles[name] {
			return nil
		}
		if len(exts) > 0 && !exts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func addAll(set map[string]bool, names []string) {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = true
		}
	}
}
