package analyzer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps file extensions to rule sets. Paths with no registered
// extension resolve to the fallback set.
type Registry struct {
	sets     map[string]RuleSet
	byExt    map[string]string
	fallback RuleSet
}

// NewRegistry creates a registry that resolves unknown extensions to fallback.
func NewRegistry(fallback RuleSet) *Registry {
	return &Registry{
		sets:     make(map[string]RuleSet),
		byExt:    make(map[string]string),
		fallback: fallback,
	}
}

// Register adds a rule set and claims its extensions. A later set claiming an
// extension already registered replaces the earlier binding.
func (r *Registry) Register(set RuleSet) {
	r.sets[set.Name] = set
	for _, ext := range set.Extensions {
		r.byExt[normalizeExt(ext)] = set.Name
	}
}

// Resolve returns the rule set for path by its case-insensitive extension.
func (r *Registry) Resolve(path string) RuleSet {
	if name, ok := r.byExt[normalizeExt(filepath.Ext(path))]; ok {
		return r.sets[name]
	}
	return r.fallback
}

// Get retrieves a rule set by name, including the fallback.
func (r *Registry) Get(name string) (RuleSet, error) {
	if s, ok := r.sets[name]; ok {
		return s, nil
	}
	if r.fallback.Name == name {
		return r.fallback, nil
	}
	return RuleSet{}, fmt.Errorf("rule set %q not found", name)
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Sets returns the registered rule sets sorted by name, with the fallback last.
func (r *Registry) Sets() []RuleSet {
	result := make([]RuleSet, 0, len(r.sets)+1)
	for _, s := range r.sets {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return append(result, r.fallback)
}

// Fallback returns the rule set used for unknown extensions.
func (r *Registry) Fallback() RuleSet {
	return r.fallback
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
