package types

// Issue is a single problem detected in one snapshot of a file.
// Line is 1-based; 0 marks a file-level issue. When AutoFixable is set, Fix
// holds the complete replacement for that line, otherwise Fix is advice.
type Issue struct {
	FilePath    string   `json:"file"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Severity    Severity `json:"severity"`
	RuleID      string   `json:"rule"`
	Message     string   `json:"message"`
	Snippet     string   `json:"snippet"`
	Fix         string   `json:"fix,omitempty"`
	AutoFixable bool     `json:"auto_fixable"`
}

// Fixable reports whether the issue carries a ready-to-substitute line.
func (i Issue) Fixable() bool {
	return i.AutoFixable && i.Fix != ""
}

// AnalysisResult holds the issues found in one file together with the exact
// content they were computed from.
type AnalysisResult struct {
	FilePath        string  `json:"file"`
	Issues          []Issue `json:"issues"`
	OriginalContent string  `json:"-"`
	// FixedContent is set by the fix step; empty until then.
	FixedContent string `json:"-"`
}

// IssueCount returns the number of issues in the result.
func (r AnalysisResult) IssueCount() int {
	return len(r.Issues)
}

// CountBySeverity returns the number of issues with the given severity.
func (r AnalysisResult) CountBySeverity(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// SeverityCounts returns per-severity issue counts.
func (r AnalysisResult) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int, 5)
	for _, issue := range r.Issues {
		counts[issue.Severity]++
	}
	return counts
}

// IsClean reports whether no issues were found.
func (r AnalysisResult) IsClean() bool {
	return len(r.Issues) == 0
}

// FixableCount returns the number of auto-fixable issues.
func (r AnalysisResult) FixableCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Fixable() {
			n++
		}
	}
	return n
}

// Summary aggregates counts over a set of results.
type Summary struct {
	FilesScanned int              `json:"files_scanned"`
	TotalIssues  int              `json:"total_issues"`
	Fixable      int              `json:"fixable"`
	BySeverity   map[Severity]int `json:"by_severity"`
}

// Summarize folds a complete set of results into a Summary.
func Summarize(results []AnalysisResult) Summary {
	s := Summary{
		FilesScanned: len(results),
		BySeverity:   make(map[Severity]int, 5),
	}
	for _, r := range results {
		s.TotalIssues += r.IssueCount()
		s.Fixable += r.FixableCount()
		for _, issue := range r.Issues {
			s.BySeverity[issue.Severity]++
		}
	}
	return s
}

// IsClean reports whether the summarized results contain no issues.
func (s Summary) IsClean() bool {
	return s.TotalIssues == 0
}

// ReportIssue is the machine-readable form of an Issue. Fix is null when the
// issue carries no suggestion.
type ReportIssue struct {
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Severity    Severity `json:"severity"`
	Rule        string   `json:"rule"`
	Message     string   `json:"message"`
	Snippet     string   `json:"snippet"`
	Fix         *string  `json:"fix"`
	AutoFixable bool     `json:"auto_fixable"`
}

// Report is the JSON document emitted for a scan.
type Report struct {
	FilesScanned int           `json:"files_scanned"`
	TotalIssues  int           `json:"total_issues"`
	Issues       []ReportIssue `json:"issues"`
}

// NewReport flattens results into a Report, preserving detection order.
func NewReport(results []AnalysisResult) Report {
	rep := Report{FilesScanned: len(results), Issues: []ReportIssue{}}
	for _, r := range results {
		for _, issue := range r.Issues {
			ri := ReportIssue{
				File:        issue.FilePath,
				Line:        issue.Line,
				Column:      issue.Column,
				Severity:    issue.Severity,
				Rule:        issue.RuleID,
				Message:     issue.Message,
				Snippet:     issue.Snippet,
				AutoFixable: issue.AutoFixable,
			}
			if issue.Fix != "" {
				fix := issue.Fix
				ri.Fix = &fix
			}
			rep.Issues = append(rep.Issues, ri)
		}
	}
	rep.TotalIssues = len(rep.Issues)
	return rep
}
