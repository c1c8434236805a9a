package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/buemura/willie/pkg/types"
)

// HTMLFormatter renders results as a self-contained HTML report with
// styled severity badges and expandable issue details.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, results []types.AnalysisResult) error {
	data := templateData{Summary: types.Summarize(results)}
	for _, r := range results {
		if r.IsClean() {
			continue
		}
		data.Files = append(data.Files, fileSection{
			Path:   r.FilePath,
			Issues: sortedIssues([]types.AnalysisResult{r}),
		})
	}
	return htmlTpl.Execute(w, data)
}

type fileSection struct {
	Path   string
	Issues []types.Issue
}

type templateData struct {
	Summary types.Summary
	Files   []fileSection
}

// severityClass maps a Severity to a CSS class name.
func severityClass(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "critical"
	case types.SeverityHigh:
		return "high"
	case types.SeverityMedium:
		return "medium"
	case types.SeverityLow:
		return "low"
	default:
		return "info"
	}
}

var funcMap = template.FuncMap{
	"severityClass": severityClass,
	"count": func(s types.Summary, sev string) int {
		return s.BySeverity[types.Severity(sev)]
	},
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Willie Grease Report</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>Willie Grease Report</h1>

  <div class="summary-bar">
    <span class="badge critical">{{count .Summary "CRITICAL"}} Critical</span>
    <span class="badge high">{{count .Summary "HIGH"}} High</span>
    <span class="badge medium">{{count .Summary "MEDIUM"}} Medium</span>
    <span class="badge low">{{count .Summary "LOW"}} Low</span>
    <span class="badge info">{{count .Summary "INFO"}} Info</span>
    <span class="total">{{.Summary.TotalIssues}} issues in {{.Summary.FilesScanned}} files, {{.Summary.Fixable}} auto-fixable</span>
  </div>

  {{if not .Files}}
    <p class="no-findings">No issues found.</p>
  {{end}}
  {{range .Files}}
  <section class="file-section">
    <h2>{{.Path}}</h2>
    <table>
      <thead>
        <tr><th>Severity</th><th>Line</th><th>Rule</th><th>Message</th></tr>
      </thead>
      <tbody>
        {{range .Issues}}
        <tr>
          <td><span class="badge {{severityClass .Severity}}">{{.Severity}}</span></td>
          <td>{{.Line}}</td>
          <td><code>{{.RuleID}}</code></td>
          <td>
            {{.Message}}
            {{if or .Snippet .Fix}}
            <details>
              <summary>Details</summary>
              {{if .Snippet}}<p><strong>Code:</strong> <code>{{.Snippet}}</code></p>{{end}}
              {{if .Fix}}<p><strong>{{if .AutoFixable}}Auto-fix{{else}}Suggestion{{end}}:</strong> <code>{{.Fix}}</code></p>{{end}}
            </details>
            {{end}}
          </td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </section>
  {{end}}
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:1rem;font-size:1.8rem}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.critical{background:#d32f2f}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
.badge.info{background:#757575}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
details{margin-top:.4rem}
summary{cursor:pointer;color:#1565c0;font-size:.85rem}
code{font-family:SFMono-Regular,Menlo,monospace;font-size:.85rem;background:#eef;padding:0 4px;border-radius:3px}
.no-findings{color:#666;font-style:italic}
.file-section{margin-bottom:2rem}
`
