package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/buemura/willie/pkg/types"
)

// DefaultMaxLineLength is the LINE_TOO_LONG threshold when none is configured.
const DefaultMaxLineLength = 120

const secretAdvice = "Use os.environ.get() or a .env file"

var secretPatterns = []Pattern{
	{"API_KEY_EXPOSED", regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[=:]\s*["'][^"']{10,}["']`)},
	{"PASSWORD_HARDCODED", regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*["'][^"']+["']`)},
	{"SECRET_EXPOSED", regexp.MustCompile(`(?i)(secret|token)\s*[=:]\s*["'][^"']{8,}["']`)},
	{"AWS_CREDS_EXPOSED", regexp.MustCompile(`(?i)(aws_access_key|aws_secret)\s*[=:]\s*["'][^"']+["']`)},
	{"PRIVATE_KEY_EXPOSED", regexp.MustCompile(`(?i)private[_-]?key\s*[=:]\s*["'][^"']+["']`)},
	{"OPENAI_KEY_EXPOSED", regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`)},
	{"GITHUB_TOKEN_EXPOSED", regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`)},
}

var todoPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX|HACK|BUG)\b`)

// CommonRules returns the checks run on every file before its language rules.
func CommonRules(maxLineLength int) []Rule {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	return []Rule{
		Matcher("hardcoded-secrets", "API keys, passwords, tokens and cloud credentials in source", LineMatcher{
			Patterns: secretPatterns,
			Severity: types.SeverityCritical,
			Message:  "HARDCODED SECRET DETECTED! Move to environment variables!",
			Options:  []IssueOption{WithAdvice(secretAdvice)},
		}),
		Matcher("todo-markers", "TODO, FIXME, XXX, HACK and BUG markers", LineMatcher{
			Patterns: []Pattern{{"TODO_FOUND", todoPattern}},
			Severity: types.SeverityInfo,
			Message:  "Unfinished business detected. Complete it or remove it!",
		}),
		{
			Name:        "long-lines",
			Description: fmt.Sprintf("lines longer than %d characters", maxLineLength),
			IDs:         []string{"LINE_TOO_LONG"},
			Check:       longLines(maxLineLength),
		},
		{
			Name:        "trailing-whitespace",
			Description: "spaces or tabs at the end of a line",
			IDs:         []string{"TRAILING_WHITESPACE"},
			Check:       trailingWhitespace,
		},
	}
}

func longLines(max int) func(*File) []types.Issue {
	return func(f *File) []types.Issue {
		var issues []types.Issue
		for n, line := range f.Lines {
			length := utf8.RuneCountInString(line)
			if length > max {
				issues = append(issues, f.Issue(n+1, max, types.SeverityLow, "LINE_TOO_LONG",
					fmt.Sprintf("Line is %d chars. Keep it under %d!", length, max)))
			}
		}
		return issues
	}
}

func trailingWhitespace(f *File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if !strings.HasSuffix(line, " ") && !strings.HasSuffix(line, "\t") {
			continue
		}
		trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
		opt := WithAutoFix(trimmed)
		if trimmed == "" {
			// A blank line has no non-empty replacement to offer.
			opt = WithAdvice("Delete the whitespace on this blank line")
		}
		issues = append(issues, f.Issue(n+1, utf8.RuneCountInString(trimmed), types.SeverityLow, "TRAILING_WHITESPACE",
			"Trailing whitespace detected. Clean up after yourself!", opt))
	}
	return issues
}
