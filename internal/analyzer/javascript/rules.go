// Package javascript holds the rules for JavaScript and TypeScript sources.
package javascript

import (
	"regexp"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "javascript"

// Extensions claimed by the rule set.
var Extensions = []string{".js", ".jsx", ".ts", ".tsx"}

// New returns the JavaScript/TypeScript rule set.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{Name: Name, Extensions: Extensions, Rules: Rules()}
}

var lineComment = analyzer.CommentedWith("//")

func re(expr string) *regexp.Regexp { return regexp.MustCompile(expr) }

// Rules returns the JavaScript checks in evaluation order.
func Rules() []analyzer.Rule {
	return []analyzer.Rule{
		analyzer.Matcher("eval", "eval, Function constructor and string timers", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "DANGEROUS_EVAL", Re: re(`\beval\s*\(`)},
				{ID: "DANGEROUS_FUNCTION_CONSTRUCTOR", Re: re(`\bFunction\s*\(`)},
				{ID: "SETTIMEOUT_STRING", Re: re(`setTimeout\s*\(\s*["']`)},
				{ID: "SETINTERVAL_STRING", Re: re(`setInterval\s*\(\s*["']`)},
			},
			Severity: types.SeverityCritical,
			Message:  "Dangerous eval-like pattern! This is a code injection vector!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Don't use eval(). Ever. Find another way.")},
			Skip:     lineComment,
		}),
		{
			Name:        "inner-html",
			Description: "innerHTML and outerHTML assignment",
			IDs:         []string{"INNERHTML_XSS", "OUTERHTML_XSS"},
			Check:       innerHTML,
		},
		analyzer.Matcher("document-write", "document.write calls", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "DOCUMENT_WRITE", Re: re(`document\.write\s*\(`)}},
			Severity: types.SeverityHigh,
			Message:  "document.write is dangerous and blocks rendering!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use DOM manipulation methods instead")},
		}),
		{
			Name:        "prototype-pollution",
			Description: "computed prototype writes and __proto__ access",
			IDs:         []string{"PROTOTYPE_POLLUTION", "PROTO_ACCESS"},
			Check:       prototypePollution,
		},
		{
			Name:        "sql-injection",
			Description: "template literals and concatenation in SQL calls",
			IDs:         []string{"SQL_INJECTION_TEMPLATE", "SQL_INJECTION_CONCAT"},
			Check:       sqlInjection,
		},
		analyzer.Matcher("console", "console logging left in code", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "CONSOLE_LOG", Re: re(`console\.(log|debug|info|warn|error)\s*\(`)}},
			Severity: types.SeverityLow,
			Message:  "Console statement detected. Remove for production!",
			Skip:     lineComment,
		}),
		analyzer.Matcher("var", "var declarations", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "VAR_USAGE", Re: re(`^\s*var\s+`)}},
			Severity: types.SeverityLow,
			Message:  "Using 'var' in modern JS? Use 'let' or 'const'!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Replace 'var' with 'let' or 'const'")},
		}),
		{
			Name:        "loose-equality",
			Description: "== and != comparisons",
			IDs:         []string{"LOOSE_EQUALITY"},
			Check:       looseEquality,
		},
		{
			Name:        "insecure-fetch",
			Description: "plain-HTTP fetches and disabled TLS verification",
			IDs:         []string{"INSECURE_HTTP", "SSL_DISABLED"},
			Check:       insecureFetch,
		},
		{
			Name:        "cors",
			Description: "wildcard and default CORS configuration",
			IDs:         []string{"CORS_WILDCARD", "CORS_DEFAULT"},
			Check:       cors,
		},
		analyzer.Matcher("xss", "concatenated values flowing into navigation and src sinks", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "XSS_LOCATION", Re: re(`location\.href\s*=.*\+`)},
				{ID: "XSS_WINDOW_OPEN", Re: re(`window\.open\s*\(.*\+`)},
				{ID: "XSS_SRC_ASSIGN", Re: re(`\.src\s*=.*\+`)},
			},
			Severity: types.SeverityHigh,
			Message:  "Potential XSS vector detected!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Validate and sanitize all user input")},
		}),
	}
}

var (
	innerHTMLAssign = re(`\.innerHTML\s*=`)
	outerHTMLAssign = re(`\.outerHTML\s*=`)
)

func innerHTML(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if innerHTMLAssign.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "INNERHTML_XSS",
				"innerHTML is an XSS vector! Use textContent or sanitize!",
				analyzer.WithAdvice("Use element.textContent or DOMPurify.sanitize()")))
		}
		if outerHTMLAssign.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "OUTERHTML_XSS",
				"outerHTML is an XSS vector!"))
		}
	}
	return issues
}

var computedCopy = re(`\[.*\]\s*=.*\[.*\]`)

func prototypePollution(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if computedCopy.MatchString(line) && strings.Contains(strings.ToLower(line), "prototype") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "PROTOTYPE_POLLUTION",
				"Potential prototype pollution detected!"))
		}
		if strings.Contains(line, "__proto__") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "PROTO_ACCESS",
				"__proto__ access detected! This is dangerous!"))
		}
	}
	return issues
}

var (
	sqlTemplate = re(`(query|execute)\s*\(\s*\x60`)
	sqlConcat   = re(`(query|execute)\s*\([^)]*\+`)
)

func sqlInjection(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if sqlTemplate.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "SQL_INJECTION_TEMPLATE",
				"Template literal in SQL query = INJECTION RISK!",
				analyzer.WithAdvice("Use parameterized queries with prepared statements")))
		}
		if sqlConcat.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "SQL_INJECTION_CONCAT",
				"String concatenation in SQL = INJECTION RISK!"))
		}
	}
	return issues
}

var (
	looseEq  = re(`[^!=]==[^=]`)
	looseNeq = re(`[^!]!=[^=]`)
)

func looseEquality(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if lineComment(line) {
			continue
		}
		if looseEq.MatchString(line) || looseNeq.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "LOOSE_EQUALITY",
				"Loose equality (==) can cause type coercion bugs!",
				analyzer.WithAdvice("Use === or !== for strict equality")))
		}
	}
	return issues
}

var (
	httpFetch   = re(`fetch\s*\(\s*["']http://`)
	tlsDisabled = re(`rejectUnauthorized\s*:\s*false`)
)

func insecureFetch(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if httpFetch.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "INSECURE_HTTP",
				"Using HTTP instead of HTTPS! Insecure!",
				analyzer.WithAdvice("Use HTTPS for all requests")))
		}
		if tlsDisabled.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "SSL_DISABLED",
				"SSL verification disabled! MITM attack vector!"))
		}
	}
	return issues
}

var (
	corsWildcard = re(`Access-Control-Allow-Origin.*\*`)
	corsDefault  = re(`cors\(\s*\)`)
)

func cors(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if corsWildcard.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "CORS_WILDCARD",
				"CORS wildcard (*) allows any origin! Restrict it!"))
		}
		if corsDefault.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "CORS_DEFAULT",
				"Default CORS config is too permissive!"))
		}
	}
	return issues
}
