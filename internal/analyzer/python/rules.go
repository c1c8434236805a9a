// Package python holds the rules for Python sources.
package python

import (
	"regexp"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "python"

// Extensions claimed by the rule set.
var Extensions = []string{".py"}

// New returns the Python rule set.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{Name: Name, Extensions: Extensions, Rules: Rules()}
}

var hashComment = analyzer.CommentedWith("#")

// Rules returns the Python checks in evaluation order.
func Rules() []analyzer.Rule {
	return []analyzer.Rule{
		analyzer.Matcher("eval-exec", "eval() and exec() calls", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "DANGEROUS_EVAL", Re: regexp.MustCompile(`\b(eval|exec)\s*\(`)}},
			Severity: types.SeverityCritical,
			Message:  "eval() or exec() detected! This is a code injection vector!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use ast.literal_eval() for data parsing, or refactor entirely")},
			Skip:     hashComment,
		}),
		analyzer.Matcher("pickle", "pickle.load on untrusted data", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "INSECURE_PICKLE", Re: regexp.MustCompile(`pickle\.(load|loads)\s*\(`)}},
			Severity: types.SeverityCritical,
			Message:  "pickle.load() on untrusted data = Remote Code Execution!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use json for data serialization, or validate source")},
		}),
		analyzer.Matcher("shell-injection", "os.system, os.popen and shell=True subprocesses", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "OS_SYSTEM_DANGEROUS", Re: regexp.MustCompile(`os\.system\s*\(`)},
				{ID: "OS_POPEN_DANGEROUS", Re: regexp.MustCompile(`os\.popen\s*\(`)},
				{ID: "SHELL_TRUE_DANGEROUS", Re: regexp.MustCompile(`subprocess\.\w+\s*\([^)]*shell\s*=\s*True`)},
				{ID: "COMMANDS_DEPRECATED", Re: regexp.MustCompile(`commands\.\w+\s*\(`)},
			},
			Severity: types.SeverityHigh,
			Message:  "Shell command with potential injection vulnerability!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use subprocess.run() with shell=False and a list of args")},
			Skip:     hashComment,
		}),
		{
			Name:        "sql-injection",
			Description: "string-built SQL passed to execute or query",
			IDs:         []string{"SQL_INJECTION", "SQL_INJECTION_FSTRING"},
			Check:       sqlInjection,
		},
		{
			Name:        "insecure-imports",
			Description: "telnetlib, ftplib, md5, sha, crypt and security-sensitive random",
			IDs:         []string{"INSECURE_IMPORT", "INSECURE_RANDOM"},
			Check:       insecureImports,
		},
		analyzer.Matcher("assert", "assert used for validation", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "ASSERT_IN_PROD", Re: regexp.MustCompile(`^\s*assert\s+`)}},
			Severity: types.SeverityMedium,
			Message:  "assert can be disabled with -O flag! Don't use for validation!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use proper if/raise statements for input validation")},
		}),
		analyzer.Matcher("bare-except", "except: clauses without an exception type", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "BARE_EXCEPT", Re: regexp.MustCompile(`^\s*except\s*:`)}},
			Severity: types.SeverityMedium,
			Message:  "Bare 'except:' catches everything including KeyboardInterrupt!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("except Exception as e:")},
		}),
		analyzer.Matcher("mutable-default", "list or dict literals as default arguments", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "MUTABLE_DEFAULT", Re: regexp.MustCompile(`def\s+\w+\s*\([^)]*=\s*(\[\]|\{\}|\{[^}]+\}|\[[^\]]+\])`)}},
			Severity: types.SeverityMedium,
			Message:  "Mutable default argument! This WILL bite you!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use None as default and create in function body")},
		}),
		analyzer.Matcher("unsanitized-input", "input() passed straight into eval, exec, open or os calls", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "UNSANITIZED_INPUT", Re: regexp.MustCompile(`(eval|exec|open|os\.\w+)\s*\(\s*input\s*\(`)}},
			Severity: types.SeverityCritical,
			Message:  "User input passed directly to dangerous function!",
		}),
		analyzer.Matcher("debug-statements", "debug prints, pdb, ipdb and breakpoint()", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "DEBUG_PRINT", Re: regexp.MustCompile(`(?i)^\s*print\s*\([^)]*debug`)},
				{ID: "PDB_IMPORT", Re: regexp.MustCompile(`(?i)^\s*import\s+pdb`)},
				{ID: "PDB_TRACE", Re: regexp.MustCompile(`(?i)pdb\.set_trace\s*\(`)},
				{ID: "BREAKPOINT", Re: regexp.MustCompile(`(?i)breakpoint\s*\(\)`)},
				{ID: "IPDB_IMPORT", Re: regexp.MustCompile(`(?i)^\s*import\s+ipdb`)},
			},
			Severity: types.SeverityMedium,
			Message:  "Debug statement in code! Remove before production!",
		}),
		{
			Name:        "hardcoded-paths",
			Description: "absolute Windows and Unix paths in string literals",
			IDs:         []string{"HARDCODED_PATH_WIN", "HARDCODED_PATH_UNIX"},
			Check:       hardcodedPaths,
		},
	}
}

var (
	sqlFormatted = regexp.MustCompile(`(execute|query)\s*\(\s*["'].*(%s|%d|\{|\+).*["']`)
	sqlFString   = regexp.MustCompile(`(execute|query)\s*\(\s*f["']`)
)

func sqlInjection(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if sqlFormatted.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "SQL_INJECTION",
				"SQL injection vulnerability! Use parameterized queries!",
				analyzer.WithAdvice("cursor.execute('SELECT * FROM t WHERE id = ?', (user_id,))")))
		}
		if sqlFString.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "SQL_INJECTION_FSTRING",
				"f-string in SQL query = INJECTION! Use parameterized queries!"))
		}
	}
	return issues
}

type insecureModule struct {
	name    string
	re      *regexp.Regexp
	message string
}

func importOf(module string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*(import|from)\s+` + module + `\b`)
}

var insecureModules = []insecureModule{
	{"telnetlib", importOf("telnetlib"), "Telnet is unencrypted. Use SSH!"},
	{"ftplib", importOf("ftplib"), "FTP is unencrypted. Use SFTP!"},
	{"md5", importOf("md5"), "MD5 is broken. Use hashlib.sha256()!"},
	{"sha", importOf("sha"), "SHA-1 is weak. Use hashlib.sha256()!"},
	{"crypt", importOf("crypt"), "crypt is platform-dependent and weak!"},
	{"random", importOf("random"), ""},
}

func insecureImports(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	securityContext := mentionsSecrets(f.Lines)
	for n, line := range f.Lines {
		for _, m := range insecureModules {
			if !m.re.MatchString(line) {
				continue
			}
			if m.name == "random" {
				if securityContext {
					issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "INSECURE_RANDOM",
						"Using 'random' for security! Use 'secrets' module instead!"))
				}
				continue
			}
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "INSECURE_IMPORT", m.message))
		}
	}
	return issues
}

func mentionsSecrets(lines []string) bool {
	for _, l := range lines {
		lower := strings.ToLower(l)
		if strings.Contains(lower, "password") || strings.Contains(lower, "secret") || strings.Contains(lower, "token") {
			return true
		}
	}
	return false
}

var (
	windowsPath = regexp.MustCompile(`["'][A-Z]:\\\\`)
	unixRoot    = regexp.MustCompile(`["']/`)
	unixSegment = regexp.MustCompile(`^[a-z]+/`)
)

func hardcodedPaths(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if windowsPath.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "HARDCODED_PATH_WIN",
				"Hardcoded Windows path! Use pathlib or os.path!"))
		}
		if hasUnixPath(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityLow, "HARDCODED_PATH_UNIX",
				"Hardcoded Unix path detected. Consider using relative paths."))
		}
	}
	return issues
}

// hasUnixPath reports a quoted absolute path outside /etc, /var and /tmp.
func hasUnixPath(line string) bool {
	for _, loc := range unixRoot.FindAllStringIndex(line, -1) {
		rest := line[loc[1]:]
		if strings.HasPrefix(rest, "etc/") || strings.HasPrefix(rest, "var/") || strings.HasPrefix(rest, "tmp/") {
			continue
		}
		if unixSegment.MatchString(rest) {
			return true
		}
	}
	return false
}
