// Package generic holds the fallback rules applied to files of any type.
package generic

import (
	"regexp"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "generic"

// New returns the generic rule set. It claims no extensions.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{
		Name:  Name,
		Rules: Rules(),
	}
}

// Rules returns the generic checks in evaluation order.
func Rules() []analyzer.Rule {
	return []analyzer.Rule{
		{
			Name:        "sensitive-files",
			Description: "files that should never be committed (.env, keys, credentials)",
			IDs:         []string{"SENSITIVE_FILE"},
			Check:       sensitiveFile,
		},
		analyzer.Matcher("debug-flags", "debug, testing and development flags left on", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "DEBUG_ENABLED", Re: regexp.MustCompile(`DEBUG\s*=\s*[Tt]rue`)},
				{ID: "DEBUG_ENABLED", Re: regexp.MustCompile(`DEBUG\s*=\s*1`)},
				{ID: "TESTING_ENABLED", Re: regexp.MustCompile(`TESTING\s*=\s*[Tt]rue`)},
				{ID: "DEV_MODE", Re: regexp.MustCompile(`development\s*=\s*[Tt]rue`)},
			},
			Severity: types.SeverityMedium,
			Message:  "Debug/dev flag enabled! Disable for production!",
		}),
		{
			Name:        "urls",
			Description: "localhost and plain-HTTP URLs",
			IDs:         []string{"LOCALHOST_URL", "INSECURE_HTTP"},
			Check:       urls,
		},
		{
			Name:        "ip-addresses",
			Description: "hardcoded IPv4 addresses",
			IDs:         []string{"HARDCODED_IP"},
			Check:       ipAddresses,
		},
		{
			Name:        "base64-secrets",
			Description: "long base64 literals next to secret-looking names",
			IDs:         []string{"BASE64_SECRET"},
			Check:       base64Secrets,
		},
		{
			Name:        "file-permissions",
			Description: "world-writable chmod calls",
			IDs:         []string{"UNSAFE_CHMOD", "UNSAFE_CHMOD_CODE"},
			Check:       filePermissions,
		},
	}
}

var sensitivePatterns = []struct {
	re      *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`(?i)\.env$`), "ENV file should not be committed!"},
	{regexp.MustCompile(`(?i)\.pem$`), "PEM key file should not be committed!"},
	{regexp.MustCompile(`(?i)\.key$`), "Key file should not be committed!"},
	{regexp.MustCompile(`(?i)id_rsa`), "SSH private key should not be committed!"},
	{regexp.MustCompile(`(?i)\.htpasswd$`), "Password file should not be committed!"},
	{regexp.MustCompile(`(?i)credentials\.json`), "Credentials file should not be committed!"},
}

func sensitiveFile(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for _, p := range sensitivePatterns {
		if p.re.MatchString(f.Path) {
			issues = append(issues, f.Issue(1, 0, types.SeverityCritical, "SENSITIVE_FILE", p.message,
				analyzer.WithAdvice("Add to .gitignore and remove from repository")))
		}
	}
	return issues
}

var (
	localhostURL = regexp.MustCompile(`http://localhost[:/]`)
	httpScheme   = regexp.MustCompile(`http://`)
)

func urls(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if localhostURL.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "LOCALHOST_URL",
				"Hardcoded localhost URL - won't work in production!",
				analyzer.WithAdvice("Use environment variables for URLs")))
		}
		if hasExternalHTTP(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "INSECURE_HTTP",
				"Using HTTP instead of HTTPS!",
				analyzer.WithAdvice("Use HTTPS for all external URLs")))
		}
	}
	return issues
}

// hasExternalHTTP reports an http:// URL whose host is not a loopback name.
func hasExternalHTTP(line string) bool {
	for _, loc := range httpScheme.FindAllStringIndex(line, -1) {
		rest := line[loc[1]:]
		if !strings.HasPrefix(rest, "localhost") && !strings.HasPrefix(rest, "127.0.0.1") {
			return true
		}
	}
	return false
}

var (
	ipv4At        = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	versionSuffix = regexp.MustCompile(`\d+\.\d+\.\d+\.\d+["']?\s*$`)
)

func ipAddresses(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if HasPublicIPv4(line) && !versionSuffix.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityLow, "HARDCODED_IP",
				"Hardcoded IP address detected. Use DNS or config!"))
		}
	}
	return issues
}

// HasPublicIPv4 reports a dotted quad starting on a word boundary that is not
// in 127.0.0.0/24 or 0.0.0.0/24.
func HasPublicIPv4(line string) bool {
	for i := 0; i < len(line); i++ {
		if !isDigit(line[i]) || (i > 0 && isWordChar(line[i-1])) {
			continue
		}
		rest := line[i:]
		if strings.HasPrefix(rest, "127.0.0.") || strings.HasPrefix(rest, "0.0.0.") {
			continue
		}
		if ipv4At.MatchString(rest) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordChar(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

var (
	base64Literal = regexp.MustCompile(`["'][A-Za-z0-9+/]{40,}={0,2}["']`)
	secretWords   = []string{"key", "secret", "token", "password", "auth", "cred"}
)

func base64Secrets(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if !base64Literal.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		for _, word := range secretWords {
			if strings.Contains(lower, word) {
				issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "BASE64_SECRET",
					"Possible base64-encoded secret detected!",
					analyzer.WithAdvice("Move secrets to environment variables")))
				break
			}
		}
	}
	return issues
}

var (
	chmodShell = regexp.MustCompile(`chmod\s+777|chmod\s+666|chmod\s+755.*\.sh`)
	chmodCode  = regexp.MustCompile(`chmod.*0o?777|chmod.*0o?666`)
)

func filePermissions(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if chmodShell.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "UNSAFE_CHMOD",
				"Overly permissive file permissions!",
				analyzer.WithAdvice("Use least privilege principle: chmod 600 for private files")))
		}
		if chmodCode.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "UNSAFE_CHMOD_CODE",
				"Setting overly permissive file permissions in code!"))
		}
	}
	return issues
}
