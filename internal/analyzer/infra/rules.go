// Package infra holds the rules for environment and configuration files.
package infra

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "infra"

// Extensions claimed by the rule set.
var Extensions = []string{".env", ".yml", ".yaml", ".json", ".conf", ".config"}

// EssentialEnvVars must be defined in every .env file.
var EssentialEnvVars = []string{"SECRET_KEY", "DATABASE_URL", "PORT", "NODE_ENV"}

// New returns the infrastructure rule set.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{Name: Name, Extensions: Extensions, Rules: Rules()}
}

// Rules returns the infrastructure checks in evaluation order.
func Rules() []analyzer.Rule {
	missingIDs := make([]string, len(EssentialEnvVars))
	for i, key := range EssentialEnvVars {
		missingIDs[i] = "MISSING_" + key
	}
	portIDs := make([]string, len(insecurePorts))
	for i, p := range insecurePorts {
		portIDs[i] = "INSECURE_PORT_" + p.port
	}

	return []analyzer.Rule{
		{
			Name:        "db-connectivity",
			Description: "database URLs with inline credentials or local hosts",
			IDs:         []string{"LOCAL_DB_IN_CONFIG", "HARDCODED_DB_CREDS"},
			Check:       dbConnectivity,
		},
		{
			Name:        "insecure-ports",
			Description: "FTP, Telnet, HTTP, MySQL and Redis ports on non-local hosts",
			IDs:         portIDs,
			Check:       insecurePortsCheck,
		},
		analyzer.Matcher("debug-mode", "debug or development mode enabled", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "DEBUG_MODE_ON", Re: regexp.MustCompile(`DEBUG\s*=\s*(True|true|1)`)},
				{ID: "DEV_ENV_IN_PROD", Re: regexp.MustCompile(`NODE_ENV\s*=\s*['"]?development['"]?`)},
			},
			Severity: types.SeverityHigh,
			Message:  "Debug/Dev mode enabled! In production, this is a disaster waiting to happen!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Set to False or 'production' for deployment")},
		}),
		{
			Name:        "bind-all",
			Description: "listeners bound to 0.0.0.0",
			IDs:         []string{"BIND_ALL_INTERFACES"},
			Check:       bindAll,
		},
		{
			Name:        "essential-vars",
			Description: "required keys missing from .env files",
			IDs:         missingIDs,
			Check:       missingEssentialVars,
		},
	}
}

var dbURLs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)mongodb\+srv://[^:]+:[^@]+@`),
	regexp.MustCompile(`(?i)postgres://[^:]+:[^@]+@`),
	regexp.MustCompile(`(?i)mysql://[^:]+:[^@]+@`),
	regexp.MustCompile(`(?i)redis://[^:]+:[^@]+@`),
}

func isLocal(line string) bool {
	return strings.Contains(strings.ToLower(line), "localhost") || strings.Contains(line, "127.0.0.1")
}

func dbConnectivity(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		for _, url := range dbURLs {
			if !url.MatchString(line) {
				continue
			}
			if isLocal(line) {
				issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "LOCAL_DB_IN_CONFIG",
					"Using localhost for a DB connection string? Is this project a hobby or a business?!",
					analyzer.WithAdvice("Use a remote DB host or environment variable")))
			}
			parts := strings.Split(line, "//")
			if strings.Contains(parts[len(parts)-1], ":") && strings.Contains(line, "@") {
				issues = append(issues, f.Issue(n+1, 0, types.SeverityCritical, "HARDCODED_DB_CREDS",
					"Hardcoded DB credentials! Ye've basically handed the keys to the castle to the Vikings!",
					analyzer.WithAdvice("Use environment variables for username and password")))
			}
		}
	}
	return issues
}

var insecurePorts = []struct {
	port    string
	service string
}{
	{"21", "FTP"},
	{"23", "Telnet"},
	{"80", "HTTP"},
	{"3306", "MySQL (Public)"},
	{"6379", "Redis (Public)"},
}

// insecurePortsCheck matches ":<port>" as a plain substring, so ":8080" also
// counts as port 80.
func insecurePortsCheck(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if strings.Contains(line, "localhost") || strings.Contains(line, "127.0.0.1") {
			continue
		}
		for _, p := range insecurePorts {
			if strings.Contains(line, ":"+p.port) {
				issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "INSECURE_PORT_"+p.port,
					fmt.Sprintf("Potentially exposing %s on port %s! Are ye TRYING to get boarded?!", p.service, p.port),
					analyzer.WithAdvice(fmt.Sprintf("Close port %s or use SSH tunneling", p.port))))
			}
		}
	}
	return issues
}

func bindAll(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if strings.Contains(line, "0.0.0.0") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "BIND_ALL_INTERFACES",
				"Binding to 0.0.0.0? Ye're shouting yer secrets to the whole wide world!",
				analyzer.WithAdvice("Bind to 127.0.0.1 or a specific internal IP")))
		}
	}
	return issues
}

func missingEssentialVars(f *analyzer.File) []types.Issue {
	if !strings.HasSuffix(strings.ToLower(f.Path), ".env") {
		return nil
	}
	defined := make(map[string]bool)
	for _, line := range f.Lines {
		if key, _, ok := strings.Cut(line, "="); ok {
			defined[strings.TrimSpace(key)] = true
		}
	}

	// Anchor on the first line; an empty file has none, so report at file level.
	line := 1
	if len(f.Lines) == 0 {
		line = 0
	}
	var issues []types.Issue
	for _, key := range EssentialEnvVars {
		if !defined[key] {
			issues = append(issues, f.Issue(line, 0, types.SeverityInfo, "MISSING_"+key,
				fmt.Sprintf("Essential variable '%s' seems to be missing from yer .env file.", key)))
		}
	}
	return issues
}
