// Package solidity holds the rules for Solidity smart contracts.
package solidity

import (
	"regexp"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "solidity"

// Extensions claimed by the rule set.
var Extensions = []string{".sol"}

// New returns the Solidity rule set.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{Name: Name, Extensions: Extensions, Rules: Rules()}
}

func re(expr string) *regexp.Regexp { return regexp.MustCompile(expr) }

// Rules returns the Solidity checks in evaluation order.
func Rules() []analyzer.Rule {
	return []analyzer.Rule{
		{
			Name:        "reentrancy",
			Description: "external calls followed by state writes, payable functions without a guard",
			IDs:         []string{"REENTRANCY", "MISSING_REENTRANCY_GUARD"},
			Check:       reentrancy,
		},
		analyzer.Matcher("tx-origin", "tx.origin authorization", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "TX_ORIGIN", Re: re(`tx\.origin`)}},
			Severity: types.SeverityCritical,
			Message:  "tx.origin is PHISHING VULNERABLE! Use msg.sender!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Replace tx.origin with msg.sender")},
		}),
		analyzer.Matcher("delegatecall", "delegatecall to external code", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "DELEGATECALL", Re: re(`\.delegatecall\(`)}},
			Severity: types.SeverityCritical,
			Message:  "delegatecall executes external code in YOUR context!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Ensure delegatecall target is trusted and immutable")},
		}),
		analyzer.Matcher("selfdestruct", "selfdestruct calls", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "SELFDESTRUCT", Re: re(`selfdestruct\s*\(`)}},
			Severity: types.SeverityHigh,
			Message:  "selfdestruct allows contract to be destroyed!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Ensure proper access control on selfdestruct")},
		}),
		{
			Name:        "overflow",
			Description: "uint arithmetic without SafeMath before Solidity 0.8",
			IDs:         []string{"INTEGER_OVERFLOW"},
			Check:       overflow,
		},
		{
			Name:        "visibility",
			Description: "functions without visibility and public state variables",
			IDs:         []string{"MISSING_VISIBILITY", "PUBLIC_STATE"},
			Check:       visibility,
		},
		{
			Name:        "timestamp",
			Description: "comparisons against block.timestamp or now",
			IDs:         []string{"TIMESTAMP_MANIPULATION"},
			Check:       timestamp,
		},
		{
			Name:        "gas-limit",
			Description: "unbounded loops and external calls inside loops",
			IDs:         []string{"UNBOUNDED_LOOP", "TRANSFER_IN_LOOP"},
			Check:       gasLimit,
		},
		{
			Name:        "unchecked-call",
			Description: "low-level call and send without checking the result",
			IDs:         []string{"UNCHECKED_CALL", "UNCHECKED_SEND"},
			Check:       uncheckedCall,
		},
		analyzer.Matcher("frontrunning", "approve() allowance races", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "APPROVE_FRONTRUN", Re: re(`\.approve\s*\(`)}},
			Severity: types.SeverityMedium,
			Message:  "approve() is frontrunnable! Use increaseAllowance().",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use OpenZeppelin's increaseAllowance/decreaseAllowance")},
		}),
		analyzer.Matcher("floating-pragma", "caret or tilde compiler pragmas", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "FLOATING_PRAGMA", Re: re(`pragma\s+solidity\s+[\^~]`)}},
			Severity: types.SeverityLow,
			Message:  "Floating pragma. Lock to specific version for production!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use exact version: pragma solidity 0.8.19;")},
		}),
	}
}

var (
	externalCall   = re(`\.call\{.*value.*\}|\.transfer\(|\.send\(`)
	stateWrite     = re(`=\s*[^=]`)
	payableFn      = re(`function\s+\w+\s*\([^)]*\)\s*(external|public)\s+payable`)
	callInLoopBody = re(`\.transfer\(|\.send\(|\.call\{`)
)

func reentrancy(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		n := i + 1
		if externalCall.MatchString(line) && stateWrite.MatchString(strings.Join(f.Window(n+1, n+5), "\n")) {
			issues = append(issues, f.Issue(n, 0, types.SeverityCritical, "REENTRANCY",
				"REENTRANCY RISK! External call before state change!",
				analyzer.WithAdvice("Follow Checks-Effects-Interactions pattern. Update state BEFORE external calls.")))
		}
	}
	for i, line := range f.Lines {
		n := i + 1
		if !payableFn.MatchString(line) || strings.Contains(line, "nonReentrant") {
			continue
		}
		block := strings.Join(f.Window(n, n+10), "\n")
		if strings.Contains(block, ".call") || strings.Contains(block, "transfer") {
			issues = append(issues, f.Issue(n, 0, types.SeverityHigh, "MISSING_REENTRANCY_GUARD",
				"Payable function without nonReentrant modifier!",
				analyzer.WithAdvice("Add 'nonReentrant' modifier from OpenZeppelin ReentrancyGuard")))
		}
	}
	return issues
}

var (
	legacyPragma = re(`pragma\s+solidity\s+[\^~]?0\.[0-7]\.`)
	arithmetic   = re(`[+\-*/]=?`)
)

func overflow(f *analyzer.File) []types.Issue {
	legacy, safeMath := false, false
	for _, line := range f.Lines {
		legacy = legacy || legacyPragma.MatchString(line)
		safeMath = safeMath || strings.Contains(line, "SafeMath")
	}
	if !legacy || safeMath {
		return nil
	}

	var issues []types.Issue
	for i, line := range f.Lines {
		n := i + 1
		// the current line and the nine before it, joined without separators
		if arithmetic.MatchString(line) && strings.Contains(strings.Join(f.Window(n-9, n), ""), "uint") {
			issues = append(issues, f.Issue(n, 0, types.SeverityHigh, "INTEGER_OVERFLOW",
				"Math operation on uint without SafeMath (Solidity <0.8)!",
				analyzer.WithAdvice("Use SafeMath or upgrade to Solidity 0.8+")))
		}
	}
	return issues
}

var (
	bareFunction = re(`^\s*function\s+\w+\s*\([^)]*\)\s*\{`)
	stateVar     = re(`^\s*(uint|int|address|bool|string|bytes)\s+(public|)\s+\w+\s*;`)
)

func visibility(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if bareFunction.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "MISSING_VISIBILITY",
				"Function without visibility modifier! Defaults to public!",
				analyzer.WithAdvice("Explicitly declare public, external, internal, or private")))
		}
		if stateVar.MatchString(line) && !strings.Contains(line, "private") && !strings.Contains(line, "internal") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityLow, "PUBLIC_STATE",
				"State variable is public. Intended?"))
		}
	}
	return issues
}

var (
	timeSource = re(`block\.timestamp|now\b`)
	comparison = re(`(==|<|>|<=|>=)`)
)

func timestamp(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if timeSource.MatchString(line) && comparison.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "TIMESTAMP_MANIPULATION",
				"block.timestamp can be manipulated by miners (+/- 15s)!",
				analyzer.WithAdvice("Don't use for precise timing or randomness")))
		}
	}
	return issues
}

var (
	lengthLoop = re(`for\s*\([^)]+\.length[^)]+\)`)
	loopOpen   = re(`for.*\{`)
)

func gasLimit(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		n := i + 1
		if lengthLoop.MatchString(line) {
			issues = append(issues, f.Issue(n, 0, types.SeverityHigh, "UNBOUNDED_LOOP",
				"Loop over dynamic array could exceed gas limit!",
				analyzer.WithAdvice("Use pagination or limit iterations")))
		}
		if loopOpen.MatchString(line) && callInLoopBody.MatchString(strings.Join(f.Window(n+1, n+10), "\n")) {
			issues = append(issues, f.Issue(n, 0, types.SeverityHigh, "TRANSFER_IN_LOOP",
				"External calls in loop = DoS vector!",
				analyzer.WithAdvice("Use pull-over-push pattern")))
		}
	}
	return issues
}

var (
	lowLevelCall = re(`\.call\{?[^}]*\}?\s*\([^)]*\)\s*;`)
	sendCall     = re(`\.send\s*\([^)]*\)\s*;`)
)

func uncheckedCall(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if lowLevelCall.MatchString(line) &&
			!strings.Contains(line, "require") && !strings.Contains(line, "(success") && !strings.Contains(line, "= ") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "UNCHECKED_CALL",
				"Low-level call without checking return value!",
				analyzer.WithAdvice("(bool success, ) = addr.call{...}(); require(success);")))
		}
		if sendCall.MatchString(line) &&
			!strings.Contains(line, "require") && !strings.Contains(line, "assert") && !strings.Contains(line, "= ") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "UNCHECKED_SEND",
				"send() return value not checked!",
				analyzer.WithAdvice("Use transfer() or check send() return value")))
		}
	}
	return issues
}
