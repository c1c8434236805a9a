// Package rust holds the rules for Rust sources.
package rust

import (
	"regexp"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "rust"

// Extensions claimed by the rule set.
var Extensions = []string{".rs"}

// testWindow is how many lines (the current one included) are searched
// upward for a #[test] attribute.
const testWindow = 5

// New returns the Rust rule set.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{Name: Name, Extensions: Extensions, Rules: Rules()}
}

func re(expr string) *regexp.Regexp { return regexp.MustCompile(expr) }

// Rules returns the Rust checks in evaluation order.
func Rules() []analyzer.Rule {
	return []analyzer.Rule{
		{
			Name:        "unsafe",
			Description: "unsafe blocks, functions and impls",
			IDs:         []string{"UNSAFE_BLOCK", "UNSAFE_IMPL"},
			Check:       unsafeCode,
		},
		{
			Name:        "unwrap",
			Description: "unwrap() and expect() outside tests",
			IDs:         []string{"UNWRAP_PANIC", "EXPECT_PANIC"},
			Check:       unwrap,
		},
		{
			Name:        "panic",
			Description: "panic!, unreachable!, unimplemented! and todo! macros",
			IDs:         []string{"EXPLICIT_PANIC", "UNREACHABLE", "UNIMPLEMENTED", "TODO_MACRO"},
			Check:       panics,
		},
		analyzer.Matcher("transmute", "mem::transmute", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "TRANSMUTE", Re: re(`std::mem::transmute|mem::transmute`)}},
			Severity: types.SeverityCritical,
			Message:  "transmute is EXTREMELY dangerous! Use safer alternatives!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Consider TryFrom/TryInto, as casting, or type-specific conversions")},
		}),
		analyzer.Matcher("forget", "mem::forget", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "MEM_FORGET", Re: re(`std::mem::forget|mem::forget`)}},
			Severity: types.SeverityHigh,
			Message:  "mem::forget can cause memory/resource leaks!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use ManuallyDrop if you need to prevent drop")},
		}),
		{
			Name:        "raw-pointers",
			Description: "raw pointer types, as_ptr and dereferences",
			IDs:         []string{"RAW_POINTER", "AS_PTR", "PTR_DEREF"},
			Check:       rawPointers,
		},
		analyzer.Matcher("unchecked", "unchecked slice, raw-part and UTF-8 operations", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{
				{ID: "GET_UNCHECKED", Re: re(`get_unchecked\s*\(`)},
				{ID: "GET_UNCHECKED_MUT", Re: re(`get_unchecked_mut\s*\(`)},
				{ID: "SLICE_UNCHECKED", Re: re(`slice_unchecked\s*\(`)},
				{ID: "FROM_RAW_PARTS", Re: re(`from_raw_parts\s*\(`)},
				{ID: "UTF8_UNCHECKED", Re: re(`from_utf8_unchecked\s*\(`)},
			},
			Severity: types.SeverityHigh,
			Message:  "Unchecked operation! Caller must guarantee safety!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Add // SAFETY: comment with proof of validity")},
		}),
		analyzer.Matcher("try-macro", "deprecated try! macro", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "TRY_MACRO_DEPRECATED", Re: re(`try!\s*\(`)}},
			Severity: types.SeverityLow,
			Message:  "try! macro is deprecated. Use ? operator instead.",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Replace try!(expr) with expr?")},
		}),
		analyzer.Matcher("format-string", "format! with a variable format string", analyzer.LineMatcher{
			Patterns: []analyzer.Pattern{{ID: "FORMAT_STRING_VAR", Re: re(`format!\s*\(\s*[a-z_]+\s*\)`)}},
			Severity: types.SeverityMedium,
			Message:  "format! with variable format string - potential injection!",
			Options:  []analyzer.IssueOption{analyzer.WithAdvice("Use format! with static format string and {} placeholders")},
		}),
	}
}

var (
	unsafeBlock = re(`\bunsafe\s*\{`)
	unsafeFn    = re(`\bunsafe\s+fn\b`)
	unsafeImpl  = re(`\bunsafe\s+impl\b`)
)

func unsafeCode(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if unsafeBlock.MatchString(line) || unsafeFn.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "UNSAFE_BLOCK",
				"unsafe block/fn detected! Document WHY this is safe!",
				analyzer.WithAdvice("Add // SAFETY: comment explaining invariants")))
		}
		if unsafeImpl.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "UNSAFE_IMPL",
				"unsafe impl detected! Verify trait safety requirements!"))
		}
	}
	return issues
}

// inTest reports whether a #[test] attribute sits on line n or one of the
// lines just above it.
func inTest(f *analyzer.File, n int) bool {
	for _, l := range f.Window(n-testWindow+1, n) {
		if strings.TrimSpace(l) == "#[test]" {
			return true
		}
	}
	return false
}

var (
	unwrapCall = re(`\.unwrap\(\)`)
	expectCall = re(`\.expect\s*\(`)
)

func unwrap(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		n := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if unwrapCall.MatchString(line) && !inTest(f, n) {
			issues = append(issues, f.Issue(n, 0, types.SeverityMedium, "UNWRAP_PANIC",
				"unwrap() can panic! Handle the error properly!",
				analyzer.WithAdvice("Use match, if let, or ? operator instead")))
		}
		if expectCall.MatchString(line) && !inTest(f, n) {
			issues = append(issues, f.Issue(n, 0, types.SeverityLow, "EXPECT_PANIC",
				"expect() can still panic. Consider proper error handling."))
		}
	}
	return issues
}

var (
	panicMacro         = re(`\bpanic!\s*\(`)
	unreachableMacro   = re(`\bunreachable!\s*\(`)
	unimplementedMacro = re(`\bunimplemented!\s*\(`)
	todoMacro          = re(`\btodo!\s*\(`)
)

func panics(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for i, line := range f.Lines {
		n := i + 1
		if panicMacro.MatchString(line) && !inTest(f, n) {
			issues = append(issues, f.Issue(n, 0, types.SeverityMedium, "EXPLICIT_PANIC",
				"Explicit panic! Consider returning Result instead."))
		}
		if unreachableMacro.MatchString(line) {
			issues = append(issues, f.Issue(n, 0, types.SeverityLow, "UNREACHABLE",
				"unreachable! - make sure it truly is unreachable!"))
		}
		if unimplementedMacro.MatchString(line) {
			issues = append(issues, f.Issue(n, 0, types.SeverityMedium, "UNIMPLEMENTED",
				"unimplemented! found - this will panic at runtime!"))
		}
		if todoMacro.MatchString(line) {
			issues = append(issues, f.Issue(n, 0, types.SeverityMedium, "TODO_MACRO",
				"todo! macro will panic! Implement before production!"))
		}
	}
	return issues
}

var (
	rawPointerType = re(`\*const\s+\w+|\*mut\s+\w+`)
	asPtr          = re(`\.as_ptr\(\)|\.as_mut_ptr\(\)`)
	ptrDeref       = re(`\*[a-z_]+\s*[=\+\-]`)
)

func rawPointers(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if rawPointerType.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "RAW_POINTER",
				"Raw pointer type detected. Document safety invariants!"))
		}
		if asPtr.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "AS_PTR",
				"Creating raw pointer - ensure proper lifetime management!"))
		}
		if ptrDeref.MatchString(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityHigh, "PTR_DEREF",
				"Raw pointer dereference - must be in unsafe block!"))
		}
	}
	return issues
}
