package rust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

func check(content string) []types.Issue {
	return New().Check(analyzer.NewFile("lib.rs", content))
}

func ids(issues []types.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.RuleID
	}
	return out
}

func TestNew(t *testing.T) {
	assert.Equal(t, "rust", New().Name)
	assert.Equal(t, []string{".rs"}, New().Extensions)
}

func TestUnsafe(t *testing.T) {
	assert.Equal(t, []string{"UNSAFE_BLOCK"}, ids(check("let v = unsafe { f() };")))
	assert.Equal(t, []string{"UNSAFE_BLOCK"}, ids(check("unsafe fn raw() {}")))
	assert.Equal(t, []string{"UNSAFE_IMPL"}, ids(check("unsafe impl Send for T {}")))
}

func TestUnwrapOutsideTest(t *testing.T) {
	issues := check("let v = parse(s).unwrap();")
	require.Len(t, issues, 1)
	assert.Equal(t, "UNWRAP_PANIC", issues[0].RuleID)
	assert.Equal(t, types.SeverityMedium, issues[0].Severity)

	assert.Equal(t, []string{"EXPECT_PANIC"}, ids(check(`let v = parse(s).expect("valid");`)))
	assert.Empty(t, check("// x.unwrap()"))
}

func TestUnwrapInsideTest(t *testing.T) {
	content := "#[test]\nfn parses() {\n    let v = parse(s).unwrap();\n}\n"
	assert.Empty(t, check(content))

	indented := "mod tests {\n    #[test]\n    fn parses() {\n        parse(s).unwrap();\n    }\n}\n"
	assert.Empty(t, check(indented))
}

func TestUnwrapFarFromTestAttribute(t *testing.T) {
	content := "#[test]\nfn a() {}\n\n\n\nfn b() { x.unwrap(); }\n"
	assert.Equal(t, []string{"UNWRAP_PANIC"}, ids(check(content)))
}

func TestPanics(t *testing.T) {
	assert.Equal(t, []string{"EXPLICIT_PANIC"}, ids(check(`panic!("boom")`)))
	assert.Empty(t, check("#[test]\nfn t() { panic!(\"boom\") }"))
	assert.Equal(t, []string{"UNREACHABLE"}, ids(check("unreachable!()")))
	assert.Equal(t, []string{"UNIMPLEMENTED"}, ids(check("unimplemented!()")))
	assert.Equal(t, []string{"TODO_MACRO"}, ids(check("todo!()")))
}

func TestTransmuteAndForget(t *testing.T) {
	assert.Equal(t, []string{"TRANSMUTE"}, ids(check("let y: u32 = std::mem::transmute(x);")))
	assert.Equal(t, []string{"MEM_FORGET"}, ids(check("mem::forget(guard);")))
}

func TestRawPointers(t *testing.T) {
	assert.Equal(t, []string{"RAW_POINTER"}, ids(check("let p: *const u8 = a;")))
	assert.Equal(t, []string{"AS_PTR"}, ids(check("let p = v.as_ptr();")))
	assert.Equal(t, []string{"PTR_DEREF"}, ids(check("*ptr = 5;")))
}

func TestUnchecked(t *testing.T) {
	assert.Equal(t, []string{"GET_UNCHECKED"}, ids(check("v.get_unchecked(0)")))
	assert.Equal(t, []string{"FROM_RAW_PARTS"}, ids(check("slice::from_raw_parts(p, n)")))
	assert.Equal(t, []string{"UTF8_UNCHECKED"}, ids(check("str::from_utf8_unchecked(b)")))
}

func TestTryAndFormat(t *testing.T) {
	assert.Equal(t, []string{"TRY_MACRO_DEPRECATED"}, ids(check("let f = try!(File::open(p));")))
	assert.Equal(t, []string{"FORMAT_STRING_VAR"}, ids(check("let s = format!(template);")))
	assert.Empty(t, check(`let s = format!("{}", name);`))
}
