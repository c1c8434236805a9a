package fixer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/buemura/willie/internal/analyzer"
)

// Marker identifies a file that already carries a provenance comment.
const Marker = "FIXED BY WILLIE"

type commentStyle struct {
	open, close string
}

var (
	hashComment  = commentStyle{open: "# "}
	slashComment = commentStyle{open: "// "}
	htmlComment  = commentStyle{open: "<!-- ", close: " -->"}
	blockComment = commentStyle{open: "/* ", close: " */"}
)

var commentStyles = map[string]commentStyle{
	".js": slashComment, ".jsx": slashComment, ".ts": slashComment, ".tsx": slashComment,
	".rs": slashComment, ".sol": slashComment, ".go": slashComment, ".c": slashComment,
	".h": slashComment, ".cpp": slashComment, ".java": slashComment, ".kt": slashComment,
	".swift": slashComment, ".cs": slashComment, ".scss": slashComment,
	".html": htmlComment, ".htm": htmlComment, ".xml": htmlComment, ".md": htmlComment,
	".css": blockComment,
}

// ProvenanceText is the comment body for a file with n fixes.
func ProvenanceText(n int) string {
	return fmt.Sprintf("%s: %d issues sorted. Ye're welcome, ya numpty.", Marker, n)
}

// Stamp inserts the provenance comment into content. It goes after a
// shebang or encoding line in the first three lines, otherwise at the top.
// Content that already has the marker, or a file type without comments
// (JSON), is returned unchanged.
func Stamp(path, content string, n int) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" || strings.Contains(content, Marker) {
		return content
	}
	style, ok := commentStyles[ext]
	if !ok {
		style = hashComment
	}

	lines := analyzer.SplitLines(content)
	eol := "\n"
	if len(lines) > 0 && lines[0].Ending != "" {
		eol = lines[0].Ending
	}

	at := 0
	for i := 0; i < len(lines) && i < 3; i++ {
		if strings.HasPrefix(lines[i].Body, "#!") || strings.Contains(lines[i].Body, "coding") {
			at = i + 1
		}
	}
	if at > 0 && lines[at-1].Ending == "" {
		lines[at-1].Ending = eol
	}

	stamp := analyzer.Line{Body: style.open + ProvenanceText(n) + style.close, Ending: eol}
	return analyzer.JoinLines(slices.Insert(lines, at, stamp))
}
