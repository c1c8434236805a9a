package analyzer

import "strings"

// Line is one physical line of content: its text and the terminator that
// followed it ("\r\n", "\n", "\r" or "" for an unterminated last line).
type Line struct {
	Body   string
	Ending string
}

// SplitLines splits content into physical lines, keeping each terminator.
// "\r\n", "\n" and a bare "\r" all end a line. A trailing terminator does
// not produce an extra empty line.
func SplitLines(content string) []Line {
	var lines []Line
	for len(content) > 0 {
		i := strings.IndexAny(content, "\r\n")
		if i < 0 {
			lines = append(lines, Line{Body: content})
			break
		}
		ending := content[i : i+1]
		if strings.HasPrefix(content[i:], "\r\n") {
			ending = "\r\n"
		}
		lines = append(lines, Line{Body: content[:i], Ending: ending})
		content = content[i+len(ending):]
	}
	return lines
}

// LineBodies returns the text of every line without terminators. It agrees
// with SplitLines on line count, so line numbers address the same lines.
func LineBodies(content string) []string {
	split := SplitLines(content)
	bodies := make([]string, len(split))
	for i, l := range split {
		bodies[i] = l.Body
	}
	return bodies
}

// JoinLines reassembles lines produced by SplitLines.
func JoinLines(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Body)
		b.WriteString(l.Ending)
	}
	return b.String()
}
