package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/buemura/willie/internal/flavor"
	"github.com/buemura/willie/internal/output"
)

var (
	bannerColor  = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgCyan)
	goodColor    = color.New(color.FgGreen)
	winColor     = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	roundColor   = color.New(color.FgYellow, color.Bold)
	badColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint, color.Italic)
)

func say(w io.Writer, c *color.Color, format string, args ...any) {
	_, _ = c.Fprintln(w, fmt.Sprintf(format, args...))
}

func banner(w io.Writer) {
	_, _ = bannerColor.Fprint(w, flavor.Banner)
}

func formatList() string {
	return strings.Join(output.Formats, ", ")
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
