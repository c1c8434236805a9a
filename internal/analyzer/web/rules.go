// Package web holds the rules for HTML and CSS files.
package web

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// Name is the rule set name.
const Name = "web"

// Extensions claimed by the rule set.
var Extensions = []string{".html", ".htm", ".css"}

// New returns the web rule set.
func New() analyzer.RuleSet {
	return analyzer.RuleSet{Name: Name, Extensions: Extensions, Rules: Rules()}
}

func isHTML(f *analyzer.File) bool {
	ext := f.Ext()
	return ext == ".html" || ext == ".htm"
}

func isCSS(f *analyzer.File) bool {
	return f.Ext() == ".css"
}

// only restricts a check to files accepted by pred.
func only(pred func(*analyzer.File) bool, check func(*analyzer.File) []types.Issue) func(*analyzer.File) []types.Issue {
	return func(f *analyzer.File) []types.Issue {
		if !pred(f) {
			return nil
		}
		return check(f)
	}
}

// Rules returns the web checks in evaluation order.
func Rules() []analyzer.Rule {
	return []analyzer.Rule{
		{
			Name:        "image-formats",
			Description: "jpg, png and gif images in HTML",
			IDs:         []string{"UNOPTIMIZED_IMAGE_FORMAT"},
			Check:       only(isHTML, imageFormats),
		},
		{
			Name:        "alt-text",
			Description: "img tags without alt",
			IDs:         []string{"MISSING_ALT_TEXT"},
			Check:       only(isHTML, altText),
		},
		{
			Name:        "inline-styles",
			Description: "style attributes in HTML",
			IDs:         []string{"INLINE_STYLE"},
			Check:       only(isHTML, inlineStyles),
		},
		{
			Name:        "deprecated-tags",
			Description: "font, center, strike, big and basefont tags",
			IDs:         []string{"DEPRECATED_HTML_TAG"},
			Check:       only(isHTML, deprecatedTags),
		},
		{
			Name:        "duplicate-selectors",
			Description: "CSS selectors declared more than once",
			IDs:         []string{"DUPLICATE_CSS_SELECTOR"},
			Check:       only(isCSS, duplicateSelectors),
		},
		{
			Name:        "important",
			Description: "!important in CSS",
			IDs:         []string{"CSS_IMPORTANT_USAGE"},
			Check:       only(isCSS, importantUsage),
		},
		{
			Name:        "web-fonts",
			Description: "Google Fonts @import",
			IDs:         []string{"GOOGLE_FONTS_IMPORT"},
			Check:       only(isCSS, webFonts),
		},
	}
}

var unoptimizedImage = regexp.MustCompile(`(?i)src=["']([^"']+\.(jpg|jpeg|png|gif))["']`)

func imageFormats(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		for _, m := range unoptimizedImage.FindAllStringSubmatchIndex(line, -1) {
			img := line[m[2]:m[3]]
			col := utf8.RuneCountInString(line[:m[0]])
			issues = append(issues, f.Issue(n+1, col, types.SeverityMedium, "UNOPTIMIZED_IMAGE_FORMAT",
				fmt.Sprintf("Found unoptimized image format: %s. Use WebP or AVIF instead!", img),
				analyzer.WithAdvice(fmt.Sprintf("Convert %s to .webp or .avif", img))))
		}
	}
	return issues
}

var (
	imgOpen = regexp.MustCompile(`(?i)<img\b`)
	altAttr = regexp.MustCompile(`(?i)\balt=`)
)

// hasImgWithoutAlt reports an <img ...> tag, closed on the same line, that
// carries no alt attribute.
func hasImgWithoutAlt(line string) bool {
	for _, loc := range imgOpen.FindAllStringIndex(line, -1) {
		rest := line[loc[1]:]
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			continue
		}
		if !altAttr.MatchString(rest[:end]) {
			return true
		}
	}
	return false
}

func altText(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if hasImgWithoutAlt(line) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityLow, "MISSING_ALT_TEXT",
				"Image tag is missing an 'alt' attribute! Lazy dev work, laddie!",
				analyzer.WithAdvice(`Add alt="Description of image"`)))
		}
	}
	return issues
}

func inlineStyles(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, ` style="`) || strings.Contains(lower, ` style='`) {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityLow, "INLINE_STYLE",
				"Inline styles detected! Use a CSS file like a professional!"))
		}
	}
	return issues
}

var deprecated = []string{"font", "center", "strike", "big", "basefont"}

func deprecatedTags(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		lower := strings.ToLower(line)
		for _, tag := range deprecated {
			if strings.Contains(lower, "<"+tag) {
				issues = append(issues, f.Issue(n+1, 0, types.SeverityMedium, "DEPRECATED_HTML_TAG",
					fmt.Sprintf("Found deprecated tag: <%s>. It's not 1999 anymore!", tag)))
			}
		}
	}
	return issues
}

var selectorOpen = regexp.MustCompile(`^([^{]+)\{`)

func duplicateSelectors(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	seen := make(map[string]int)
	for i, line := range f.Lines {
		m := selectorOpen.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		selector := strings.TrimSpace(m[1])
		if prev, ok := seen[selector]; ok {
			issues = append(issues, f.Issue(i+1, 0, types.SeverityMedium, "DUPLICATE_CSS_SELECTOR",
				fmt.Sprintf("Duplicate selector '%s' found! (Already defined on line %d)", selector, prev),
				analyzer.WithAdvice("Merge rules or remove duplicate")))
			continue
		}
		seen[selector] = i + 1
	}
	return issues
}

func importantUsage(f *analyzer.File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if strings.Contains(strings.ToLower(line), "!important") {
			issues = append(issues, f.Issue(n+1, 0, types.SeverityLow, "CSS_IMPORTANT_USAGE",
				"Using !important? Fix yer specificity instead of taking the easy way out!"))
		}
	}
	return issues
}

func webFonts(f *analyzer.File) []types.Issue {
	for _, line := range f.Lines {
		if strings.Contains(line, "@import") && strings.Contains(line, "fonts.googleapis.com") {
			return []types.Issue{f.Issue(1, 0, types.SeverityInfo, "GOOGLE_FONTS_IMPORT",
				"Google Fonts @import detected. Consider self-hosting or preloading for better performance.")}
		}
	}
	return nil
}
