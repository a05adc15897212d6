package report

import (
	"strings"
	"unicode/utf8"
)

// minSummaryChars is the trimmed length a line must exceed to summarize a document.
const minSummaryChars = 20

// commentPrefixes mark lines skipped by content previews.
var commentPrefixes = []string{"//", "/*", "*", "#", "--", ";", "<!--", "'''", `"""`}

// SummaryLine returns the first line of content that, with heading
// markers stripped, is longer than 20 characters, truncated to width
// runes with "..." appended. It returns "" when no line qualifies.
func SummaryLine(content string, width int) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if utf8.RuneCountInString(line) <= minSummaryChars {
			continue
		}
		return truncate(line, width)
	}
	return ""
}

// Excerpt returns the first n runes of s with "..." appended when s is longer.
func Excerpt(s string, n int) string {
	return truncate(s, n)
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// PreviewLines returns up to n lines of content that are neither blank nor comments.
func PreviewLines(content string, n int) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if len(out) >= n {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\r"))
	}
	return out
}

func isComment(trimmed string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
