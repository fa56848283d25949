package ingestion

import (
	"regexp"
	"strings"
)

var (
	excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)
	bulletPrefix        = regexp.MustCompile(`^([-*•·●▪◦‣])\s+`)
)

// CleanText normalizes extracted document text while preserving its line structure.
// Line endings become LF, runs of spaces and tabs inside a line collapse to one
// space, bullet markers are kept, at most one blank line separates paragraphs,
// and the result is trimmed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine collapses whitespace in a single line. Bullet lines keep their
// marker followed by exactly one space.
func cleanLine(line string) string {
	collapsed := strings.Join(strings.Fields(line), " ")
	if collapsed == "" {
		return ""
	}
	if isBulletLine(collapsed) {
		return bulletPrefix.ReplaceAllString(collapsed, "$1 ")
	}
	return collapsed
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return bulletPrefix.MatchString(strings.TrimLeft(line, " \t"))
}

// countWords returns the number of whitespace-separated words in text.
func countWords(text string) int {
	return len(strings.Fields(text))
}
