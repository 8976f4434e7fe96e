package asm

import "strings"

const commentMarker = "#"

// SourceLine is a source line that remains after removing comments and empty lines.
type SourceLine struct {
	Index int    // zero based position among all retained lines
	Line  int    // 1-based line number in the source file
	Text  string // line content without comment and surrounding whitespace
}

// Normalize strips comments and surrounding whitespace from all lines and drops
// lines that end up empty. The retained lines are indexed in their original order.
func Normalize(lines []string) []SourceLine {
	result := make([]SourceLine, 0, len(lines))
	for i, line := range lines {
		if idx := strings.Index(line, commentMarker); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result = append(result, SourceLine{
			Index: len(result),
			Line:  i + 1,
			Text:  line,
		})
	}
	return result
}
