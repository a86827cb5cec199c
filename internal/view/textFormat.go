package view

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// TruncateTextToWidth keeps the end of each line, marking cut lines with a leading ellipsis.
// Widths are counted in runes so paths with non-ASCII names line up. Lines are padded to width.
func TruncateTextToWidth(width int, out string) string {
	return fitLines(width, out, func(line []rune) string {
		if width > len(ellipsis) {
			return ellipsis + string(line[len(line)-width+len(ellipsis):])
		}
		return string(line[len(line)-width:])
	})
}

// TrimTextToWidth keeps the start of each line. Lines are padded to width.
func TrimTextToWidth(width int, out string) string {
	return fitLines(width, out, func(line []rune) string {
		return string(line[:width])
	})
}

func fitLines(width int, out string, shorten func(line []rune) string) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		length := utf8.RuneCountInString(line)
		if length > width {
			lines[i] = shorten([]rune(line))
		} else {
			lines[i] = line + strings.Repeat(" ", width-length)
		}
	}
	return strings.Join(lines, "\n")
}
