package color

import (
	fcolor "github.com/fatih/color"
)

var (
	FgRed     = fcolor.New(fcolor.FgRed).SprintfFunc()
	FgGreen   = fcolor.New(fcolor.FgGreen).SprintfFunc()
	FgYellow  = fcolor.New(fcolor.FgYellow).SprintfFunc()
	FgCyan    = fcolor.New(fcolor.FgCyan).SprintfFunc()
	FgMagenta = fcolor.New(fcolor.FgMagenta).SprintfFunc()
)

// SetEnabled overrides terminal detection, e.g. when output goes to a log file.
func SetEnabled(enabled bool) {
	fcolor.NoColor = !enabled
}

func Enabled() bool {
	return !fcolor.NoColor
}
