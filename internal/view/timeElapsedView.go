package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"spacemirror/internal/color"
)

type TimeElapsedView struct {
	startTime time.Time
	stdout    io.Writer
	since     func(time.Time) time.Duration // Custom Since function
}

func NewTimeElapsedView(startTime time.Time, stdout io.Writer, since func(time.Time) time.Duration) *TimeElapsedView {
	return &TimeElapsedView{
		startTime: startTime,
		stdout:    stdout,
		since:     since,
	}
}

// Render shows seconds with two decimals for short runs; mirror runs that take minutes or hours
// are shown as a whole-second duration such as 1h2m3s.
func (t *TimeElapsedView) Render(int) int {
	out := formatElapsed(t.since(t.startTime)) + "\n"
	_, err := fmt.Fprint(t.stdout, out)
	if err != nil {
		return 0
	}
	return strings.Count(out, "\n")
}

func formatElapsed(elapsed time.Duration) string {
	if elapsed < time.Minute {
		return fmt.Sprintf("%s seconds", color.FgGreen(fmt.Sprintf("%.2f", elapsed.Seconds())))
	}
	return fmt.Sprintf("%s elapsed", color.FgGreen(elapsed.Round(time.Second).String()))
}
