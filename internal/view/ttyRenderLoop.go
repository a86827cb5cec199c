package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const RefreshInterval = 100 * time.Millisecond

// StartTTYRenderLoop redraws r in place on the terminal behind file until ctx is cancelled,
// then draws one final frame.
func StartTTYRenderLoop(ctx context.Context, r View, out io.Writer, file *os.File) error {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("cannot start a TTY render loop on a non-terminal file")
	}
	RenderLoop(ctx, r, out, func() int {
		width, _, err := term.GetSize(fd)
		if err != nil {
			return 80
		}
		return width
	}, RefreshInterval)
	return nil
}

func RenderLoop(ctx context.Context, r View, out io.Writer, width func() int, interval time.Duration) {
	lineCount := r.Render(width())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			redraw(r, out, width(), lineCount)
			return
		case <-ticker.C:
			var ok bool
			if lineCount, ok = redraw(r, out, width(), lineCount); !ok {
				return
			}
		}
	}
}

func redraw(r View, out io.Writer, width, previousLines int) (int, bool) {
	if previousLines > 0 {
		if _, err := fmt.Fprint(out, ansiLineOffset(previousLines)); err != nil {
			return previousLines, false
		}
	}
	return r.Render(width), true
}
