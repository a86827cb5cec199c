package terminalView

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"spacemirror/internal/color"
	"spacemirror/internal/ext"
	"spacemirror/internal/view"
)

type SyncView struct {
	compositeView *view.CompositeView
	stdout        io.Writer
}

func NewSyncView(vm *SyncViewModel, stdout io.Writer, timeElapsedView view.View) *SyncView {
	compositeView := view.NewCompositeView(make([]view.View, 0))
	compositeView.AddView(NewMirrorView(vm, stdout))
	compositeView.AddFooter(view.NewErrorView(vm.ErrorViewModel, stdout))
	compositeView.AddFooter(timeElapsedView)
	return &SyncView{compositeView: compositeView, stdout: stdout}
}

// NewDefaultSyncView measures elapsed time from now.
func NewDefaultSyncView(vm *SyncViewModel, stdout io.Writer) *SyncView {
	return NewSyncView(vm, stdout, view.NewTimeElapsedView(time.Now(), stdout, time.Since))
}

func (s *SyncView) Render(width int) (lines int) {
	return s.compositeView.Render(width)
}

func (s *SyncView) StartTTYRenderLoop(ctx context.Context, file *os.File) error {
	return view.StartTTYRenderLoop(ctx, s, s.stdout, file)
}

// RenderNonTTY prints the final summary once.
func (s *SyncView) RenderNonTTY(width int) {
	if _, err := fmt.Fprintln(s.stdout, "Sync done"); err != nil {
		return
	}
	s.Render(width)
}

// MirrorView shows where repositories are mirrored from and to, with per-outcome counts.
type MirrorView struct {
	viewModel *SyncViewModel
	stdout    io.Writer
}

func NewMirrorView(vm *SyncViewModel, stdout io.Writer) *MirrorView {
	return &MirrorView{viewModel: vm, stdout: stdout}
}

func (r *MirrorView) Render(width int) (lines int) {
	vm := r.viewModel
	out := fmt.Sprintf(
		"%s\n  <- %s:\n    %s repositories in %s projects\n    %s cloned, %s pulled, %s skipped, %s failed\n",
		color.FgCyan(view.TruncateTextToWidth(width, ext.ReplaceHomeDirWithTilde(vm.BackupRoot))),
		color.FgCyan(view.TrimTextToWidth(ext.Max(width-6, 1), vm.BaseURL)),
		color.FgMagenta(fmt.Sprintf("%d", vm.RepositoryCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", vm.ProjectCount.Count())),
		color.FgGreen(fmt.Sprintf("%d", vm.ClonedCount.Count())),
		color.FgGreen(fmt.Sprintf("%d", vm.PulledCount.Count())),
		color.FgYellow(fmt.Sprintf("%d", vm.SkippedCount.Count())),
		color.FgRed(fmt.Sprintf("%d", vm.FailedCount.Count())),
	)
	_, err := fmt.Fprint(r.stdout, out)
	if err != nil {
		return 0
	}
	return strings.Count(out, "\n")
}
