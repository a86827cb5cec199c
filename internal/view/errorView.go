package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"spacemirror/internal/color"
	"spacemirror/internal/counter"
	"spacemirror/internal/ext"
)

type ErrorViewModel struct {
	errorCount  *counter.Counter
	mu          sync.Mutex
	latestError string
	logFilePath string
}

// NewErrorViewModel points readers at logFilePath for details; an empty path omits the hint.
func NewErrorViewModel(logFilePath string) *ErrorViewModel {
	return &ErrorViewModel{
		errorCount:  counter.NewCounter(),
		logFilePath: logFilePath,
	}
}

func (vm *ErrorViewModel) Add(err error) {
	vm.mu.Lock()
	vm.latestError = err.Error()
	vm.mu.Unlock()
	vm.errorCount.Inc()
}

func (vm *ErrorViewModel) LatestError() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.latestError
}

type ErrorView struct {
	viewModel *ErrorViewModel
	stdout    io.Writer
}

func NewErrorView(vm *ErrorViewModel, stdout io.Writer) *ErrorView {
	return &ErrorView{
		viewModel: vm,
		stdout:    stdout,
	}
}

func (v ErrorView) Render(width int) int {
	count := v.viewModel.errorCount.Count()
	if count == 0 {
		return 0
	}
	var out strings.Builder
	out.WriteString(fmt.Sprintf("--- %s errors ---\n", color.FgRed(fmt.Sprintf("%d", count))))
	out.WriteString(TrimTextToWidth(width, v.viewModel.LatestError()) + "\n")
	if v.viewModel.logFilePath != "" {
		out.WriteString(fmt.Sprintf("See log file:\n%s\n", color.FgMagenta(ext.ReplaceHomeDirWithTilde(v.viewModel.logFilePath))))
	}

	if _, err := fmt.Fprint(v.stdout, out.String()); err != nil {
		return 0
	}
	return strings.Count(out.String(), "\n")
}
