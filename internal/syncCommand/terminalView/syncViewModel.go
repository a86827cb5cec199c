package terminalView

import (
	"spacemirror/internal/counter"
	"spacemirror/internal/syncEngine"
	"spacemirror/internal/view"
)

// SyncViewModel collects live counts from the engine; it is a syncEngine.Observer.
type SyncViewModel struct {
	BackupRoot      string
	BaseURL         string
	ProjectCount    *counter.Counter
	RepositoryCount *counter.Counter
	ClonedCount     *counter.Counter
	PulledCount     *counter.Counter
	SkippedCount    *counter.Counter
	FailedCount     *counter.Counter
	ErrorViewModel  *view.ErrorViewModel
}

func NewSyncViewModel(baseURL, backupRoot, logFilePath string) *SyncViewModel {
	return &SyncViewModel{
		BackupRoot:      backupRoot,
		BaseURL:         baseURL,
		ProjectCount:    counter.NewCounter(),
		RepositoryCount: counter.NewCounter(),
		ClonedCount:     counter.NewCounter(),
		PulledCount:     counter.NewCounter(),
		SkippedCount:    counter.NewCounter(),
		FailedCount:     counter.NewCounter(),
		ErrorViewModel:  view.NewErrorViewModel(logFilePath),
	}
}

func (vm *SyncViewModel) ProjectsListed(count int) {
	vm.ProjectCount.Add(count)
}

func (vm *SyncViewModel) RepositoriesListed(_ string, count int) {
	vm.RepositoryCount.Add(count)
}

func (vm *SyncViewModel) RepositorySynced(result syncEngine.Result) {
	switch result.Outcome {
	case syncEngine.OutcomeCloned:
		vm.ClonedCount.Inc()
	case syncEngine.OutcomePulled:
		vm.PulledCount.Inc()
	case syncEngine.OutcomeSkipped:
		vm.SkippedCount.Inc()
	case syncEngine.OutcomeFailed:
		vm.FailedCount.Inc()
	}
	// Skips have their own count and stay out of the error footer.
	if result.Outcome == syncEngine.OutcomeFailed && result.Err != nil {
		vm.ErrorViewModel.Add(result.Err)
	}
}
