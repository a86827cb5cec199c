package syncEngine

import (
	"fmt"
	"time"

	"spacemirror/internal/gitrepo"
	"spacemirror/internal/space"
)

type Outcome int

const (
	OutcomeCloned Outcome = iota
	OutcomePulled
	// OutcomeSkipped means the catalog has no clone URL for the repository.
	OutcomeSkipped
	OutcomeFailed
)

var Outcomes = []Outcome{OutcomeCloned, OutcomePulled, OutcomeSkipped, OutcomeFailed}

func (o Outcome) String() string {
	switch o {
	case OutcomeCloned:
		return "cloned"
	case OutcomePulled:
		return "pulled"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is what one repository contributes to a run. Failures are values, never panics or
// errors returned from Run.
type Result struct {
	Project    string
	Repository string
	Outcome    Outcome
	Action     gitrepo.Action
	Err        error
	Duration   time.Duration
}

type CloneURLError struct {
	Result space.CloneURLResult
}

func (e *CloneURLError) Error() string {
	return "failed to get clone URL: " + e.Result.Reason()
}

func (e *CloneURLError) Unwrap() error { return e.Result.Err }

type Summary struct {
	Projects int
	// FailedProjects could not get a local directory; their repositories were not attempted.
	FailedProjects int
	Results        []Result
}

func (s Summary) Repositories() int {
	return len(s.Results)
}

func (s Summary) Count(outcome Outcome) int {
	count := 0
	for _, result := range s.Results {
		if result.Outcome == outcome {
			count++
		}
	}
	return count
}

func (s Summary) Failures() []Result {
	var failures []Result
	for _, result := range s.Results {
		if result.Outcome == OutcomeFailed {
			failures = append(failures, result)
		}
	}
	return failures
}
