package syncEngine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/samber/lo"

	"spacemirror/internal/appConfig"
	"spacemirror/internal/color"
	"spacemirror/internal/gitrepo"
	"spacemirror/internal/layout"
	logger "spacemirror/internal/log"
	"spacemirror/internal/metrics"
	"spacemirror/internal/pipe"
	"spacemirror/internal/space"
)

type Catalog interface {
	ListProjects(ctx context.Context) []space.Project
	ListRepositories(ctx context.Context, projectID string) []string
	ResolveCloneURL(ctx context.Context, projectID, repoName string) space.CloneURLResult
}

// Observer is told about progress as it happens; implementations must be safe for concurrent use.
type Observer interface {
	ProjectsListed(count int)
	RepositoriesListed(project string, count int)
	RepositorySynced(result Result)
}

type Options struct {
	BackupRoot  string
	Author      object.Signature
	Credentials gitrepo.CredentialsFunc
	// OperationTimeout bounds each clone or pull; 0 means no limit.
	OperationTimeout time.Duration
	// Concurrency above 1 switches from strict catalog order to a bounded worker pool.
	Concurrency int
	// RateLimitPerSecond throttles pool dispatch; 0 is interpreted as no limit.
	RateLimitPerSecond int
}

type WorkUnit struct {
	Project    space.Project
	ProjectDir string
	RepoName   string
}

type Engine struct {
	catalog   Catalog
	transport gitrepo.Transport
	options   Options
	observer  Observer
}

func NewEngine(catalog Catalog, transport gitrepo.Transport, options Options, observer Observer) *Engine {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Engine{catalog: catalog, transport: transport, options: options, observer: observer}
}

// Run mirrors every repository the catalog lists. It always completes; per-repository failures
// are reported in the Summary.
func (e *Engine) Run(ctx context.Context) Summary {
	var summary Summary
	if e.options.Concurrency > 1 {
		summary = e.runPool(ctx)
	} else {
		summary = e.runSequential(ctx)
	}
	for _, outcome := range Outcomes {
		metrics.RecordRunOutcome(outcome.String(), summary.Count(outcome))
	}
	return summary
}

type catalogWalk struct {
	projects       int
	failedProjects int
}

// walkCatalog visits repositories in catalog order, creating each project directory before any
// of its repositories is dispatched. dispatch returns false to stop the walk.
func (e *Engine) walkCatalog(ctx context.Context, dispatch func(WorkUnit) bool) catalogWalk {
	var walk catalogWalk
	projects := e.catalog.ListProjects(ctx)
	walk.projects = len(projects)
	e.observer.ProjectsListed(len(projects))

	for _, project := range projects {
		if ctx.Err() != nil {
			return walk
		}
		projectDir, err := layout.ProjectDirectory(e.options.BackupRoot, project.Name)
		if err != nil {
			logger.Log.Errorf("Failed to prepare project %s: %v", color.FgRed(project.Name), err)
			walk.failedProjects++
			continue
		}
		repoNames := e.catalog.ListRepositories(ctx, project.ID)
		e.observer.RepositoriesListed(project.Name, len(repoNames))
		logger.Log.Debugf("Project %s has %d repositories", color.FgCyan(project.Name), len(repoNames))

		for _, repoName := range repoNames {
			if !dispatch(WorkUnit{Project: project, ProjectDir: projectDir, RepoName: repoName}) {
				return walk
			}
		}
	}
	return walk
}

func (e *Engine) runSequential(ctx context.Context) Summary {
	var results []Result
	walk := e.walkCatalog(ctx, func(unit WorkUnit) bool {
		if ctx.Err() != nil {
			return false
		}
		result := e.process(ctx, unit)
		e.observer.RepositorySynced(result)
		results = append(results, result)
		return true
	})
	return Summary{Projects: walk.projects, FailedProjects: walk.failedProjects, Results: results}
}

func (e *Engine) runPool(ctx context.Context) Summary {
	units := make(chan WorkUnit, appConfig.DefaultChannelBufferLength)
	walkDone := make(chan catalogWalk, 1)
	go func() {
		defer close(units)
		walkDone <- e.walkCatalog(ctx, func(unit WorkUnit) bool {
			select {
			case units <- unit:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	dispatched := pipe.RateLimit(ctx, units, e.options.RateLimitPerSecond, appConfig.DefaultChannelBufferLength)
	workers := make([]<-chan Result, e.options.Concurrency)
	for i := range workers {
		workers[i] = e.startWorker(ctx, dispatched)
	}

	var results []Result
	for result := range lo.FanIn(appConfig.DefaultChannelBufferLength, workers...) {
		e.observer.RepositorySynced(result)
		results = append(results, result)
	}
	walk := <-walkDone
	return Summary{Projects: walk.projects, FailedProjects: walk.failedProjects, Results: results}
}

// startWorker keeps going after failed units so one repository never cancels its siblings.
func (e *Engine) startWorker(ctx context.Context, units <-chan WorkUnit) <-chan Result {
	results := make(chan Result)
	go func() {
		defer close(results)
		for unit := range units {
			if ctx.Err() != nil {
				return
			}
			results <- e.process(ctx, unit)
		}
	}()
	return results
}

func (e *Engine) process(ctx context.Context, unit WorkUnit) (result Result) {
	start := time.Now()
	result = Result{Project: unit.Project.Name, Repository: unit.RepoName}
	defer func() {
		if recovered := recover(); recovered != nil {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("panic: %v", recovered)
			logger.Log.Errorf("Failed to %s repository %s in project %s: %v", result.Action, color.FgRed(unit.RepoName), color.FgRed(unit.Project.Name), result.Err)
		}
		result.Duration = time.Since(start)
	}()

	cloneURL := e.catalog.ResolveCloneURL(ctx, unit.Project.ID, unit.RepoName)
	if !cloneURL.Found() {
		logger.Log.Errorf("Failed to get clone URL for repository %s in project %s: %s", color.FgRed(unit.RepoName), color.FgRed(unit.Project.Name), cloneURL.Reason())
		result.Err = &CloneURLError{Result: cloneURL}
		result.Outcome = OutcomeFailed
		if cloneURL.Status == space.CloneURLMissing {
			result.Outcome = OutcomeSkipped
		}
		return result
	}

	repo := gitrepo.Repository{
		Name:     unit.RepoName,
		Project:  unit.Project.Name,
		CloneURL: cloneURL.URL,
		Path:     layout.RepoPath(unit.ProjectDir, unit.RepoName),
	}

	opCtx, cancel := e.operationContext(ctx)
	defer cancel()
	// Latency covers the transport operation only, not the clone URL lookup.
	syncStart := time.Now()
	action, err := repo.Sync(opCtx, e.transport, e.options.Credentials, e.options.Author)
	result.Action = action
	if action != gitrepo.ActionNone {
		metrics.RecordRepositorySync(unit.Project.Name, unit.RepoName, action.String(), err == nil, syncStart)
	}
	if err != nil {
		if errors.Is(opCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", e.options.OperationTimeout, err)
		}
		logger.Log.Errorf("Failed to %s repository %s in project %s: %v", verb(action), color.FgRed(unit.RepoName), color.FgRed(unit.Project.Name), err)
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	if action == gitrepo.ActionClone {
		result.Outcome = OutcomeCloned
	} else {
		result.Outcome = OutcomePulled
	}
	return result
}

func (e *Engine) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.options.OperationTimeout > 0 {
		return context.WithTimeout(ctx, e.options.OperationTimeout)
	}
	return context.WithCancel(ctx)
}

func verb(action gitrepo.Action) string {
	if action == gitrepo.ActionNone {
		return "sync"
	}
	return action.String()
}

type nopObserver struct{}

func (nopObserver) ProjectsListed(int)             {}
func (nopObserver) RepositoriesListed(string, int) {}
func (nopObserver) RepositorySynced(Result)        {}
