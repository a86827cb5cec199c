package syncCommand

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"spacemirror/internal/appConfig"
	"spacemirror/internal/color"
	"spacemirror/internal/ext"
	"spacemirror/internal/gitrepo"
	logger "spacemirror/internal/log"
	"spacemirror/internal/metrics"
	"spacemirror/internal/scheduler"
	"spacemirror/internal/space"
	"spacemirror/internal/syncCommand/terminalView"
	"spacemirror/internal/syncEngine"
)

const defaultWidth = 80

type SyncCommand struct {
	config    appConfig.AppConfig
	catalog   syncEngine.Catalog
	transport gitrepo.Transport
	stdout    io.Writer
	// tty is set when the live progress view owns the terminal.
	tty      *os.File
	registry *prometheus.Registry
}

// ProgressEnabled reports whether the live view will run, in which case logs must stay off stdout.
func ProgressEnabled(config appConfig.AppConfig, stdout *os.File) bool {
	return config.Progress && term.IsTerminal(int(stdout.Fd()))
}

func NewSyncCommand(config appConfig.AppConfig, stdout *os.File) *SyncCommand {
	api := space.NewAPIClient(config.Token, config.BaseURL, &http.Client{Timeout: config.RequestTimeout})

	var tty *os.File
	var progress io.Writer
	if ProgressEnabled(config, stdout) {
		tty = stdout
	} else if config.Verbose {
		progress = os.Stderr
	}

	cmd := newSyncCommand(config, space.NewCatalog(api), gitrepo.NewGoGitTransport(progress), stdout)
	cmd.tty = tty
	return cmd
}

func newSyncCommand(config appConfig.AppConfig, catalog syncEngine.Catalog, transport gitrepo.Transport, stdout io.Writer) *SyncCommand {
	cmd := &SyncCommand{
		config:    config,
		catalog:   catalog,
		transport: transport,
		stdout:    stdout,
	}
	if config.MetricsTextfile != "" {
		cmd.registry = prometheus.NewRegistry()
		metrics.EnableMetrics(metrics.DefaultNamespace, cmd.registry)
	}
	return cmd
}

// ExecuteSyncCommand runs once, or on a schedule when config.Every is set, until ctx is cancelled.
func ExecuteSyncCommand(ctx context.Context, config appConfig.AppConfig, stdout *os.File) error {
	return NewSyncCommand(config, stdout).Execute(ctx)
}

func (c *SyncCommand) Execute(ctx context.Context) error {
	if c.config.Every <= 0 {
		c.RunOnce(ctx)
		return nil
	}
	return scheduler.RunEvery(ctx, c.config.Every, func(ctx context.Context) {
		c.RunOnce(ctx)
	})
}

func (c *SyncCommand) RunOnce(ctx context.Context) syncEngine.Summary {
	logger.SetRunID(uuid.NewString())
	logger.Log.Infof("Mirroring %s into %s", color.FgCyan(c.config.BaseURL), color.FgCyan(ext.ReplaceHomeDirWithTilde(c.config.BackupRoot)))
	logger.Log.Debugf("Configuration: %s", c.config)

	viewModel := terminalView.NewSyncViewModel(c.config.BaseURL, c.config.BackupRoot, c.logFilePath())
	syncView := terminalView.NewDefaultSyncView(viewModel, c.stdout)
	engine := syncEngine.NewEngine(c.catalog, c.transport, c.engineOptions(), viewModel)

	var summary syncEngine.Summary
	if c.tty != nil {
		renderCtx, stopRenderLoop := context.WithCancel(context.Background())
		renderDone := make(chan struct{})
		go func() {
			defer close(renderDone)
			if err := syncView.StartTTYRenderLoop(renderCtx, c.tty); err != nil {
				logger.Log.Warnf("Progress view unavailable: %v", err)
			}
		}()
		summary = engine.Run(ctx)
		stopRenderLoop()
		<-renderDone
	} else {
		summary = engine.Run(ctx)
		syncView.RenderNonTTY(defaultWidth)
	}

	logger.Log.Infof("Synced %d repositories in %d projects: %d cloned, %d pulled, %d skipped, %d failed",
		summary.Repositories(), summary.Projects,
		summary.Count(syncEngine.OutcomeCloned), summary.Count(syncEngine.OutcomePulled),
		summary.Count(syncEngine.OutcomeSkipped), summary.Count(syncEngine.OutcomeFailed))
	if summary.FailedProjects > 0 {
		logger.Log.Warnf("%d projects could not be prepared", summary.FailedProjects)
	}
	if ctx.Err() != nil {
		logger.Log.Warnf("Sync interrupted: %v", ctx.Err())
	}

	c.writeMetrics()
	return summary
}

func (c *SyncCommand) engineOptions() syncEngine.Options {
	return syncEngine.Options{
		BackupRoot:         c.config.BackupRoot,
		Author:             object.Signature{Name: c.config.AuthorName, Email: c.config.AuthorEmail, When: time.Now()},
		Credentials:        gitrepo.NewCredentialBridge(c.config.Token, c.config.GitUsername).Credentials,
		OperationTimeout:   c.config.OperationTimeout,
		Concurrency:        c.config.Concurrency,
		RateLimitPerSecond: c.config.RateLimitPerSecond,
	}
}

func (c *SyncCommand) logFilePath() string {
	if c.config.LogFile == "" {
		return ""
	}
	return logger.GetLogFilePath(c.config.LogFile)
}

func (c *SyncCommand) writeMetrics() {
	if c.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(c.config.MetricsTextfile, c.registry); err != nil {
		logger.Log.Errorf("Failed to write metrics textfile %s: %v", color.FgRed(c.config.MetricsTextfile), err)
		return
	}
	logger.Log.Debugf("Wrote metrics to %s", color.FgCyan(c.config.MetricsTextfile))
}
