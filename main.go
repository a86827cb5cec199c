package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"spacemirror/internal/appConfig"
	"spacemirror/internal/ext"
	logger "spacemirror/internal/log"
	"spacemirror/internal/syncCommand"
)

type cliFlags struct {
	verbose         bool
	progress        bool
	configPath      string
	envFile         string
	concurrency     int
	rateLimit       int
	timeout         time.Duration
	requestTimeout  time.Duration
	every           time.Duration
	logFile         string
	metricsTextfile string
	gitUsername     string
	authorName      string
}

type runFunc func(ctx context.Context, config appConfig.AppConfig) error

func newRootCmd(run runFunc) *cobra.Command {
	var flags cliFlags
	cmd := &cobra.Command{
		Use:   "spacemirror [baseURL] [token] [backupRoot] [authorEmail]",
		Short: "Mirror every repository of every Space project into a local directory tree",
		Long: `spacemirror clones each repository of each project of a Space organization into
<backupRoot>/<project>/<repository>, and fast-forward pulls repositories that are already there.

Arguments that are left out or empty are read from ` + appConfig.EnvBaseURL + `, ` + appConfig.EnvToken + `,
` + appConfig.EnvBackupRoot + ` and ` + appConfig.EnvAuthorEmail + ` (a .env file is loaded first).`,
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadAppConfig(cmd, args, &flags)
			if err != nil {
				var missing *appConfig.MissingValuesError
				if errors.As(err, &missing) {
					return fmt.Errorf("%w\nUsage: %s", err, cmd.UseLine())
				}
				return err
			}
			return run(cmd.Context(), config)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level")
	f.BoolVar(&flags.progress, "progress", false, "Show live progress when stdout is a terminal; logs then go to the log file only")
	f.StringVar(&flags.configPath, "config", "", "YAML options file (default: "+appConfig.ConfigFileName+" in the working or home directory)")
	f.StringVar(&flags.envFile, "env-file", "", "dotenv file to load before reading the environment (default: .env if present)")
	f.IntVar(&flags.concurrency, "concurrency", appConfig.DefaultConcurrency, "Repositories synced in parallel; 1 keeps catalog order")
	f.IntVar(&flags.rateLimit, "rate-limit", 0, "Repositories dispatched per second when concurrency > 1; 0 is interpreted as no limit")
	f.DurationVar(&flags.timeout, "timeout", appConfig.DefaultOperationTimeout, "Time limit for each clone or pull")
	f.DurationVar(&flags.requestTimeout, "request-timeout", appConfig.DefaultRequestTimeout, "Time limit for each catalog request")
	f.DurationVar(&flags.every, "every", 0, "Keep running and sync again at this interval")
	f.StringVar(&flags.logFile, "log-file", "", "Also append logs to this file")
	f.StringVar(&flags.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after every run")
	f.StringVar(&flags.gitUsername, "git-username", appConfig.DefaultGitUsername, "Username sent with the token for git over HTTP")
	f.StringVar(&flags.authorName, "author-name", appConfig.DefaultAuthorName, "Author name used for pulls")
	return cmd
}

// loadAppConfig layers flags over the YAML options and resolves the required values from
// arguments and environment.
func loadAppConfig(cmd *cobra.Command, args []string, flags *cliFlags) (appConfig.AppConfig, error) {
	if err := appConfig.LoadEnvFile(flags.envFile); err != nil {
		return appConfig.AppConfig{}, err
	}
	options, err := appConfig.LoadOptions(flags.configPath)
	if err != nil {
		return appConfig.AppConfig{}, err
	}
	applyFlags(cmd, flags, &options)
	return appConfig.Resolve(args, os.LookupEnv, options)
}

// applyFlags only overrides options whose flag was given explicitly.
func applyFlags(cmd *cobra.Command, flags *cliFlags, options *appConfig.Options) {
	changed := cmd.Flags().Changed
	if changed("verbose") {
		options.Verbose = flags.verbose
	}
	if changed("progress") {
		options.Progress = flags.progress
	}
	if changed("concurrency") {
		options.Concurrency = flags.concurrency
	}
	if changed("rate-limit") {
		options.RateLimitPerSecond = flags.rateLimit
	}
	if changed("timeout") {
		options.OperationTimeout = flags.timeout
	}
	if changed("request-timeout") {
		options.RequestTimeout = flags.requestTimeout
	}
	if changed("every") {
		options.Every = flags.every
	}
	if changed("log-file") {
		options.LogFile = flags.logFile
	}
	if changed("metrics-textfile") {
		options.MetricsTextfile = flags.metricsTextfile
	}
	if changed("git-username") {
		options.GitUsername = flags.gitUsername
	}
	if changed("author-name") {
		options.AuthorName = flags.authorName
	}
}

func runSync(ctx context.Context, config appConfig.AppConfig) error {
	var console io.Writer = os.Stderr
	if syncCommand.ProgressEnabled(config, os.Stdout) {
		console = nil
		config.LogFile = ext.DefaultValue(config.LogFile, logger.LogFileName)
	}

	closer, err := logger.InitLogger(logger.LogOptions{Verbose: config.Verbose, FilePath: config.LogFile, Console: console})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "spacemirror: failed to close log file: %v\n", err)
		}
	}()

	return syncCommand.ExecuteSyncCommand(ctx, config, os.Stdout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(runSync).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacemirror: %v\n", err)
		os.Exit(1)
	}
}
