package appConfig

import (
	"fmt"
	"strings"
	"time"

	"spacemirror/internal/ext"
)

const DefaultChannelBufferLength = 10

const (
	EnvBaseURL     = "SPACE_BASE_URL"
	EnvToken       = "SPACE_TOKEN"
	EnvBackupRoot  = "SPACE_BACKUP_ROOT"
	EnvAuthorEmail = "SPACE_AUTHOR_EMAIL"
)

const (
	DefaultGitUsername      = "token"
	DefaultAuthorName       = "Space Backup"
	DefaultOperationTimeout = 30 * time.Minute
	DefaultRequestTimeout   = time.Minute
	DefaultConcurrency      = 1
)

// Options are the tuning knobs; they come from the YAML file and are overridden by flags.
type Options struct {
	GitUsername        string        `yaml:"gitUsername"`      // Username paired with the token for git over HTTP
	AuthorName         string        `yaml:"authorName"`       // Display name of the pull merge author
	OperationTimeout   time.Duration `yaml:"operationTimeout"` // Per clone/pull
	RequestTimeout     time.Duration `yaml:"requestTimeout"`   // Per catalog request
	Concurrency        int           `yaml:"concurrency"`
	RateLimitPerSecond int           `yaml:"rateLimitPerSecond"` // 0 is interpreted as no limit
	LogFile            string        `yaml:"logFile"`
	MetricsTextfile    string        `yaml:"metricsTextfile"`
	Every              time.Duration `yaml:"every"` // 0 runs once
	Progress           bool          `yaml:"progress"`
	Verbose            bool          `yaml:"verbose"`
}

func (o Options) WithDefaults() Options {
	o.GitUsername = ext.DefaultValue(o.GitUsername, DefaultGitUsername)
	o.AuthorName = ext.DefaultValue(o.AuthorName, DefaultAuthorName)
	o.OperationTimeout = ext.DefaultValue(o.OperationTimeout, DefaultOperationTimeout)
	o.RequestTimeout = ext.DefaultValue(o.RequestTimeout, DefaultRequestTimeout)
	o.Concurrency = ext.DefaultValue(o.Concurrency, DefaultConcurrency)
	return o
}

func (o Options) Validate() error {
	var problems []string
	if o.Concurrency < 0 {
		problems = append(problems, fmt.Sprintf("concurrency must not be negative, got %d", o.Concurrency))
	}
	if o.RateLimitPerSecond < 0 {
		problems = append(problems, fmt.Sprintf("rateLimitPerSecond must not be negative, got %d", o.RateLimitPerSecond))
	}
	if o.OperationTimeout < 0 || o.RequestTimeout < 0 || o.Every < 0 {
		problems = append(problems, "durations must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AppConfig is built once at startup and passed by value; nothing mutates it during a run.
type AppConfig struct {
	BaseURL     string
	Token       string
	BackupRoot  string
	AuthorEmail string
	Options
}

type requiredValue struct {
	description string
	envName     string
	target      *string
}

// Resolve takes each required value from its positional argument or, when absent or empty,
// from the environment.
func Resolve(args []string, lookupEnv func(string) (string, bool), options Options) (AppConfig, error) {
	var config AppConfig
	required := []requiredValue{
		{"base URL", EnvBaseURL, &config.BaseURL},
		{"bearer token", EnvToken, &config.Token},
		{"backup root directory", EnvBackupRoot, &config.BackupRoot},
		{"author email", EnvAuthorEmail, &config.AuthorEmail},
	}

	missing := &MissingValuesError{}
	for i, value := range required {
		if i < len(args) && args[i] != "" {
			*value.target = args[i]
			continue
		}
		if fromEnv, ok := lookupEnv(value.envName); ok && fromEnv != "" {
			*value.target = fromEnv
			continue
		}
		missing.Values = append(missing.Values, fmt.Sprintf("%s (argument %d or %s)", value.description, i+1, value.envName))
	}
	if len(missing.Values) > 0 {
		return AppConfig{}, missing
	}

	config.Options = options.WithDefaults()
	if err := config.Options.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// String never includes the token.
func (c AppConfig) String() string {
	return fmt.Sprintf("baseURL=%s backupRoot=%s authorEmail=%s concurrency=%d operationTimeout=%s",
		c.BaseURL, c.BackupRoot, c.AuthorEmail, c.Concurrency, c.OperationTimeout)
}

type MissingValuesError struct {
	Values []string
}

func (e *MissingValuesError) Error() string {
	return "missing required configuration: " + strings.Join(e.Values, ", ")
}
