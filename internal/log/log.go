package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const LogFileName = "spacemirror.log"

var Log = logrus.New()

type LogOptions struct {
	Verbose bool
	// FilePath is appended to when set.
	FilePath string
	// Console receives log lines in addition to the file; nil disables console output.
	Console io.Writer
}

// InitLogger configures Log. The returned closer releases the log file, if any.
func InitLogger(options LogOptions) (io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if options.FilePath != "" {
		file, err := os.OpenFile(options.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
		closer = file
	}
	if options.Console != nil {
		writers = append(writers, options.Console)
	}

	switch len(writers) {
	case 0:
		Log.SetOutput(io.Discard)
	case 1:
		Log.SetOutput(writers[0])
	default:
		Log.SetOutput(io.MultiWriter(writers...))
	}

	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if options.Verbose {
		Log.SetLevel(logrus.DebugLevel)
		Log.Debugln("Verbose (debug) logging enabled")
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
	return closer, nil
}

func GetLogFilePath(fileName string) string {
	path, err := filepath.Abs(fileName)
	if err != nil {
		return fileName
	}
	return path
}

var runID atomic.Value

type runHook struct{}

func (runHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (runHook) Fire(entry *logrus.Entry) error {
	if id, ok := runID.Load().(string); ok && id != "" {
		entry.Data["run"] = id
	}
	return nil
}

func init() {
	Log.AddHook(runHook{})
}

// SetRunID tags every subsequent log entry with the given run identifier.
func SetRunID(id string) {
	runID.Store(id)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
