package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "prismatic"

// Options controls where Setup sends log records
type Options struct {
	Verbosity int
	// Console receives human readable output. Defaults to stderr.
	Console io.Writer
	// File receives JSON records. Empty means LogFilePath(); "-" disables it.
	File string
}

// SetupLogger installs the global logger for a -v count, writing to stderr
// and the state log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup installs the global logger described by opts
func Setup(opts Options) {
	level := LevelForVerbosity(opts.Verbosity)
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	sinks := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !writerIsTerminal(console),
	}}

	target := opts.File
	if target == "" {
		target = LogFilePath()
	}
	var openErr error
	if target != "-" {
		f, err := openLogFile(target)
		if err != nil {
			openErr = err
		} else {
			sinks = append(sinks, f)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if openErr != nil {
		log.Warn().Err(openErr).Str("path", target).Msg("Log file unavailable, console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", target).Msg("Logger ready")
}

// LevelForVerbosity maps the -v count to a zerolog level
func LevelForVerbosity(verbosity int) zerolog.Level {
	levels := []zerolog.Level{zerolog.WarnLevel, zerolog.InfoLevel, zerolog.DebugLevel}
	if verbosity < 0 {
		return zerolog.WarnLevel
	}
	if verbosity < len(levels) {
		return levels[verbosity]
	}
	return zerolog.TraceLevel
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func WithFields(fields map[string]interface{}) zerolog.Logger {
	return log.With().Fields(fields).Logger()
}

// LogFilePath is $XDG_STATE_HOME/prismatic/prismatic.log, falling back to
// ~/.local/state when the variable is unset
func LogFilePath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName + ".log"
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, appName, appName+".log")
}

func openLogFile(name string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// LogOperationStart logs operation at debug level and returns the
// matching completion logger
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	began := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().Str("operation", operation).Dur("duration", time.Since(began)).Msg("Operation completed")
	}
}
