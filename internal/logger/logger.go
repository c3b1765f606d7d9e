package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every log line.
const ServiceName = "marinai"

// Setup initializes the global zerolog logger.
//   - level: trace, debug, info, warn, error, fatal or panic (defaults to info)
//   - format: "json" for production, "pretty" for human-readable dev output
//   - file: optional path; JSON lines are appended there as well as to stdout
//
// The returned func closes the log file and must be called on shutdown.
func Setup(level, format, file string) (zerolog.Logger, func()) {
	var console io.Writer = os.Stdout
	if format == "pretty" {
		console = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	writer := console
	closeFn := func() {}
	var fileErr error
	if file != "" {
		f, err := openLogFile(file)
		if err != nil {
			fileErr = err
		} else {
			writer = zerolog.MultiLevelWriter(console, f)
			closeFn = func() { _ = f.Close() }
		}
	}

	log := zerolog.New(writer).
		With().
		Timestamp().
		Str("service", ServiceName).
		Caller().
		Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("file", file).Msg("Log file unavailable, logging to stdout only")
	}

	return log, closeFn
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
