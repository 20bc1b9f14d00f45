// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var global = zerolog.Nop()

// Options controls where logs go and how much is kept.
type Options struct {
	// Console receives human-readable logs at warn level and above.
	// Nil disables console logging.
	Console io.Writer
	// FilePath appends JSON logs at Level and above when set.
	FilePath string
	// Level is a zerolog level name; empty means info.
	Level string
}

// Init builds the global logger. The returned closer releases the log file,
// if one was opened.
func Init(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}

	var writers []io.Writer
	if opts.Console != nil {
		cw := zerolog.ConsoleWriter{Out: opts.Console, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
		writers = append(writers, minLevelWriter{w: cw, min: zerolog.WarnLevel})
	}

	var closer io.Closer = nopCloser{}
	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
		closer = file
	}

	if len(writers) == 0 {
		global = zerolog.Nop()
		return closer, nil
	}

	global = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return closer, nil
}

// Get returns the global logger. It discards everything until Init is called.
func Get() *zerolog.Logger {
	return &global
}

// Set replaces the global logger, for tests.
func Set(l zerolog.Logger) {
	global = l
}

// minLevelWriter drops events below min.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m minLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < m.min {
		return len(p), nil
	}
	return m.w.Write(p)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
