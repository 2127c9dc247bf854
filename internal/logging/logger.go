// Package logging provides the leveled run logger.
//
// Console lines are colored when stdout is a terminal; when a log file
// is configured every line is mirrored there uncolored, so the file is
// the durable record of what a run did.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	infoColor  = color.New(color.FgBlue)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	debugColor = color.New(color.FgHiBlack)
)

// Logger writes leveled, timestamped lines to a console writer and an
// optional file sink.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	colored bool
	verbose bool

	filePathPending string
}

// Option configures a Logger.
type Option func(*Logger)

// WithVerbose enables Debug output on the console.
func WithVerbose() Option {
	return func(l *Logger) { l.verbose = true }
}

// WithFile mirrors all lines (including Debug) to the given path,
// creating parent directories as needed.
func WithFile(path string) Option {
	return func(l *Logger) { l.filePathPending = path }
}

// New creates a Logger writing to stdout/stderr.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		out:     os.Stdout,
		errOut:  os.Stderr,
		colored: isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == "",
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.filePathPending != "" {
		if err := os.MkdirAll(filepath.Dir(l.filePathPending), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(l.filePathPending, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
	}
	return l, nil
}

// WithWriters redirects console output, disabling color. Used by tests
// and by callers that capture output.
func WithWriters(out, errOut io.Writer) Option {
	return func(l *Logger) {
		l.out = out
		l.errOut = errOut
		l.colored = false
	}
}

// Close closes the file sink if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", infoColor, l.out, true, format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", warnColor, l.out, true, format, args...)
}

// Error logs at ERROR level to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", errorColor, l.errOut, true, format, args...)
}

// Debug logs at DEBUG level; console output only with WithVerbose, the
// file sink always gets it.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.line("DEBUG", debugColor, l.out, l.verbose, format, args...)
}

func (l *Logger) line(level string, clr *color.Color, console io.Writer, toConsole bool, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := fmt.Sprintf("%s [%s] %s\n", ts, level, text)

	l.mu.Lock()
	defer l.mu.Unlock()

	if toConsole {
		if l.colored {
			fmt.Fprintf(console, "%s %s %s\n", ts, clr.Sprintf("[%s]", level), text)
		} else {
			_, _ = io.WriteString(console, plain)
		}
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}
