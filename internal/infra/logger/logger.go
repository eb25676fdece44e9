// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Config represents logger configuration.
type Config struct {
	Output string // "stdout", "stderr", or "file"
	Level  string // "debug", "info", "warn", "error"
	File   string // log file path (used when Output is "file")
}

// Init initializes the global zerolog logger with the given configuration.
// The returned closer releases the log file, if any.
// The terminal display owns stdout, so console logging defaults to stderr.
func Init(cfg Config) (io.Closer, error) {
	out, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.TimeOnly
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.CallerMarshalFunc = shortCaller

	logger := out.logger(level == zerolog.DebugLevel)
	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger

	return out.closer, nil
}

// output is a resolved log destination.
type output struct {
	writer  io.Writer
	closer  io.Closer
	console bool // human-readable console format instead of JSON
}

func openOutput(cfg Config) (output, error) {
	switch strings.ToLower(cfg.Output) {
	case "stderr", "":
		return output{writer: os.Stderr, closer: nopCloser{}, console: true}, nil
	case "stdout":
		return output{writer: os.Stdout, closer: nopCloser{}, console: true}, nil
	}

	path := cfg.File
	if path == "" {
		path = cfg.Output
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return output{}, err
	}
	return output{writer: f, closer: f}, nil
}

func (o output) logger(withCaller bool) zerolog.Logger {
	var w io.Writer = o.writer
	if o.console {
		cw := zerolog.ConsoleWriter{Out: o.writer, TimeFormat: time.TimeOnly}
		if withCaller {
			cw.PartsOrder = []string{"time", "level", "message", "caller"}
			cw.FormatCaller = func(i interface{}) string {
				return "(" + i.(string) + ")"
			}
		}
		w = cw
	}

	ctx := zerolog.New(w).With().Timestamp()
	if withCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// shortCaller keeps the last directory and file name of a caller path.
func shortCaller(pc uintptr, file string, line int) string {
	parts := strings.Split(file, string(filepath.Separator))
	if len(parts) > 1 {
		return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// ParseLevel parses the log level string. Unknown levels map to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning", "":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
