package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

var (
	leveled logging.LeveledBackend
	current = Notice
)

// Logger is the subset of *logging.Logger used throughout the program.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects every module logger to w. The current level is kept.
func SetSink(w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	leveled = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	logging.SetBackend(leveled)
	SetLevel(current)
}

func SetLevel(level Level) {
	current = level
	leveled.SetLevel(toLogging(level), "")
}

func GetLevel() Level {
	return current
}

// ParseLevel accepts the level names used in config files, case-insensitive.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("unknown log level %q", name)
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func toLogging(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	}
	return logging.NOTICE
}

func init() {
	SetSink(os.Stdout)
}
