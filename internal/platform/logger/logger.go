// Package logger is a thin leveled logging facade over go-logging.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

const (
	moduleName = "blog"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = logging.MustGetLogger(moduleName)

func init() {
	InitLogger(logging.INFO)
}

// InitLogger sends records at or above level to stderr.
func InitLogger(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend,
		logging.MustStringFormatter(`%{time:`+timeFormat+`} %{level} - %{message}`))

	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, moduleName)
	logger.SetBackend(leveled)
}

// ParseLevel maps names such as "debug" or "WARNING" to a level, defaulting to INFO.
func ParseLevel(name string) logging.Level {
	level, err := logging.LogLevel(name)
	if err != nil {
		return logging.INFO
	}
	return level
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
