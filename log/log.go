// Package log configures go-logging for mkelem's commands.
package log

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(`%{time:2006-01-02T15:04:05.000} %{module} %{level:.4s} %{message}`)

var Log = logging.MustGetLogger("mkelem")

func init() {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), format)
	logging.SetBackend(backend)
	logging.SetLevel(logging.INFO, "")
}

// Logger returns the logger for a module, e.g. "page" or "server".
func Logger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// SetLevel sets the level of every module. level is one of DEBUG, INFO, NOTICE, WARNING, ERROR, or CRITICAL, in any
// case.
func SetLevel(level string) error {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	logging.SetLevel(lvl, "")
	return nil
}
