// Package logging configures the logrus logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable consulted when no level flag is
// given.
const EnvLevel = "ARCHAEO_LOG"

// DefaultLevel is used when neither a flag, the environment nor the config
// file sets a level.
const DefaultLevel = logrus.InfoLevel

// ParseLevel parses a level name. The empty string yields DefaultLevel.
func ParseLevel(name string) (logrus.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// ResolveLevel picks the first non-empty level among flag, the ARCHAEO_LOG
// environment variable and the config file value. Verbose forces debug.
func ResolveLevel(flag, config string, verbose bool) (logrus.Level, error) {
	if verbose {
		return logrus.DebugLevel, nil
	}
	for _, name := range []string{flag, os.Getenv(EnvLevel), config} {
		if strings.TrimSpace(name) != "" {
			return ParseLevel(name)
		}
	}
	return DefaultLevel, nil
}

// New returns a text logger writing to w at level. A nil w writes to stderr.
func New(level logrus.Level, w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		// Timestamps only at debug and trace.
		DisableTimestamp: level < logrus.DebugLevel,
		FullTimestamp:    true,
	})
	return l
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
