// Package logging configures the logrus logger shared by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stderr at the given level.
// format is "json" or "text"; anything else falls back to text.
func New(level, format string) (*logrus.Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}

// ParseLevel converts a level name to a logrus level. Empty input means info.
func ParseLevel(level string) (logrus.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}
