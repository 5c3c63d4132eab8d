// Package logging centralises logger construction so that every subsystem
// shares a single configured logrus instance.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// Config controls the shared logger output.
type Config struct {
	Level    string `json:"level" yaml:"level"`
	ToFile   bool   `json:"toFile" yaml:"toFile"`
	Filename string `json:"filename" yaml:"filename"`
}

// Init builds the shared logger from config. The first call wins; later
// calls are no-ops so that tests and the menu binary can both call it safely.
func Init(cfg Config) {
	once.Do(func() {
		logger = build(cfg)
	})
}

func build(cfg Config) *logrus.Logger {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	var out io.Writer = os.Stdout
	if cfg.ToFile && cfg.Filename != "" {
		if file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = io.MultiWriter(os.Stdout, file)
		}
	}
	return &logrus.Logger{
		Out: out,
		Formatter: &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FullTimestamp:   true,
		},
		Level: level,
	}
}

// GetLogger returns the shared logger, initialising it with defaults when
// Init was never called.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = build(Config{Level: "info"})
	})
	return logger
}
