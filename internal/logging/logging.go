// Package logging configures the installer's logrus logger: a rotating log
// file with full detail plus short progress lines on the console.
package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// DefaultLevel is used when Options.Level is empty.
const DefaultLevel = "info"

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Options configures Init.
type Options struct {
	Level string
	// File is the log file path. Empty disables the file sink.
	File string
	// Console receives Info and higher entries. Nil disables console output.
	Console io.Writer
}

// Init builds a logger from opts. The returned close function flushes and
// closes the log file.
func Init(opts Options) (*logrus.Logger, func() error, error) {
	levelName := strings.TrimSpace(opts.Level)
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf(messages.LogInvalidLevelFmt, opts.Level, err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableColors:   true,
	})
	logger.SetOutput(io.Discard)

	closeFn := func() error { return nil }
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   filepath.ToSlash(opts.File),
			MaxSize:    5, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
			Compress:   true,
		}
		logger.SetOutput(file)
		closeFn = file.Close
	}
	if opts.Console != nil {
		logger.AddHook(NewConsoleHook(opts.Console))
	}
	return logger, closeFn, nil
}

// ConsoleHook echoes entries to a terminal without timestamps or fields.
type ConsoleHook struct {
	out io.Writer
}

// NewConsoleHook returns a hook writing to out.
func NewConsoleHook(out io.Writer) *ConsoleHook {
	return &ConsoleHook{out: out}
}

// Levels returns Info and everything more severe.
func (h *ConsoleHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel}
}

// Fire prints the entry message, colored by severity.
func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line := entry.Message
	switch entry.Level {
	case logrus.WarnLevel:
		line = color.YellowString(messages.LogWarnPrefix + line)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		line = color.RedString(messages.LogErrorPrefix + line)
	}
	_, err := fmt.Fprintln(h.out, line)
	return err
}
