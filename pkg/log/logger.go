package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	errorLogFileSuffix = "wf"
)

var logger *logrus.Logger

func init() {
	// Console-only output until Init is called with a real config.
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        time.DateTime,
		DisableLevelTruncation: true,
	})
	logger.SetLevel(logrus.InfoLevel)
}

// Config holds the logging configuration.
type Config struct {
	Filename   string `mapstructure:"filename"`    // log file path; empty disables file output
	MaxSize    int    `mapstructure:"max_size"`    // max size of a single log file (MB)
	MaxBackups int    `mapstructure:"max_backups"` // max number of rotated files to keep
	MaxAge     int    `mapstructure:"max_age"`     // max age of rotated files (days)
	Compress   bool   `mapstructure:"compress"`    // compress rotated files
	Level      string `mapstructure:"level"`       // debug, info, warn, error, fatal, panic
	Console    bool   `mapstructure:"console"`     // also write to stdout
}

// Init configures the process-wide logger.
func Init(cfg Config) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        time.DateTime,
		DisableLevelTruncation: true,
	})

	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, os.Stdout)
	}

	if cfg.Filename != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, fileWriter)
	}

	if len(writers) > 0 {
		logger.SetOutput(io.MultiWriter(writers...))
	} else {
		logger.SetOutput(os.Stdout)
	}

	// Errors additionally go to a dedicated <filename>.wf file so a failed
	// patch run can be inspected without grepping the full log.
	if cfg.Filename != "" {
		errorWriter := &lumberjack.Logger{
			Filename:   fmt.Sprintf("%s.%s", cfg.Filename, errorLogFileSuffix),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		logger.AddHook(&ErrorHook{
			Writer:    errorWriter,
			LogLevels: []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel},
			Formatter: logger.Formatter,
		})
	}
}

// ErrorHook duplicates error-and-above entries into a separate writer.
type ErrorHook struct {
	Writer    io.Writer
	LogLevels []logrus.Level
	Formatter logrus.Formatter
}

func (h *ErrorHook) Levels() []logrus.Level {
	return h.LogLevels
}

func (h *ErrorHook) Fire(entry *logrus.Entry) error {
	line, err := h.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.Writer.Write(line)
	return err
}

// Debug logs at Debug level.
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Debugf logs a formatted message at Debug level.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Info logs at Info level.
func Info(args ...interface{}) {
	logger.Info(args...)
}

// Infof logs a formatted message at Info level.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warn logs at Warn level.
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Warnf logs a formatted message at Warn level.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs at Error level.
func Error(args ...interface{}) {
	logger.Error(args...)
}

// Errorf logs a formatted message at Error level.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Fatal logs at Fatal level and exits.
func Fatal(args ...interface{}) {
	logger.Fatal(args...)
}

// Fatalf logs a formatted message at Fatal level and exits.
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

// WithFields returns an entry with the given fields attached.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return logger.WithFields(fields)
}

// GetLogger returns the underlying logger instance.
func GetLogger() *logrus.Logger {
	return logger
}
