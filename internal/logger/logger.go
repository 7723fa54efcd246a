package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/timetable/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Output replaces the rotating log file when set (used by the server and tests)
	Output io.Writer
}

// LogPath returns the log file location for a config directory.
func LogPath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	var fileWriter io.Writer = cfg.Output
	if fileWriter == nil {
		logFile := LogPath(cfg.ConfigDir)
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		fileWriter = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// stderr only gets a copy in debug mode
	writer := fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
