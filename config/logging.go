package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = logrus.New()

// InitLogger initializes the logging setup using Logrus
func InitLogger(cfg *Config) {
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.MkdirAll(dir, 0755)
		}
	}

	// Set output to a log file with rotation (using lumberjack)
	var out io.Writer = &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10,   // Megabytes before log is rotated
		MaxBackups: 3,    // Number of old logs to keep
		MaxAge:     28,   // Maximum number of days to retain old log files
		Compress:   true, // Compress backups
	}
	if !cfg.IsProduction() {
		out = io.MultiWriter(os.Stdout, out)
	}
	Log.Out = out

	Log.SetLevel(ParseLevel(cfg.LogLevel))
	Log.SetFormatter(&logrus.JSONFormatter{})

	Log.Info("Logger initialized")
}

// ParseLevel maps the LOG_LEVEL setting to a logrus level; unknown values mean info.
func ParseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
