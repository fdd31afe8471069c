// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger. It discards output until Init is called.
var Logger = log.New(io.Discard)

type Config struct {
	Debug bool
	Dir   string
}

// Init points the global logger at a rotating file under cfg.Dir/logs.
// Debug mode also writes to stderr and lowers the level to debug.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.Dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "fieldlog.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = New(writer, level, cfg.Debug)
	return nil
}

// New builds a logger in the fieldlog format.
func New(w io.Writer, level log.Level, reportCaller bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    reportCaller,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "fieldlog",
	})
}

func Debug(msg string, keyvals ...any) { Logger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { Logger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { Logger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { Logger.Error(msg, keyvals...) }
