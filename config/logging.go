package config

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogWriter is the writer used for application, request and database logs.
var LogWriter io.Writer = os.Stdout

// LogFilePath returns the path to the backend log file.
func LogFilePath(cfg LogConfig) string {
	return filepath.Join(cfg.Dir, "eduleave-api.log")
}

// InitLogging points the standard logger (and LogWriter) at stdout plus a
// rotating log file. The returned closer is nil when only stdout is used.
func InitLogging(cfg LogConfig) io.Closer {
	if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
		LogWriter = os.Stdout
		log.SetOutput(LogWriter)
		return nil
	}

	rotator := &lumberjack.Logger{
		Filename:   LogFilePath(cfg),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	LogWriter = io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(LogWriter)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return rotator
}
