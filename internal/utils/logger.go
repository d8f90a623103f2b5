package utils

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Log levels
const (
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
	DEBUG = "DEBUG"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger struct
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
}

// AppDir returns ~/.dlist, creating it if needed
func AppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".dlist")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// getDefaultLogFilePath returns the default log file path
func getDefaultLogFilePath() string {
	dir, err := AppDir()
	if err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	return filepath.Join(dir, "dlist.log")
}

// NewLogger creates a new logger instance (singleton)
func NewLogger(logFilePath string, debugMode bool) *Logger {
	once.Do(func() {
		if logFilePath == "" {
			logFilePath = getDefaultLogFilePath()
		}

		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}

		instance = newLogger(file, os.Stdout, debugMode)
	})
	return instance
}

// newLogger writes every level to file and console, except DEBUG which only
// reaches the console in debug mode
func newLogger(file, console io.Writer, debugMode bool) *Logger {
	multiWriter := io.MultiWriter(file, console)

	var debugWriter io.Writer
	if debugMode {
		debugWriter = multiWriter
	} else {
		debugWriter = file
	}

	return &Logger{
		infoLogger:  log.New(multiWriter, "[INFO] ", log.Ldate|log.Ltime),
		warnLogger:  log.New(multiWriter, "[WARN] ", log.Ldate|log.Ltime),
		errorLogger: log.New(multiWriter, "[ERROR] ", log.Ldate|log.Ltime),
		debugLogger: log.New(debugWriter, "[DEBUG] ", log.Ldate|log.Ltime),
	}
}

// GetLogger retrieves the singleton logger instance
func GetLogger() *Logger {
	if instance == nil {
		log.Fatalf("Logger has not been initialized. Call NewLogger() first.")
	}
	return instance
}

// Logging methods
func (l *Logger) Info(message string) {
	l.infoLogger.Println(message)
}

func (l *Logger) Warn(message string) {
	l.warnLogger.Println(message)
}

func (l *Logger) Error(message string) {
	l.errorLogger.Println(message)
}

func (l *Logger) Debug(message string) {
	l.debugLogger.Println(message)
}
