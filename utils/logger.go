package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Logger представляет логгер дашборда
type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

// NewLogger создает логгер, пишущий в out
func NewLogger(out io.Writer, verbose bool) *Logger {
	// Инициализируем логгеры для разных уровней
	return &Logger{
		infoLogger:  log.New(out, "INFO: ", log.Ldate|log.Ltime),
		errorLogger: log.New(out, "ERROR: ", log.Ldate|log.Ltime),
		debugLogger: log.New(out, "DEBUG: ", log.Ldate|log.Ltime),
		isVerbose:   verbose,
	}
}

// NewFileLogger создает логгер, который пишет в stderr и в файл
// dashboard_log_YYYY-MM-DD.log в каталоге dir. Stdout остается за выводом команд.
func NewFileLogger(dir string, verbose bool) (*Logger, io.Closer, error) {
	currentTime := time.Now().Format("2006-01-02")
	logFileName := filepath.Join(dir, fmt.Sprintf("dashboard_log_%s.log", currentTime))

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось открыть или создать файл лога: %w", err)
	}

	return NewLogger(io.MultiWriter(os.Stderr, file), verbose), file, nil
}

// Discard возвращает логгер без вывода (для тестов и утилит)
func Discard() *Logger {
	return NewLogger(io.Discard, false)
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLogger.Println(fmt.Sprintf(format, v...))
}

// Error логирует сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLogger.Println(fmt.Sprintf(format, v...))
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *Logger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	l.debugLogger.Println(fmt.Sprintf(format, v...))
}

// IsVerbose сообщает, включен ли отладочный вывод
func (l *Logger) IsVerbose() bool {
	return l.isVerbose
}
