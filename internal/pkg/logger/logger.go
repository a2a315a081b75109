package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger - интерфейс для логирования
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	With(key string, value interface{}) Logger
}

type zerologLogger struct {
	logger zerolog.Logger
}

// New создает logger с заданным уровнем, форматом (json/console) и выводом (stdout или путь к файлу).
// Если файл открыть не удалось, пишем в stdout.
func New(level, format, output string) Logger {
	return NewWithWriter(level, format, openOutput(output))
}

// NewWithWriter создает logger поверх произвольного writer (используется в тестах)
func NewWithWriter(level, format string, writer io.Writer) Logger {
	if format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "carrental").
		Logger()

	return &zerologLogger{logger: logger}
}

func openOutput(output string) io.Writer {
	if output == "" || output == "stdout" {
		return os.Stdout
	}
	if output == "stderr" {
		return os.Stderr
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stdout
	}
	return f
}

func (l *zerologLogger) Debug(msg string, fields ...map[string]interface{}) {
	l.write(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...map[string]interface{}) {
	l.write(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...map[string]interface{}) {
	l.write(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...map[string]interface{}) {
	l.write(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) Fatal(msg string, fields ...map[string]interface{}) {
	l.write(l.logger.Fatal(), msg, fields)
}

func (l *zerologLogger) With(key string, value interface{}) Logger {
	return &zerologLogger{logger: l.logger.With().Interface(key, value).Logger()}
}

// write добавляет поля к событию; ошибки пишем строкой, чтобы не терять текст в JSON
func (l *zerologLogger) write(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			if err, ok := value.(error); ok {
				event.Str(key, err.Error())
				continue
			}
			event.Interface(key, value)
		}
	}
	event.Msg(msg)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewNoop создает logger, который ничего не пишет
func NewNoop() Logger {
	return &zerologLogger{logger: zerolog.Nop()}
}
