package fwpatch

import "fmt"

type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	}
	return fmt.Sprintf("LEVEL%d", int(l))
}

type Logger interface {
	Error(format string, param ...interface{})
	Warning(format string, param ...interface{})
	Info(format string, param ...interface{})
}

/* LogFunc adapts a single leveled function to Logger */
type LogFunc func(level Level, format string, param ...interface{})

func (f LogFunc) Error(format string, param ...interface{}) {
	f(LevelError, format, param...)
}

func (f LogFunc) Warning(format string, param ...interface{}) {
	f(LevelWarning, format, param...)
}

func (f LogFunc) Info(format string, param ...interface{}) {
	f(LevelInfo, format, param...)
}

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})    {}

var NopLogger Logger = nopLogger{}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger
	}
	return l
}
