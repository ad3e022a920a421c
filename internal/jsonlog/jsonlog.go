package jsonlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
	FatalLevel
	OffLevel
)

type Level int8

type Logger struct {
	out   io.Writer
	level Level
	mu    sync.Mutex
	now   func() time.Time
	exit  func(int)
}

func (lv Level) String() string {
	switch lv {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case OffLevel:
		return "OFF"
	default:
		return ""
	}
}

// ParseLevel accepts level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	for lv := DebugLevel; lv <= OffLevel; lv++ {
		if strings.EqualFold(s, lv.String()) {
			return lv, nil
		}
	}

	return OffLevel, fmt.Errorf("unknown log level %q", s)
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		out:   out,
		level: level,
		now:   time.Now,
		exit:  os.Exit,
	}
}

func (l *Logger) Debug(message string, properties map[string]string) {
	l.print(DebugLevel, message, properties)
}

func (l *Logger) Info(message string, properties map[string]string) {
	l.print(InfoLevel, message, properties)
}

func (l *Logger) Error(err error, properties map[string]string) {
	l.print(ErrorLevel, err.Error(), properties)
}

func (l *Logger) FatalErr(err error, properties map[string]string) {
	l.print(FatalLevel, err.Error(), properties)
	l.exit(1)
}

func (l *Logger) print(level Level, message string, properties map[string]string) (int, error) {
	if level < l.level || level == OffLevel {
		return 0, nil
	}

	aux := struct {
		Level      string            `json:"level"`
		Time       string            `json:"time"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties,omitempty"`
		Trace      string            `json:"trace,omitempty"`
	}{
		Level:      level.String(),
		Time:       l.now().UTC().Format(time.RFC3339),
		Message:    message,
		Properties: properties,
	}

	if level >= ErrorLevel {
		aux.Trace = string(debug.Stack())
	}

	line, err := json.Marshal(aux)
	if err != nil {
		line = []byte(ErrorLevel.String() + ": unable to marshal log message: " + err.Error())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Write(append(line, '\n'))
}

// Write lets the logger back a log.Logger such as http.Server.ErrorLog.
func (l *Logger) Write(b []byte) (int, error) {
	return l.print(ErrorLevel, strings.TrimSuffix(string(b), "\n"), nil)
}
