// Package logger provides the leveled, structured logger used by all
// scriptdex commands. Output goes to stderr so the manifest artifact and
// machine-readable command output stay clean on stdout.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a flag value to a Level, defaulting to InfoLevel for
// anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

var levelColors = map[string]string{
	"TRACE": "37",
	"DEBUG": "36",
	"INFO":  "32",
	"WARN":  "33",
	"ERROR": "31",
}

// Config holds the logger configuration.
type Config struct {
	Level    Level
	UseColor bool
	JSON     bool
}

// Logger is a leveled logger writing one entry per line.
type Logger struct {
	config Config
	out    *log.Logger
}

var defaultLogger *Logger

// Initialize sets up the package-level default logger.
func Initialize(config Config) {
	defaultLogger = New(config)
}

// New returns a logger writing to stderr with the given configuration.
func New(config Config) *Logger {
	return &Logger{config: config, out: log.New(os.Stderr, "", 0)}
}

// Field is one structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Err(err error) Field { return Field{Key: "error", Value: err.Error()} }

type entry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Log writes a message at the given level.
func (l *Logger) Log(level Level, message string, fields ...Field) {
	if level < l.config.Level {
		return
	}
	e := entry{Time: time.Now(), Level: level.String(), Message: message}
	if len(fields) > 0 {
		e.Fields = make(map[string]interface{}, len(fields))
		for _, f := range fields {
			e.Fields[f.Key] = f.Value
		}
	}
	if l.config.JSON {
		data, _ := json.Marshal(e)
		l.out.Print(string(data))
		return
	}
	l.out.Print(l.pretty(e))
}

func (l *Logger) pretty(e entry) string {
	var b strings.Builder
	b.WriteString(e.Time.Format("2006-01-02 15:04:05"))
	level := e.Level
	if l.config.UseColor {
		if code, ok := levelColors[e.Level]; ok {
			level = "\033[" + code + "m" + e.Level + "\033[0m"
		}
	}
	fmt.Fprintf(&b, " [%s] scriptdex: %s", level, e.Message)
	if len(e.Fields) > 0 {
		b.WriteString(" {")
		first := true
		for k, v := range e.Fields {
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, v)
			first = false
		}
		b.WriteString("}")
	}
	return b.String()
}

// SetOutput redirects the default logger, mainly for tests.
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.out.SetOutput(w)
	}
}

// Package-level helpers writing through the default logger. Info falls
// back to bare stderr when Initialize has not run yet.

func Trace(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(TraceLevel, message, fields...)
	}
}

func Debug(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(DebugLevel, message, fields...)
	}
}

func Info(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(InfoLevel, message, fields...)
	} else {
		fmt.Fprintf(os.Stderr, "[INFO] scriptdex: %s\n", message)
	}
}

func Warn(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(WarnLevel, message, fields...)
	}
}

func Error(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(ErrorLevel, message, fields...)
	}
}
