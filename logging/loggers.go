package logging

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// const
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)
const (
	//PANIC log level
	PANIC uint32 = iota
	//FATAL has list msg
	FATAL
	//ERROR has list msg
	ERROR
	//WARN only log
	WARN
	//INFO only log
	INFO
	//DEBUG only log
	DEBUG
	//TRACE only log
	TRACE
)

const defaultFilename = "sha2sum"

// LogFormat is to log format
type LogFormat = map[string]interface{}

// Logger wraps a logrus logger.
type Logger struct {
	*logrus.Logger
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

var (
	mu sync.RWMutex
	// clog prints to the console and the log file, vlog to the log file only.
	clog *Logger
	vlog *Logger
)

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch level {
	case PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel:
		return true
	}
	return false
}

func convertLevel(level string) logrus.Level {
	switch level {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	case TraceLevel:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// toLogrusLevel maps the PANIC..TRACE constants onto logrus levels,
// unknown values are logged as errors.
func toLogrusLevel(level uint32) logrus.Level {
	switch level {
	case PANIC:
		return logrus.PanicLevel
	case FATAL:
		return logrus.FatalLevel
	case ERROR:
		return logrus.ErrorLevel
	case WARN:
		return logrus.WarnLevel
	case INFO:
		return logrus.InfoLevel
	case DEBUG:
		return logrus.DebugLevel
	case TRACE:
		return logrus.TraceLevel
	default:
		return logrus.ErrorLevel
	}
}

func newConfiguredLogger(out io.Writer, level string, fileHooker logrus.Hook) *Logger {
	l := NewLogger()
	LoadFunctionHooker(l)
	if fileHooker != nil {
		l.Hooks.Add(fileHooker)
	}
	l.Out = out
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.SetLevel(convertLevel(level))
	return l
}

// Init loggers. An empty path disables the log file, in which case VPrint
// output goes to stderr together with CPrint output.
func Init(path, filename string, level string, age uint32, disableCPrint bool) {
	var fileHooker logrus.Hook
	fileOut := io.Writer(os.Stderr)
	if path != "" {
		fileHooker = NewFileRotateHooker(path, filename, age, nil)
		fileOut = io.Discard
	}

	v := newConfiguredLogger(fileOut, level, fileHooker)
	c := v
	if !disableCPrint && fileHooker != nil {
		c = newConfiguredLogger(os.Stderr, level, fileHooker)
	}

	mu.Lock()
	vlog, clog = v, c
	mu.Unlock()

	v.WithFields(logrus.Fields{
		"path":  path,
		"level": level,
	}).Debug("Logger Configuration.")
}

func loggers() (*Logger, *Logger) {
	mu.RLock()
	c, v := clog, vlog
	mu.RUnlock()
	if c == nil || v == nil {
		Init("", defaultFilename, InfoLevel, 0, false)
		return loggers()
	}
	return c, v
}

// IsLevelEnabled reports whether a message at level would be written.
// It is false until Init has run, so hot paths never trigger the default setup.
func IsLevelEnabled(level uint32) bool {
	mu.RLock()
	v := vlog
	mu.RUnlock()
	if v == nil {
		return false
	}
	return v.IsLevelEnabled(toLogrusLevel(level))
}

// GetGID return gid
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// CPrint into stderr + log
func CPrint(level uint32, msg string, formats ...LogFormat) {
	c, _ := loggers()
	emit(c, level, msg, formats...)
}

// VPrint into log
func VPrint(level uint32, msg string, formats ...LogFormat) {
	_, v := loggers()
	emit(v, level, msg, formats...)
}

func emit(l *Logger, level uint32, msg string, formats ...LogFormat) {
	lvl := toLogrusLevel(level)
	if !l.IsLevelEnabled(lvl) {
		return
	}
	entry := l.WithFields(mergeLogFormats(formats...))
	switch lvl {
	case logrus.PanicLevel:
		entry.Panic(msg)
	case logrus.FatalLevel:
		entry.Fatal(msg)
	default:
		entry.Log(lvl, msg)
	}
}

// mergeLogFormats merges LogFormats.
// Same key would be covered by later-presented values.
func mergeLogFormats(formats ...LogFormat) LogFormat {
	format := LogFormat{}
	for _, data := range formats {
		for k, v := range data {
			format[k] = v
		}
	}
	format["tid"] = GetGID()
	return format
}
