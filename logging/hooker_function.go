package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxCallChain bounds the frames recorded for error level entries.
const maxCallChain = 3

type functionHooker struct{}

// callerFrames returns the frames above the logrus and logging machinery.
func callerFrames(max int) []runtime.Frame {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	result := make([]runtime.Frame, 0, max)
	for len(result) < max {
		frame, more := frames.Next()
		if !isLoggingFrame(frame.Function) {
			result = append(result, frame)
		}
		if !more {
			break
		}
	}
	return result
}

func isLoggingFrame(function string) bool {
	return strings.Contains(function, "github.com/sirupsen/logrus.") ||
		strings.Contains(function, "sha2sum.org/sha2sum/logging.")
}

func shortFuncName(fname string) string {
	if index := strings.LastIndex(fname, "/"); index >= 0 {
		return fname[index+1:]
	}
	return fname
}

func (h *functionHooker) fire(entry *logrus.Entry) {
	frames := callerFrames(1)
	if len(frames) == 0 {
		return
	}
	f := frames[0]
	entry.Data["func"] = shortFuncName(f.Function)
	entry.Data["line"] = f.Line
	entry.Data["file"] = filepath.Base(f.File)
}

func (h *functionHooker) fires(entry *logrus.Entry) {
	for i, f := range callerFrames(maxCallChain) {
		entry.Data["f"+strconv.Itoa(i)] = fmt.Sprintf("{%s,%s,%d}", filepath.Base(f.File), shortFuncName(f.Function), f.Line)
	}
}

// Fire annotates entries with their caller, error and above get the call chain.
func (h *functionHooker) Fire(entry *logrus.Entry) error {
	if entry.Level <= logrus.ErrorLevel {
		h.fires(entry)
	} else {
		h.fire(entry)
	}
	return nil
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

// LoadFunctionHooker loads a function hooker to the logger
func LoadFunctionHooker(logger *Logger) {
	logger.Hooks.Add(&functionHooker{})
}
