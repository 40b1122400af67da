package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// ANSI color codes for console output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelTags = map[Level]string{
	DEBUG: "[DEBUG] ",
	INFO:  "[INFO]  ",
	WARN:  "[WARN]  ",
	ERROR: "[ERROR] ",
}

var levelColors = map[Level]string{
	DEBUG: colorGray,
	INFO:  colorReset,
	WARN:  colorYellow,
	ERROR: colorRed,
}

type sink struct {
	console  map[Level]*log.Logger
	file     map[Level]*log.Logger
	logFile  *os.File
	minLevel Level
}

var (
	mu  sync.Mutex
	std = newSink("", true)
)

func newSink(filename string, console bool) *sink {
	s := &sink{minLevel: DEBUG}
	flags := log.Ldate | log.Ltime | log.Lshortfile
	if console {
		s.console = make(map[Level]*log.Logger)
		for lvl, tag := range levelTags {
			s.console[lvl] = log.New(os.Stdout, levelColors[lvl]+tag+colorReset, flags)
		}
	}
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			s.logFile = f
			s.file = make(map[Level]*log.Logger)
			for lvl, tag := range levelTags {
				s.file[lvl] = log.New(f, tag, flags)
			}
		}
	}
	return s
}

// Init reconfigures the default logger with an optional log file. Console
// output stays enabled either way.
func Init(filename string) {
	mu.Lock()
	defer mu.Unlock()
	if std.logFile != nil {
		std.logFile.Close()
	}
	std = newSink(filename, true)
}

// SetLevel sets the minimum level; messages below it are dropped.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	std.minLevel = level
}

// Close closes the log file if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if std.logFile != nil {
		std.logFile.Close()
		std.logFile = nil
		std.file = nil
	}
}

func output(level Level, msg string) {
	mu.Lock()
	s := std
	mu.Unlock()
	if level < s.minLevel {
		return
	}
	if l, ok := s.console[level]; ok {
		l.Output(3, msg)
	}
	if l, ok := s.file[level]; ok {
		l.Output(3, msg)
	}
}

func Debug(v ...interface{})                 { output(DEBUG, fmt.Sprint(v...)) }
func Debugf(format string, v ...interface{}) { output(DEBUG, fmt.Sprintf(format, v...)) }
func Info(v ...interface{})                  { output(INFO, fmt.Sprint(v...)) }
func Infof(format string, v ...interface{})  { output(INFO, fmt.Sprintf(format, v...)) }
func Warn(v ...interface{})                  { output(WARN, fmt.Sprint(v...)) }
func Warnf(format string, v ...interface{})  { output(WARN, fmt.Sprintf(format, v...)) }
func Error(v ...interface{})                 { output(ERROR, fmt.Sprint(v...)) }
func Errorf(format string, v ...interface{}) { output(ERROR, fmt.Sprintf(format, v...)) }

// Fatalf logs an error message and exits the program.
func Fatalf(format string, v ...interface{}) {
	output(ERROR, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatal logs an error message and exits the program.
func Fatal(v ...interface{}) {
	output(ERROR, fmt.Sprint(v...))
	os.Exit(1)
}
