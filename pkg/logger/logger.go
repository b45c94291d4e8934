package logger

import (
	"fmt"
	"log"
	"os"
)

var std = log.New(os.Stdout, "[gyansetu] ", log.LstdFlags)

// Init resets the plain startup logger. Call before InitStructured.
func Init() {
	std = log.New(os.Stdout, "[gyansetu] ", log.LstdFlags|log.Lmsgprefix)
}

// Info prints a startup/progress message
func Info(format string, args ...interface{}) {
	std.Output(2, fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Warn logs a non-fatal problem through the structured logger
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs an error through the structured logger
func Error(err error, format string, args ...interface{}) {
	zlog.Error().Err(err).Msg(fmt.Sprintf(format, args...))
}
