// Package corelog is a small leveled logging facade: a Debugf / Logf /
// Errorf trio over the standard log package, with an object prefix so
// every message names the subsystem it came from.
package corelog

import (
	"fmt"
	"log"
	"os"
)

// Level controls which calls actually produce output.
type Level int

const (
	// LevelError only prints Errorf calls.
	LevelError Level = iota
	// LevelNotice additionally prints Logf calls.
	LevelNotice
	// LevelDebug prints everything, including Debugf calls.
	LevelDebug
)

var std = log.New(os.Stderr, "", log.LstdFlags)

var level = LevelNotice

// SetLevel adjusts the package-wide verbosity.
func SetLevel(l Level) { level = l }

// Debugf logs o's context plus a formatted message at debug level.
func Debugf(o any, format string, a ...any) {
	if level < LevelDebug {
		return
	}
	emit("DEBUG", o, format, a...)
}

// Logf logs o's context plus a formatted message at notice level.
func Logf(o any, format string, a ...any) {
	if level < LevelNotice {
		return
	}
	emit("NOTICE", o, format, a...)
}

// Errorf logs o's context plus a formatted message at error level.
func Errorf(o any, format string, a ...any) {
	emit("ERROR", o, format, a...)
}

func emit(tag string, o any, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	std.Printf("%-7s %-24v %s", tag, describe(o), msg)
}

func describe(o any) any {
	if o == nil {
		return "-"
	}
	return o
}
