package deskbuddy

import (
	"fmt"
)

type Logger interface {
	Debug(msg string)
	Debugf(format string, v ...any)
	Info(msg string)
	Infof(format string, v ...any)
}

// printLogger is a bare-bones logger that outputs to whatever println is hooked up to (the serial console on a
// microcontroller, stderr elsewhere). Debug output is dropped unless debug is set.
type printLogger struct {
	debug bool
}

// NewPrintLogger returns the default logger.
func NewPrintLogger(debug bool) Logger {
	return printLogger{debug: debug}
}

func (l printLogger) Debug(msg string) {
	if l.debug {
		println(msg)
	}
}

func (l printLogger) Debugf(format string, v ...any) {
	if l.debug {
		println(fmt.Sprintf(format, v...))
	}
}

func (printLogger) Info(msg string) {
	println(msg)
}

func (printLogger) Infof(format string, v ...any) {
	println(fmt.Sprintf(format, v...))
}
