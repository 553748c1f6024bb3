package log

import (
	"io"
	"io/ioutil"
	"log"
	"os"
)

var (
	Trace   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

func init() {
	InitLog()
}

// InitLog sets up the package loggers. Trace output is only
// enabled when RMSCRIBBLE_TRACE is set to 1 or 2; 2 adds file:line.
func InitLog() {
	var trace io.Writer = ioutil.Discard
	traceFlags := log.Ldate | log.Ltime

	switch os.Getenv("RMSCRIBBLE_TRACE") {
	case "1":
		trace = os.Stdout
	case "2":
		trace = os.Stdout
		traceFlags |= log.Lshortfile
	}

	Setup(trace, os.Stdout, os.Stderr, os.Stderr)
	Trace.SetFlags(traceFlags)
}

// Setup points every logger at the given writers. Tests use it to
// capture output.
func Setup(trace, info, warning, errw io.Writer) {
	Trace = log.New(trace, "TRACE: ", log.Ldate|log.Ltime)
	Info = log.New(info, "", 0)
	Warning = log.New(warning, "WARNING: ", 0)
	Error = log.New(errw, "ERROR: ", 0)
}
