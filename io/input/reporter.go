// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"fmt"
	"log"
)

// Reporter receives the warnings and errors detected while
// dispatching. Dispatch continues after reporting.
type Reporter interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LogReporter is a Reporter writing to a log.Logger.
type LogReporter struct {
	// Logger is the destination. A nil Logger writes to the
	// standard logger.
	Logger *log.Logger
}

func (r LogReporter) Warnf(format string, args ...interface{}) {
	r.output("WARN: " + fmt.Sprintf(format, args...))
}

func (r LogReporter) Errorf(format string, args ...interface{}) {
	r.output("ERROR: " + fmt.Sprintf(format, args...))
}

func (r LogReporter) output(s string) {
	if r.Logger == nil {
		log.Output(3, s)
		return
	}
	r.Logger.Output(3, s)
}
