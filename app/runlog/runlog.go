// Package runlog appends one timestamped human-readable line per
// digest event to a local file, so an external cron invocation can be
// audited after the fact. Write failures are deliberately ignored: the
// run log must never be the reason a scheduled job fails.
package runlog

import (
	"fmt"
	"os"
	"time"
)

type Logger struct {
	path string
	now  func() time.Time
}

func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// SetNowFunc overrides the timestamp source, used by tests
func (l *Logger) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		l.now = time.Now
		return
	}
	l.now = fn
}

// Printf appends a formatted line to the run log
func (l *Logger) Printf(format string, args ...any) {
	if l.path == "" {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", l.now().Format("2006-01-02 15:04:05"),
		fmt.Sprintf(format, args...))
	_, _ = f.WriteString(line)
}
