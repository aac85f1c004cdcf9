package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
)

// logHandler writes one plain line per entry, prefixed with the time elapsed
// since the run started. Plain text keeps the transcript free of escape codes.
type logHandler struct {
	io.Writer
	start time.Time
}

func (h *logHandler) HandleLog(e *log.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%8.3fs] <%s> %s", time.Since(h.start).Seconds(), e.Level, e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(h.Writer, b.String())
	return err
}

func newLogger(w io.Writer, start time.Time, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return &log.Logger{Level: level, Handler: &logHandler{Writer: w, start: start}}
}
