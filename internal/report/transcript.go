// Package report renders the run's artifacts: the console transcript and the
// four PNG charts.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Transcript is a fan-out sink: every Write goes to the transcript file and
// to the console. After Close, writes reach the console only.
type Transcript struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	buf     *bufio.Writer
	path    string
}

// OpenTranscript creates (or truncates) path and returns a sink writing to
// both console and the file.
func OpenTranscript(path string, console io.Writer) (*Transcript, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	return &Transcript{console: console, file: f, buf: bufio.NewWriter(f), path: path}, nil
}

// Path returns the transcript file location.
func (t *Transcript) Path() string { return t.path }

// Console returns the underlying console writer.
func (t *Transcript) Console() io.Writer { return t.console }

// Write sends p to the transcript file and then to the console. Both sinks
// are always attempted; their errors are returned together.
func (t *Transcript) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ferr error
	if t.buf != nil {
		if _, err := t.buf.Write(p); err != nil {
			ferr = fmt.Errorf("write transcript: %w", err)
		}
	}
	n, cerr := t.console.Write(p)
	if cerr != nil {
		cerr = fmt.Errorf("write console: %w", cerr)
	}
	if err := errors.Join(ferr, cerr); err != nil {
		return n, err
	}
	return len(p), nil
}

// Flush pushes buffered transcript bytes to disk.
func (t *Transcript) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buf == nil {
		return nil
	}
	return t.buf.Flush()
}

// Close flushes and closes the file and detaches it from the sink. It is safe
// to call more than once.
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buf == nil {
		return nil
	}
	ferr := t.buf.Flush()
	cerr := t.file.Close()
	t.buf = nil
	t.file = nil
	return errors.Join(ferr, cerr)
}
