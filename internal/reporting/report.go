package reporting

import (
	"fmt"
	"os"
)

// Report is a line oriented text report. The underlying file is opened once,
// on the first written line, so a run that produces nothing leaves no file
// behind.
type Report struct {
	path   string
	append bool
	f      *os.File
}

// NewReport returns a report writing to path. With appendMode set, lines are
// added after any existing content; otherwise the file is truncated when it
// is opened.
func NewReport(path string, appendMode bool) *Report {
	return &Report{path: path, append: appendMode}
}

// Path returns the report file path.
func (r *Report) Path() string {
	return r.path
}

// Opened reports whether the report file is currently open.
func (r *Report) Opened() bool {
	return r.f != nil
}

// WriteLine writes line followed by a newline.
func (r *Report) WriteLine(line string) error {
	if r.f == nil {
		flags := os.O_CREATE | os.O_WRONLY
		if r.append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(r.path, flags, 0o644)
		if err != nil {
			return fmt.Errorf("opening report %s: %w", r.path, err)
		}
		r.f = f
	}

	if _, err := fmt.Fprintln(r.f, line); err != nil {
		return fmt.Errorf("writing report %s: %w", r.path, err)
	}
	return nil
}

// Close closes the report file. It is safe to call more than once.
func (r *Report) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}
