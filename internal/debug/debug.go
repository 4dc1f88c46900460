// Package debug is filmpicker's diagnostic log. It stays silent unless
// --debug is given; then every line lands in ~/.filmpicker/debug.log, which
// starts empty on each launch.
package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	FileName = "debug.log"
	DirName  = ".filmpicker"
)

// sink is the open log file and the logger writing to it.
type sink struct {
	out  *log.Logger
	file *os.File
}

var (
	mu     sync.RWMutex
	active *sink

	// pathFunc is replaced in tests.
	pathFunc = defaultPath
)

// Init opens the log when enable is true. Any log opened by an earlier call
// is closed first.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if !enable {
		return nil
	}

	path, err := pathFunc()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}
	//nolint:gosec // G301: user config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // G304: log path is derived from the user home
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	active = &sink{
		out:  log.New(f, "", log.Ltime|log.Lmicroseconds),
		file: f,
	}
	active.out.Printf("filmpicker session %s", time.Now().Format(time.RFC3339))
	return nil
}

// Close flushes and closes the log. Later calls to Logf are dropped.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if active == nil {
		return
	}
	_ = active.file.Close()
	active = nil
}

// Logf appends one line when the log is open.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if active == nil {
		return
	}
	active.out.Printf(format, v...)
}

// Enabled reports whether a log file is open.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return active != nil
}

// Path returns where Init writes the log.
func Path() (string, error) {
	return pathFunc()
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

// Scope prefixes lines with a component name, e.g. "[picker]".
type Scope string

func (s Scope) Logf(format string, v ...any) {
	if !Enabled() {
		return
	}
	Logf("["+string(s)+"] "+format, v...)
}

// Timed starts a clock for op. The returned func logs how long op took and
// whether it failed.
func (s Scope) Timed(op string) func(err error) {
	if !Enabled() {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			s.Logf("%s failed after %s: %v", op, elapsed, err)
			return
		}
		s.Logf("%s took %s", op, elapsed)
	}
}
