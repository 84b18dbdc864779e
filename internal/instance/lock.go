// Package instance keeps a single manager running per user.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFileName = "gridwm.lock"
	pidFileName  = "gridwm.pid"
)

// ErrAlreadyRunning is returned by Lock when another manager holds the lock.
var ErrAlreadyRunning = errors.New("another gridwm instance is already running")

// Lock acquires an exclusive file lock in dir and records the current pid.
// The caller must defer Cleanup.
func Lock(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}

	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(filepath.Join(dir, pidFileName), []byte(pid), 0600); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("failed to write pid file: %w", err)
	}
	return fl, nil
}

// Cleanup removes the pid file and releases the lock.
func Cleanup(dir string, fl *flock.Flock) {
	_ = os.Remove(filepath.Join(dir, pidFileName))
	if fl != nil {
		_ = fl.Unlock()
	}
}

// Running reports whether a manager currently holds the lock in dir, and
// its pid when the pid file is readable.
func Running(dir string) (int, bool, error) {
	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to check lock: %w", err)
	}
	if locked {
		_ = fl.Unlock()
		return 0, false, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, pidFileName))
	if err != nil {
		return 0, true, nil
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, true, nil
	}
	return pid, true, nil
}
