package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/gridwm"
	// DefaultStatusFile is the status file name
	DefaultStatusFile = "status.json"
)

// GetStatusPath returns the default status file path
func GetStatusPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStatusFile)
}

// Load reads a status file. A missing file yields an empty status, which is
// what readers see before the manager has started.
func Load(path string) (*Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStatus(), nil
		}
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var s Status
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse status file: %w", err)
	}
	if s.Version > StatusVersion {
		return nil, fmt.Errorf("status file version %d is newer than supported version %d", s.Version, StatusVersion)
	}
	if s.Displays == nil {
		s.Displays = make([]DisplayStatus, 0)
	}
	return &s, nil
}

// SaveTo writes s to path atomically
func (s *Status) SaveTo(path string) error {
	s.Version = StatusVersion
	s.UpdatedAt = time.Now()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	// Readers poll this file, so they must never see a partial write.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename status file: %w", err)
	}
	return nil
}

// Remove deletes the status file so readers stop showing a stale layout
// after the manager exits.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove status file: %w", err)
	}
	return nil
}
