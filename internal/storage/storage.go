// Package storage reads and writes the employees file.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/janec/payroll/internal/model"
	"github.com/janec/payroll/internal/payroll"
)

// FileUnavailableError indicates the employees file could not be opened,
// read or written.
type FileUnavailableError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileUnavailableError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileUnavailableError) Unwrap() error {
	return e.Err
}

// Storage provides access to the employees file in a directory.
type Storage struct {
	root   string // working directory
	config *Config
}

// Open returns a Storage for dir, applying .payrollconfig.yaml if present.
// The employees file itself need not exist yet.
func Open(dir string) (*Storage, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	return &Storage{root: dir, config: cfg}, nil
}

// Root returns the working directory.
func (s *Storage) Root() string {
	return s.root
}

// Config returns the effective configuration.
func (s *Storage) Config() *Config {
	return s.config
}

// Path returns the path to the employees file.
func (s *Storage) Path() string {
	if filepath.IsAbs(s.config.DataFile) {
		return s.config.DataFile
	}
	return filepath.Join(s.root, s.config.DataFile)
}

// Exists reports whether the employees file is present.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Load reads and parses the employees file.
// A missing file yields no records and no error.
func (s *Storage) Load() ([]model.Employee, error) {
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &FileUnavailableError{Op: "read", Path: path, Err: err}
	}

	records, err := model.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// LoadInto parses the employees file and then replaces the contents of st.
// st is left untouched if the file cannot be read, parsed, or does not fit.
// It returns the number of records loaded.
func (s *Storage) LoadInto(st *payroll.Store) (int, error) {
	records, err := s.Load()
	if err != nil {
		return 0, err
	}
	if err := st.ReplaceAll(records); err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", s.Path(), err)
	}
	return len(records), nil
}

// Save truncates the employees file and writes records to it.
func (s *Storage) Save(records []model.Employee) error {
	path := s.Path()

	var buf bytes.Buffer
	if err := model.Encode(&buf, records); err != nil {
		return fmt.Errorf("failed to encode employees: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &FileUnavailableError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// SaveStore writes the current contents of st.
func (s *Storage) SaveStore(st *payroll.Store) error {
	return s.Save(st.List())
}
