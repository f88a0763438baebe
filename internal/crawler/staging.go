package crawler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Stager writes the intermediate artifacts of a run (page, payload, product
// summary) to temporary files so a failed run can be inspected.
type Stager struct {
	dir    string
	prefix string
	keep   bool
	files  []string
}

// NewStager creates dir if needed. An empty dir means the OS temp dir.
func NewStager(dir, prefix string, keep bool) (*Stager, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging dir %s: %w", dir, err)
	}
	return &Stager{dir: dir, prefix: prefix, keep: keep}, nil
}

// Stage writes data to a new file named <prefix><random>-<name> and returns
// its path.
func (s *Stager) Stage(name string, data []byte) (string, error) {
	f, err := os.CreateTemp(s.dir, s.prefix+"*-"+name)
	if err != nil {
		return "", err
	}
	s.files = append(s.files, f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// Files lists staged paths in creation order.
func (s *Stager) Files() []string {
	return append([]string(nil), s.files...)
}

// Cleanup removes every staged file unless the stager keeps artifacts.
func (s *Stager) Cleanup() error {
	if s.keep {
		return nil
	}
	var errs []error
	for _, f := range s.files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	s.files = nil
	return errors.Join(errs...)
}

// Dir is where artifacts are written.
func (s *Stager) Dir() string {
	return filepath.Clean(s.dir)
}
