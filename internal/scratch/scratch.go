// Package scratch manages per-request temporary files for the mixing
// pipeline. Names combine a nanosecond timestamp with a random token so
// concurrent requests never collide, and removal is idempotent so cleanup
// can run from every exit path without error.
package scratch

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/versemix/versemix/internal/randpool"
)

// Purpose tags a scratch file with what it holds.
type Purpose string

const (
	PurposeNarration Purpose = "narration"
	PurposeMix       Purpose = "mix"
)

type Manager struct {
	dir string
}

// NewManager creates the scratch directory if needed. Creation is
// idempotent: an existing directory is not an error.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("scratch: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scratch: create dir %s: %w", dir, err)
	}
	return &Manager{dir: dir}, nil
}

func (m *Manager) Dir() string {
	return m.dir
}

// NewPath returns a fresh collision-resistant path for the given purpose.
// The file is not created.
func (m *Manager) NewPath(purpose Purpose, ext string) string {
	var token [8]byte
	randpool.Read(token[:])
	name := fmt.Sprintf("%d-%s-%s%s", time.Now().UnixNano(), hex.EncodeToString(token[:]), purpose, ext)
	return filepath.Join(m.dir, name)
}

// WriteFrom copies r into a new scratch file for the given purpose and
// returns its path. The caller owns the file and must Remove it.
func (m *Manager) WriteFrom(purpose Purpose, ext string, r io.Reader) (string, error) {
	path := m.NewPath(purpose, ext)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("scratch: create %s: %w", path, err)
	}

	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		m.Remove(path)
		return "", fmt.Errorf("scratch: write %s: %w", path, err)
	}

	return path, nil
}

// Remove deletes a scratch path. Absence is not an error, so cleanup may
// run twice on the same path; any other failure is logged, never escalated.
func (m *Manager) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("scratch: remove %s: %v", path, err)
	}
}

// RemoveAll is the catch-all cleanup pass: best-effort removal of every
// path, in order.
func (m *Manager) RemoveAll(paths ...string) {
	for _, p := range paths {
		m.Remove(p)
	}
}
