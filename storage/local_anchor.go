package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dreitier/shortcal/calendar"
	log "github.com/sirupsen/logrus"
)

// LocalStore keeps the anchor in a file.
type LocalStore struct {
	Path string
}

func (s *LocalStore) Load(_ context.Context) (calendar.DateTime, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ErrNoAnchor
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read anchor %#q: %w", s.Path, err)
	}

	return Decode(data)
}

// Save replaces the anchor file atomically.
func (s *LocalStore) Save(_ context.Context, dt calendar.DateTime) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create anchor directory %#q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create anchor %#q: %w", s.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(Encode(dt)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write anchor %#q: %w", s.Path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write anchor %#q: %w", s.Path, err)
	}
	if err = os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace anchor %#q: %w", s.Path, err)
	}

	log.Debugf("Saved anchor %s to %s", dt, s.Path)
	return nil
}
