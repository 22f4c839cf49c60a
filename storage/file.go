package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/qianbao"
	log "github.com/sirupsen/logrus"
)

// File is a slot where each key is a JSON file in a folder.
//
// Files are human-readable and can be versioned alongside other personal data.
type File struct {
	dir string
}

// NewFile returns a slot storing keys in dir, creating dir if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create storage folder %q: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file holding key.
func (s *File) Path(key string) string { return filepath.Join(s.dir, key+".json") }

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

func (s *File) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, qianbao.ErrSlotEmpty
	}
	return data, err
}

// Set replaces the file atomically: readers see either the old or the new content.
func (s *File) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return err
	}
	log.WithField("file", s.Path(key)).Debug("slot written")
	return nil
}

func (s *File) Close() error { return nil }
