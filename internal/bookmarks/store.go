// Package bookmarks keeps named console locations in a YAML file.
package bookmarks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the bookmark file inside the store directory.
const FileName = "bookmarks.yaml"

// ErrNotFound is returned when no bookmark has the requested name.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is a saved location.
type Bookmark struct {
	Name     string    `yaml:"name"`
	Location string    `yaml:"location"`
	SavedAt  time.Time `yaml:"saved_at"`
}

type file struct {
	Bookmarks []Bookmark `yaml:"bookmarks"`
}

// Store reads and writes the bookmark file. Every call goes to disk so
// separate Store values over the same directory agree.
type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bookmark dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Path returns the bookmark file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Save stores location under name, overwriting any bookmark of the same name.
func (s *Store) Save(name, location string) (Bookmark, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Bookmark{}, errors.New("bookmark name is required")
	}
	f, err := s.read()
	if err != nil {
		return Bookmark{}, err
	}
	b := Bookmark{Name: name, Location: location, SavedAt: s.now().UTC()}
	kept := f.Bookmarks[:0]
	for _, e := range f.Bookmarks {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	f.Bookmarks = append(kept, b)
	if err := s.write(f); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Get returns the bookmark called name.
func (s *Store) Get(name string) (Bookmark, error) {
	f, err := s.read()
	if err != nil {
		return Bookmark{}, err
	}
	for _, b := range f.Bookmarks {
		if b.Name == name {
			return b, nil
		}
	}
	return Bookmark{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// List returns all bookmarks, most recently saved first.
func (s *Store) List() ([]Bookmark, error) {
	f, err := s.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(f.Bookmarks, func(i, j int) bool {
		return f.Bookmarks[i].SavedAt.After(f.Bookmarks[j].SavedAt)
	})
	return f.Bookmarks, nil
}

// Delete removes the bookmark called name.
func (s *Store) Delete(name string) error {
	f, err := s.read()
	if err != nil {
		return err
	}
	kept := f.Bookmarks[:0]
	for _, b := range f.Bookmarks {
		if b.Name != name {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(f.Bookmarks) {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	f.Bookmarks = kept
	return s.write(f)
}

func (s *Store) read() (file, error) {
	var f file
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, fmt.Errorf("read bookmarks: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse %s: %w", s.Path(), err)
	}
	return f, nil
}

// write replaces the file through a temp file so a crash never leaves it
// half written.
func (s *Store) write(f file) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write bookmarks: %w", err)
	}
	return nil
}
