// Package store persists the set of identity profiles and the active
// profile pointer as TOML at ~/.config/gitp/config.toml.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/gitp-cli/gitp/internal/profile"
)

// ErrProfileNotFound is returned when an operation names a profile that
// does not exist in the store.
var ErrProfileNotFound = errors.New("profile not found")

// ErrProfileExists is returned when an insert or rename would overwrite
// an existing profile.
var ErrProfileExists = errors.New("profile already exists")

// Store holds all profiles keyed by name plus the name of the currently
// active profile. The active pointer is kept consistent by Remove and
// Rename, not re-checked on every mutation.
type Store struct {
	Profiles      map[string]profile.Profile `toml:"profiles"`
	ActiveProfile string                     `toml:"current_profile,omitempty"`
}

// New returns an empty store.
func New() *Store {
	return &Store{Profiles: make(map[string]profile.Profile)}
}

// Path returns the location of the profile store file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitp", "config.toml"), nil
}

// Load reads the store from the default path. A missing or empty file
// yields an empty store; only malformed data is an error.
func Load() (*Store, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the store from the given path.
func LoadFrom(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read profile store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	var s Store
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse profile store %s: %w", path, err)
	}
	if s.Profiles == nil {
		s.Profiles = make(map[string]profile.Profile)
	}
	return &s, nil
}

// Save writes the store to the default path.
func (s *Store) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return s.SaveTo(path)
}

// SaveTo writes the store to the given path. The write goes to a temp
// file first and is renamed into place, so a failed write never corrupts
// the previous state.
func (s *Store) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode profile store: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write profile store: %w", err)
	}
	return os.Rename(tempPath, path)
}

// Get returns the named profile.
func (s *Store) Get(name string) (profile.Profile, error) {
	p, ok := s.Profiles[name]
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p, nil
}

// Insert adds a new profile. It fails if a profile with the same name
// exists unless overwrite is set.
func (s *Store) Insert(p profile.Profile, overwrite bool) error {
	if _, ok := s.Profiles[p.Name]; ok && !overwrite {
		return fmt.Errorf("%w: %q", ErrProfileExists, p.Name)
	}
	s.Profiles[p.Name] = p
	return nil
}

// Update replaces an existing profile.
func (s *Store) Update(p profile.Profile) error {
	if _, ok := s.Profiles[p.Name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, p.Name)
	}
	s.Profiles[p.Name] = p
	return nil
}

// Remove deletes a profile. If it was the active profile, the active
// pointer is cleared.
func (s *Store) Remove(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	delete(s.Profiles, name)
	if s.ActiveProfile == name {
		s.ActiveProfile = ""
	}
	return nil
}

// Rename moves a profile to a new name, updating the embedded name and,
// if needed, the active pointer.
func (s *Store) Rename(oldName, newName string) error {
	p, ok := s.Profiles[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, oldName)
	}
	if _, ok := s.Profiles[newName]; ok {
		return fmt.Errorf("%w: %q", ErrProfileExists, newName)
	}
	delete(s.Profiles, oldName)
	p.Name = newName
	s.Profiles[newName] = p
	if s.ActiveProfile == oldName {
		s.ActiveProfile = newName
	}
	return nil
}

// SetActive marks the named profile as active.
func (s *Store) SetActive(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	s.ActiveProfile = name
	return nil
}

// Names returns all profile names sorted alphabetically.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
