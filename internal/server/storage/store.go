package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"notable/pkg/models"
)

const (
	usersFile = "users.json"
	otpsFile  = "otps.json"
	notesFile = "notes.json"
)

// Store persists each collection as a single pretty-printed JSON array file.
// Every write rewrites the whole file; the mutex keeps in-process writers from
// interleaving but there is no cross-process guarantee (last writer wins).
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	s := &Store{dir: dir}
	for _, name := range []string{usersFile, otpsFile, notesFile} {
		if err := s.ensureFile(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) ensureFile(name string) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte("[]"), 0o644)
}

func (s *Store) load(name string, v interface{}) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) save(name string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *Store) loadUsers() ([]models.User, error) {
	var users []models.User
	err := s.load(usersFile, &users)
	return users, err
}

func (s *Store) saveUsers(users []models.User) error {
	return s.save(usersFile, users)
}

func (s *Store) loadOtps() ([]models.OtpRecord, error) {
	var otps []models.OtpRecord
	err := s.load(otpsFile, &otps)
	return otps, err
}

func (s *Store) saveOtps(otps []models.OtpRecord) error {
	return s.save(otpsFile, otps)
}

func (s *Store) loadNotes() ([]models.Note, error) {
	var notes []models.Note
	err := s.load(notesFile, &notes)
	return notes, err
}

func (s *Store) saveNotes(notes []models.Note) error {
	return s.save(notesFile, notes)
}
