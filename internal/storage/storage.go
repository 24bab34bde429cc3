package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/monoid-roster/internal/roster"
)

// StateFile is the name of the session file inside the data directory.
const StateFile = "savedApplicationState.json"

// ErrNoSession is returned when no session has been saved yet.
var ErrNoSession = errors.New("no saved session")

// Session is a saved working state.
type Session struct {
	Table   *roster.Table `json:"table"`
	Source  string        `json:"source"`
	SavedAt string        `json:"saved_at"`
}

// Storage handles persistence of the session
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path returns the location of the session file.
func (s *Storage) Path() string {
	return filepath.Join(s.dataDir, StateFile)
}

// Load reads the saved session. It returns ErrNoSession if none exists.
func (s *Storage) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}

	if session.Table == nil {
		return nil, fmt.Errorf("parsing session: missing table")
	}
	if session.Table.Rows == nil {
		session.Table.Rows = []roster.Row{}
	}

	return &session, nil
}

// Save writes the session to disk, replacing any previous one.
func (s *Storage) Save(session *Session) error {
	session.SavedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	return nil
}

// SaveTable stores t as the current session.
func (s *Storage) SaveTable(t *roster.Table, source string) error {
	return s.Save(&Session{
		Table:  t,
		Source: source,
	})
}

// Delete removes the saved session. A missing session is not an error.
func (s *Storage) Delete() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
