// Package store persists the sprite set to a YAML file under the user
// configuration directory. A missing or malformed file is never fatal: the
// daemon starts with an empty set and logs what happened.
package store

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chibidesk/chibi/internal/model"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileName is the saved-configuration file inside the config directory.
const FileName = "sprites.yaml"

// DefaultDir returns the chibi config directory, e.g.
// ~/.config/chibi on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "chibi"), nil
}

// Store reads and writes saved sprite configurations.
type Store struct {
	dir string
	log *zap.Logger

	// mu guards lastSaved, the fingerprint of the most recent Save. The
	// watcher uses it to tell our own writes apart from external edits.
	mu        sync.Mutex
	lastSaved [sha256.Size]byte
	saved     bool
}

// New creates a Store rooted at dir. An empty dir selects DefaultDir.
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return &Store{dir: dir, log: log}, nil
}

// Path returns the full path of the saved-configuration file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Save writes the snapshot atomically (temp file + rename), creating the
// config directory on demand.
func (s *Store) Save(snap model.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	s.mu.Lock()
	s.lastSaved = sha256.Sum256(data)
	s.saved = true
	s.mu.Unlock()

	s.log.Info("saved configuration",
		zap.String("path", s.Path()), zap.Int("sprites", len(snap.Sprites)))
	return nil
}

// wroteLast reports whether the file on disk still holds exactly what the
// most recent Save wrote.
func (s *Store) wroteLast() bool {
	s.mu.Lock()
	sum, ok := s.lastSaved, s.saved
	s.mu.Unlock()
	if !ok {
		return false
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return false
	}
	return sha256.Sum256(data) == sum
}

// Load reads the saved configuration. Missing file → empty snapshot, nil
// error. Malformed file → empty snapshot, nil error, logged. Individual
// invalid entries are dropped; out-of-range values are normalized.
func (s *Store) Load() (model.Snapshot, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return model.Snapshot{}, nil
		}
		return model.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap model.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		s.log.Warn("ignoring malformed configuration file",
			zap.String("path", s.Path()), zap.Error(err))
		return model.Snapshot{}, nil
	}

	kept := snap.Sprites[:0]
	for _, sp := range snap.Sprites {
		if err := sp.Validate(); err != nil {
			s.log.Warn("dropping invalid saved sprite", zap.Error(err))
			continue
		}
		sp.Normalize()
		kept = append(kept, sp)
	}
	snap.Sprites = kept
	return snap, nil
}
