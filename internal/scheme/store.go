package scheme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/ferret/internal/palette"
	"github.com/jmylchreest/ferret/internal/security"
)

// Selection identifies the active scheme.
type Selection struct {
	Name    string `json:"name" validate:"required,pathcomponent"`
	Flavour string `json:"flavour" validate:"required,pathcomponent"`
	Mode    string `json:"mode" validate:"required,pathcomponent"`
	Variant string `json:"variant"`
	Default bool   `json:"default"`
}

// DefaultSelection is used on first run and whenever the persisted record
// cannot be trusted.
var DefaultSelection = Selection{
	Name:    "catppuccin",
	Flavour: "mocha",
	Mode:    "dark",
	Variant: "tonalspot",
	Default: true,
}

// IsDark reports whether the selection is a dark mode.
func (s Selection) IsDark() bool {
	return s.Mode == "dark"
}

// Record is the persisted form of the active scheme.
type Record struct {
	Selection
	Colours palette.Harmonized `json:"colours" validate:"dive,keys,required,endkeys,hex6"`
}

// Store persists a Record as JSON at a single path.
type Store struct {
	path string
}

// NewStore creates a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the record location.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the record.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read scheme record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse scheme record: %w", err)
	}
	if err := security.ValidateStruct(rec); err != nil {
		return Record{}, fmt.Errorf("invalid scheme record: %w", err)
	}
	return rec, nil
}

// Save writes rec atomically: a reader sees either the old record or the
// new one, never a partial write.
func (s *Store) Save(rec Record) error {
	if rec.Colours == nil {
		rec.Colours = palette.Harmonized{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scheme record: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scheme record: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".scheme-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
