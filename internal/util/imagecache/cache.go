// Package imagecache caches per-image extraction results keyed by the
// SHA-256 of the image content, so a wallpaper is only analysed once.
package imagecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/ferret/internal/colour"
)

// Entry is what is remembered about an image.
type Entry struct {
	Seed          colour.Color `json:"seed"`
	MeanTone      float64      `json:"mean_tone"`
	Colourfulness float64      `json:"colourfulness"`
}

// Cache stores entries as <dir>/<hash>.json.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir. The directory is created on first Put.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 -- wallpaper path chosen by the user
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to hash image: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the entry for hash. A missing or unreadable entry is a miss.
func (c *Cache) Get(hash string) (Entry, bool) {
	data, err := os.ReadFile(c.path(hash))
	if err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Put stores the entry for hash, replacing any previous one.
func (c *Cache) Put(hash string, e Entry) error {
	if len(hash) != sha256.Size*2 {
		return fmt.Errorf("invalid cache key %q", hash)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".seed-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(hash)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (c *Cache) path(hash string) string {
	return filepath.Join(c.dir, hash+".json")
}
