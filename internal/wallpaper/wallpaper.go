// Package wallpaper tracks the current wallpaper and turns wallpapers into
// seed colours for the dynamic scheme.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ferret/internal/colour"
	ferretimage "github.com/jmylchreest/ferret/internal/image"
	"github.com/jmylchreest/ferret/internal/quantize"
	"github.com/jmylchreest/ferret/internal/scheme"
	"github.com/jmylchreest/ferret/internal/score"
	"github.com/jmylchreest/ferret/internal/util/imagecache"
)

// ReadPath returns the wallpaper recorded in pathFile. A missing or empty
// file wraps scheme.ErrNoWallpaper.
func ReadPath(pathFile string) (string, error) {
	data, err := os.ReadFile(pathFile) // #nosec G304 -- state file path from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", scheme.ErrNoWallpaper, pathFile)
		}
		return "", fmt.Errorf("failed to read wallpaper path: %w", err)
	}

	path := strings.TrimSpace(string(data))
	if path == "" {
		return "", fmt.Errorf("%w: %s is empty", scheme.ErrNoWallpaper, pathFile)
	}
	return path, nil
}

// WritePath records location as the current wallpaper.
func WritePath(pathFile, location string) error {
	dir := filepath.Dir(pathFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create wallpaper state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".path-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write wallpaper path: %w", err)
	}
	_, werr := tmp.WriteString(location + "\n")
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write wallpaper path: %w", err)
	}
	if err := os.Rename(tmp.Name(), pathFile); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write wallpaper path: %w", err)
	}
	return nil
}

// Result is what extraction learns about one wallpaper.
type Result struct {
	Location string
	Seed     colour.Color
	Analysis Analysis
	Cached   bool

	// Candidates are the ranked seed candidates. Empty for cache hits.
	Candidates []score.Candidate
}

// Extractor computes seeds for wallpapers, caching by content hash.
type Extractor struct {
	loader    ferretimage.Loader
	quantizer quantize.Quantizer
	cache     *imagecache.Cache
	logger    hclog.Logger
}

// NewExtractor creates an Extractor loading files and HTTPS URLs with the
// default k-means quantizer and no cache.
func NewExtractor() *Extractor {
	return &Extractor{
		loader:    ferretimage.NewSmartLoader(),
		quantizer: quantize.NewKMeans(),
		logger:    hclog.NewNullLogger(),
	}
}

// WithLoader overrides how images are loaded.
func (e *Extractor) WithLoader(l ferretimage.Loader) *Extractor {
	e.loader = l
	return e
}

// WithQuantizer overrides the quantizer.
func (e *Extractor) WithQuantizer(q quantize.Quantizer) *Extractor {
	e.quantizer = q
	return e
}

// WithCache enables the seed cache.
func (e *Extractor) WithCache(c *imagecache.Cache) *Extractor {
	e.cache = c
	return e
}

// WithLogger sets the logger.
func (e *Extractor) WithLogger(logger hclog.Logger) *Extractor {
	if logger != nil {
		e.logger = logger.Named("wallpaper")
	}
	return e
}

// Extract loads location and computes its seed and analysis. Local files
// are looked up in the cache first; URLs are always fetched.
func (e *Extractor) Extract(ctx context.Context, location string) (Result, error) {
	res := Result{Location: location}

	var hash string
	if e.cache != nil && !ferretimage.IsURL(location) {
		h, err := imagecache.HashFile(location)
		if err != nil {
			return res, err
		}
		hash = h
		if entry, ok := e.cache.Get(hash); ok {
			e.logger.Debug("seed cache hit", "path", location, "hash", hash)
			res.Seed = entry.Seed
			res.Analysis = Analysis{MeanTone: entry.MeanTone, Colourfulness: entry.Colourfulness}
			res.Cached = true
			return res, nil
		}
	}

	img, err := e.loader.Load(ctx, location)
	if err != nil {
		return res, err
	}
	thumb := ferretimage.Thumbnail(img, ferretimage.ThumbnailSize)

	seed, candidates, err := score.Extract(thumb, e.quantizer)
	if err != nil {
		return res, fmt.Errorf("failed to extract seed: %w", err)
	}
	res.Seed = seed
	res.Candidates = candidates
	res.Analysis = Analyze(thumb)
	e.logger.Debug("extracted seed", "location", location, "seed", seed.Hex(),
		"mean_tone", res.Analysis.MeanTone, "colourfulness", res.Analysis.Colourfulness)

	if hash != "" {
		entry := imagecache.Entry{Seed: seed, MeanTone: res.Analysis.MeanTone, Colourfulness: res.Analysis.Colourfulness}
		if err := e.cache.Put(hash, entry); err != nil {
			e.logger.Warn("failed to cache seed", "error", err)
		}
	}
	return res, nil
}

// Source provides the current wallpaper's seed to the scheme manager.
type Source struct {
	pathFile  string
	extractor *Extractor
}

// NewSource reads the current wallpaper from pathFile.
func NewSource(pathFile string, extractor *Extractor) *Source {
	if extractor == nil {
		extractor = NewExtractor()
	}
	return &Source{pathFile: pathFile, extractor: extractor}
}

// Current extracts the current wallpaper.
func (s *Source) Current(ctx context.Context) (Result, error) {
	path, err := ReadPath(s.pathFile)
	if err != nil {
		return Result{}, err
	}
	return s.extractor.Extract(ctx, path)
}

// Seed implements scheme.SeedSource.
func (s *Source) Seed() (colour.Color, error) {
	res, err := s.Current(context.Background())
	if err != nil {
		return colour.Color{}, err
	}
	return res.Seed, nil
}
