// Package image loads wallpapers from local files or HTTPS URLs and
// prepares them for colour extraction.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/ferret/internal/util/http"
)

// Loader loads an image from a location.
type Loader interface {
	Load(ctx context.Context, location string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes the image at path. Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SmartLoader loads images from both local files and HTTPS URLs.
type SmartLoader struct {
	files *FileLoader
	fetch func(ctx context.Context, url string, opts httputil.FetchOptions) ([]byte, error)
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		files: NewFileLoader(),
		fetch: httputil.Fetch,
	}
}

// Load loads an image from either a local file path or an HTTPS URL.
func (l *SmartLoader) Load(ctx context.Context, location string) (image.Image, error) {
	if !IsURL(location) {
		return l.files.Load(ctx, location)
	}

	data, err := l.fetch(ctx, location, httputil.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether location should be fetched rather than opened.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// SupportedImageExtensions returns the file extensions Resolve considers.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

func isImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// ScanDirectory lists the image files directly inside dir, sorted. It does
// not recurse but follows symlinks.
func ScanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		// Stat follows symlinks; unreadable entries are skipped.
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			images = append(images, full)
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dir)
	}
	slices.Sort(images)
	return images, nil
}

// Resolve turns a wallpaper argument into a single image location. A
// directory yields one of its images chosen with rng; files and URLs are
// returned as given, with files made absolute.
func Resolve(location string, rng *rand.Rand) (string, error) {
	if IsURL(location) {
		return location, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		if !isImageFile(location) {
			return "", fmt.Errorf("unsupported image file: %s", location)
		}
		return filepath.Abs(location)
	}

	images, err := ScanDirectory(location)
	if err != nil {
		return "", err
	}
	return filepath.Abs(images[rng.Intn(len(images))])
}
