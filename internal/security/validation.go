// Package security provides input validation for ferret: URLs, paths,
// bounded readers and struct validation.
package security

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateHTTPURL validates an HTTP(S) URL for safe downloads.
// Only allows HTTPS from non-local hosts.
func ValidateHTTPURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	// Parse the URL
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow HTTPS (not HTTP)
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
	}

	// Require a host
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	// Block localhost and private IPs to prevent SSRF
	host := strings.ToLower(parsed.Hostname())
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidatePathComponent checks that name can be used as a single path
// element under a directory without escaping it.
func ValidatePathComponent(name string) error {
	if name == "" {
		return fmt.Errorf("empty path component")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("path component %q is not allowed", name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("path component %q contains a separator", name)
	}
	return nil
}

// ValidateWithinDir validates that filePath, relative to baseDir, stays
// inside baseDir.
func ValidateWithinDir(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute paths are not allowed: %s", filePath)
	}

	cleanFinal := filepath.Clean(filepath.Join(baseDir, filePath))
	cleanBase := filepath.Clean(baseDir)

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) &&
		cleanFinal != cleanBase {
		return fmt.Errorf("file path would escape base directory")
	}

	return nil
}

// SafeUint8 safely converts an integer to uint8 with bounds checking.
// Values outside 0-255 are clamped to the valid range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of truncating, so an oversized
// download is never mistaken for a complete one. A body of exactly the limit
// reads to the underlying EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. It reads one byte past the
// limit so overflow is only reported when that byte exists.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining < 0 {
		return 0, fmt.Errorf("size limit exceeded")
	}
	if int64(len(p)) > l.Remaining+1 {
		p = p[:l.Remaining+1]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	if l.Remaining < 0 {
		return n - 1, fmt.Errorf("size limit exceeded")
	}
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// isLocalOrPrivateHost checks if a hostname is localhost or a private IP.
func isLocalOrPrivateHost(host string) bool {
	// Check for localhost variations
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}

	// Check for private IP ranges
	if strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "172.16.") ||
		strings.HasPrefix(host, "172.17.") ||
		strings.HasPrefix(host, "172.18.") ||
		strings.HasPrefix(host, "172.19.") ||
		strings.HasPrefix(host, "172.20.") ||
		strings.HasPrefix(host, "172.21.") ||
		strings.HasPrefix(host, "172.22.") ||
		strings.HasPrefix(host, "172.23.") ||
		strings.HasPrefix(host, "172.24.") ||
		strings.HasPrefix(host, "172.25.") ||
		strings.HasPrefix(host, "172.26.") ||
		strings.HasPrefix(host, "172.27.") ||
		strings.HasPrefix(host, "172.28.") ||
		strings.HasPrefix(host, "172.29.") ||
		strings.HasPrefix(host, "172.30.") ||
		strings.HasPrefix(host, "172.31.") ||
		strings.HasPrefix(host, "169.254.") {
		return true
	}

	// Check for link-local IPv6
	if strings.HasPrefix(host, "fe80:") || strings.HasPrefix(host, "fc00:") || strings.HasPrefix(host, "fd00:") {
		return true
	}

	return false
}
