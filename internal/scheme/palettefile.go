package scheme

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/ferret/internal/palette"
	"github.com/jmylchreest/ferret/internal/security"
)

// ParsePalette reads a palette file: one "name value" pair per line,
// separated by whitespace, where value is six hex digits. Blank lines and
// lines starting with # are ignored. Values are upper-cased.
func ParsePalette(r io.Reader) (palette.Harmonized, error) {
	colours := make(palette.Harmonized)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"name value\", got %q", lineNo, line)
		}
		name, value := fields[0], fields[1]
		if !security.IsHex6(value) {
			return nil, fmt.Errorf("line %d: colour %q for %q is not 6 hex digits", lineNo, value, name)
		}
		colours[name] = strings.ToUpper(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	return colours, nil
}

// LoadPalette parses the palette file at path. A missing file wraps
// ErrMissingPalette.
func LoadPalette(path string) (palette.Harmonized, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from the scheme catalog
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingPalette, path)
		}
		return nil, fmt.Errorf("failed to open palette file: %w", err)
	}
	defer file.Close()

	colours, err := ParsePalette(file)
	if err != nil {
		return nil, fmt.Errorf("invalid palette file %s: %w", path, err)
	}
	return colours, nil
}
