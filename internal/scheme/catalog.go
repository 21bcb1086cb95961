package scheme

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ferret/internal/security"
)

const (
	// DynamicName is the reserved scheme whose colours come from the
	// wallpaper rather than a palette file.
	DynamicName = "dynamic"

	// DynamicFlavour is the only flavour of the dynamic scheme.
	DynamicFlavour = "default"

	// PaletteExt is the extension of palette files.
	PaletteExt = ".txt"
)

// dynamicModes is the fixed mode set of the dynamic scheme.
var dynamicModes = []string{"dark", "light"}

// Catalog discovers available schemes. All listings are sorted.
type Catalog interface {
	Names() []string
	Flavours(name string) []string
	Modes(name, flavour string) []string
	PalettePath(name, flavour, mode string) string
}

// DirCatalog discovers schemes laid out as <root>/<name>/<flavour>/<mode>.txt.
type DirCatalog struct {
	root   string
	logger hclog.Logger
}

// NewDirCatalog creates a catalog rooted at dir.
func NewDirCatalog(dir string) *DirCatalog {
	return &DirCatalog{root: dir, logger: hclog.NewNullLogger()}
}

// WithLogger sets the logger.
func (c *DirCatalog) WithLogger(logger hclog.Logger) *DirCatalog {
	if logger != nil {
		c.logger = logger.Named("catalog")
	}
	return c
}

// Root returns the schemes directory.
func (c *DirCatalog) Root() string {
	return c.root
}

// Names lists scheme directories plus the reserved dynamic scheme.
func (c *DirCatalog) Names() []string {
	names := c.listDirs(c.root)
	if !slices.Contains(names, DynamicName) {
		names = append(names, DynamicName)
	}
	slices.Sort(names)
	return names
}

// Flavours lists the flavours of name.
func (c *DirCatalog) Flavours(name string) []string {
	if name == DynamicName {
		return []string{DynamicFlavour}
	}
	if security.ValidatePathComponent(name) != nil {
		return nil
	}
	return c.listDirs(filepath.Join(c.root, name))
}

// Modes lists the modes of name/flavour: the stems of its palette files.
func (c *DirCatalog) Modes(name, flavour string) []string {
	if name == DynamicName {
		if flavour != DynamicFlavour {
			return nil
		}
		return slices.Clone(dynamicModes)
	}
	if security.ValidatePathComponent(name) != nil || security.ValidatePathComponent(flavour) != nil {
		return nil
	}

	dir := filepath.Join(c.root, name, flavour)
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("failed to list modes", "dir", dir, "error", err)
		return nil
	}

	var modes []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != PaletteExt {
			continue
		}
		modes = append(modes, strings.TrimSuffix(entry.Name(), PaletteExt))
	}
	slices.Sort(modes)
	return modes
}

// PalettePath returns where the palette for a selection lives. The path is
// only meaningful for discovered selections; one that would leave the
// schemes directory yields "".
func (c *DirCatalog) PalettePath(name, flavour, mode string) string {
	rel := filepath.Join(name, flavour, mode+PaletteExt)
	if err := security.ValidateWithinDir(rel, c.root); err != nil {
		c.logger.Warn("rejected palette path", "path", rel, "error", err)
		return ""
	}
	return filepath.Join(c.root, rel)
}

func (c *DirCatalog) listDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("failed to list directory", "dir", dir, "error", err)
		return nil
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			out = append(out, entry.Name())
		}
	}
	slices.Sort(out)
	return out
}
