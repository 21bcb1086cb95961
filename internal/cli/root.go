// Package cli provides the command-line interface for ferret.
package cli

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/config"
	"github.com/jmylchreest/ferret/internal/notify"
	"github.com/jmylchreest/ferret/internal/scheme"
	"github.com/jmylchreest/ferret/internal/util/imagecache"
	"github.com/jmylchreest/ferret/internal/version"
	"github.com/jmylchreest/ferret/internal/wallpaper"
)

// app carries the state shared by every command of one invocation.
type app struct {
	configPath string
	verbose    bool
	quiet      bool

	cfg    *config.Config
	logger hclog.Logger
	stderr io.Writer
	rng    *rand.Rand
}

// NewRootCmd builds the ferret command tree.
func NewRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "ferret",
		Short: "Colour scheme manager with wallpaper-driven palettes",
		Long: `Ferret manages the active desktop colour scheme.

Schemes are either static palettes installed under the schemes directory
(<name>/<flavour>/<mode>.txt) or the reserved "dynamic" scheme, whose
colours are synthesized from the current wallpaper.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/ferret/config.yaml)")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newSchemeCmd())
	root.AddCommand(a.newWallpaperCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := hclog.Warn
	switch {
	case a.quiet:
		level = hclog.Off
	case a.verbose:
		level = hclog.Debug
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "ferret",
		Output: a.stderr,
		Level:  level,
	})

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "schemes_dir", cfg.SchemesDir, "state_file", cfg.StateFile)

	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- scheme choice is not security sensitive
	}

	colour.DisableColourOutput = !isTerminal(cmd.OutOrStdout()) || os.Getenv("NO_COLOR") != ""
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// extractor builds a wallpaper extractor backed by the seed cache.
func (a *app) extractor() *wallpaper.Extractor {
	return wallpaper.NewExtractor().
		WithCache(imagecache.New(a.cfg.SeedCacheDir())).
		WithLogger(a.logger)
}

// manager builds the scheme manager and loads the persisted selection.
func (a *app) manager(notifyFlag bool) (*scheme.Manager, error) {
	def := a.cfg.Default
	m, err := scheme.NewBuilder().
		WithCatalog(scheme.NewDirCatalog(a.cfg.SchemesDir).WithLogger(a.logger)).
		WithStore(scheme.NewStore(a.cfg.StateFile)).
		WithSeedSource(wallpaper.NewSource(a.cfg.WallpaperPathFile, a.extractor())).
		WithNotifier(notify.NewSender().WithLogger(a.logger)).
		WithNotify(a.cfg.Notify || notifyFlag).
		WithDefault(scheme.Selection{Name: def.Name, Flavour: def.Flavour, Mode: def.Mode, Variant: def.Variant}).
		WithRand(a.rng).
		WithLogger(a.logger).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheme manager: %w", err)
	}
	m.Load()
	return m, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
