package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/dynamic"
	"github.com/jmylchreest/ferret/internal/image"
	"github.com/jmylchreest/ferret/internal/palette"
	"github.com/jmylchreest/ferret/internal/scheme"
	"github.com/jmylchreest/ferret/internal/wallpaper"
)

func (a *app) newWallpaperCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallpaper",
		Short: "Show the current wallpaper or derive colours from one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := wallpaper.ReadPath(a.cfg.WallpaperPathFile)
			if errors.Is(err, scheme.ErrNoWallpaper) {
				fmt.Fprintln(cmd.OutOrStdout(), "No wallpaper set")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.AddCommand(a.newWallpaperPrintCmd(), a.newWallpaperSetCmd())
	return cmd
}

func (a *app) newWallpaperPrintCmd() *cobra.Command {
	var (
		noSmart bool
		mode    string
		variant string
	)

	cmd := &cobra.Command{
		Use:   "print <image>",
		Short: "Print the dynamic palette for an image as JSON",
		Long: `Print the palette the dynamic scheme would use for an image, without
changing the current scheme or wallpaper.

The mode and variant default to those of the current scheme. With smart
mode on, bright images get a light palette and greyscale images the
neutral variant unless --mode or --variant is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.extractor().Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			current := a.currentSelection()
			if !cmd.Flags().Changed("mode") {
				mode = current.Mode
				if a.cfg.Smart && !noSmart {
					mode = res.Analysis.Mode()
				}
			}
			if !cmd.Flags().Changed("variant") {
				variant = current.Variant
				if a.cfg.Smart && !noSmart {
					variant = res.Analysis.Variant(variant)
				}
			}
			if mode != "dark" && mode != "light" {
				return fmt.Errorf("current mode %q has no dynamic palette: use --mode", mode)
			}

			if a.verbose {
				printCandidates(cmd.ErrOrStderr(), res)
			}

			a.logger.Debug("synthesizing palette", "seed", res.Seed.Hex(), "mode", mode, "variant", variant)
			colours := palette.Synthesize(dynamic.ParseVariant(variant), res.Seed, mode == "dark")
			return writeJSON(cmd.OutOrStdout(), colours)
		},
	}

	cmd.Flags().BoolVar(&noSmart, "no-smart", false, "do not pick mode and variant from the image")
	cmd.Flags().VarP(newEnumValue(&mode, "dark", "light"), "mode", "m", "palette mode (dark, light)")
	cmd.Flags().StringVar(&variant, "variant", "", "dynamic variant")
	return cmd
}

func (a *app) newWallpaperSetCmd() *cobra.Command {
	var (
		noSmart bool
		notify  bool
	)

	cmd := &cobra.Command{
		Use:   "set <image|directory>",
		Short: "Record the current wallpaper and refresh the dynamic scheme",
		Long: `Record an image as the current wallpaper. Given a directory, one of its
images is chosen at random.

Setting the wallpaper does not change what the compositor displays; it
records the image ferret derives dynamic colours from. When the dynamic
scheme is active its colours are recomputed, and with smart mode on its
mode and variant follow the image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := image.Resolve(args[0], a.rng)
			if err != nil {
				return err
			}

			res, err := a.extractor().Extract(cmd.Context(), location)
			if err != nil {
				return err
			}
			if err := wallpaper.WritePath(a.cfg.WallpaperPathFile, location); err != nil {
				return err
			}
			a.logger.Info("wallpaper set", "path", location, "seed", res.Seed.Hex())

			m, err := a.manager(notify)
			if err != nil {
				return err
			}
			if m.Name() != scheme.DynamicName {
				return nil
			}

			if a.cfg.Smart && !noSmart {
				if err := m.SetMode(res.Analysis.Mode()); err != nil {
					return err
				}
				return m.SetVariant(res.Analysis.Variant(m.Variant()))
			}
			return m.RecomputeColours()
		},
	}

	cmd.Flags().BoolVar(&noSmart, "no-smart", false, "do not pick mode and variant from the image")
	cmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification on failure")
	return cmd
}

// currentSelection returns the persisted selection without creating or
// modifying the record.
func (a *app) currentSelection() scheme.Selection {
	rec, err := scheme.NewStore(a.cfg.StateFile).Load()
	if err != nil {
		def := a.cfg.Default
		return scheme.Selection{Name: def.Name, Flavour: def.Flavour, Mode: def.Mode, Variant: def.Variant}
	}
	return rec.Selection
}

// maxCandidates bounds the verbose candidate listing.
const maxCandidates = 8

// printCandidates lists the best seed candidates of an extraction.
func printCandidates(w io.Writer, res wallpaper.Result) {
	if res.Cached {
		fmt.Fprintf(w, "seed %s (cached)\n", res.Seed.Hex())
		return
	}

	t := NewTable("", "HEX", "HUE", "CHROMA", "TONE", "SCORE")
	for _, cand := range res.Candidates[:min(len(res.Candidates), maxCandidates)] {
		hex := cand.Color.Hex()
		t.AddRow(colour.ColourPreview(hex, 2), hex,
			fmt.Sprintf("%.0f", cand.Color.Hue),
			fmt.Sprintf("%.0f", cand.Color.Chroma),
			fmt.Sprintf("%.0f", cand.Color.Tone),
			fmt.Sprintf("%.3f", cand.Score))
	}
	fmt.Fprintf(w, "seed %s from %d candidates\n", res.Seed.Hex(), len(res.Candidates))
	if t.Len() > 0 {
		fmt.Fprint(w, t.Render())
	}
}
