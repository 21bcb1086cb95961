package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/scheme"
)

func (a *app) newSchemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "Show, list and change the colour scheme",
	}
	cmd.AddCommand(a.newSchemeGetCmd(), a.newSchemeListCmd(), a.newSchemeSetCmd())
	return cmd
}

func (a *app) newSchemeGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current scheme and its colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.manager(false)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), m.Record())
			}
			printRecord(cmd.OutOrStdout(), m.Record())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the persisted record as JSON")
	return cmd
}

func (a *app) newSchemeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available schemes, flavours and modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := scheme.NewDirCatalog(a.cfg.SchemesDir).WithLogger(a.logger)

			table := NewTable("NAME", "FLAVOUR", "MODES")
			for _, name := range catalog.Names() {
				flavours := catalog.Flavours(name)
				if len(flavours) == 0 {
					table.AddRow(name, "-", "-")
					continue
				}
				for _, flavour := range flavours {
					modes := catalog.Modes(name, flavour)
					if len(modes) == 0 {
						modes = []string{"-"}
					}
					table.AddRow(name, flavour, strings.Join(modes, ", "))
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
}

type schemeSetOptions struct {
	name    string
	flavour string
	mode    string
	variant string
	random  bool
	notify  bool
}

func (a *app) newSchemeSetCmd() *cobra.Command {
	var opts schemeSetOptions

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the current scheme",
		Long: `Change the current scheme.

Changes are applied in order: name, flavour, mode, then variant. Changing
the name keeps the current flavour and mode when the new scheme has them,
otherwise the first available ones are used. An invalid value leaves the
scheme untouched.

Examples:
  # Switch to catppuccin latte
  ferret scheme set --name catppuccin --flavour latte

  # Use the wallpaper with the expressive variant
  ferret scheme set --name dynamic --variant expressive

  # Pick any valid scheme
  ferret scheme set --random`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variantSet := cmd.Flags().Changed("variant")
			if !opts.random && opts.name == "" && opts.flavour == "" && opts.mode == "" && !variantSet {
				return fmt.Errorf("nothing to set: use --name, --flavour, --mode, --variant or --random")
			}

			m, err := a.manager(opts.notify)
			if err != nil {
				return err
			}
			if err := applySet(m, opts, variantSet); err != nil {
				return err
			}
			if err := m.SetDefault(false); err != nil {
				return err
			}

			sel := m.Selection()
			a.logger.Info("scheme set", "name", sel.Name, "flavour", sel.Flavour, "mode", sel.Mode, "variant", sel.Variant)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "scheme name")
	cmd.Flags().StringVarP(&opts.flavour, "flavour", "f", "", "scheme flavour")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "scheme mode (e.g. dark, light)")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "dynamic scheme variant (content, expressive, fidelity, fruitsalad, monochrome, neutral, rainbow, tonalspot, vibrant)")
	cmd.Flags().BoolVarP(&opts.random, "random", "r", false, "pick a random scheme, flavour and mode")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "send a desktop notification when a change is rejected")
	return cmd
}

// applySet performs the requested changes, stopping at the first failure.
func applySet(m *scheme.Manager, opts schemeSetOptions, variantSet bool) error {
	if opts.random {
		if err := m.SetRandom(); err != nil {
			return err
		}
	}
	if opts.name != "" {
		if err := m.SetName(opts.name); err != nil {
			return err
		}
	}
	if opts.flavour != "" {
		if err := m.SetFlavour(opts.flavour); err != nil {
			return err
		}
	}
	if opts.mode != "" {
		if err := m.SetMode(opts.mode); err != nil {
			return err
		}
	}
	if variantSet {
		return m.SetVariant(opts.variant)
	}
	return nil
}

func printRecord(w io.Writer, rec scheme.Record) {
	fmt.Fprintf(w, "Scheme:  %s\n", rec.Name)
	fmt.Fprintf(w, "Flavour: %s\n", rec.Flavour)
	fmt.Fprintf(w, "Mode:    %s\n", rec.Mode)
	fmt.Fprintf(w, "Variant: %s\n", rec.Variant)

	if len(rec.Colours) == 0 {
		fmt.Fprintln(w, "\nNo colours available.")
		return
	}
	fmt.Fprintln(w)
	for _, name := range rec.Colours.Names() {
		fmt.Fprintln(w, colour.FormatColourWithLabel(rec.Colours[name], name, 4))
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
