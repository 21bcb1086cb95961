// Package scheme manages the active colour scheme: discovery of the
// available name/flavour/mode combinations, validated selection changes,
// colour resolution and crash-safe persistence of the result.
package scheme

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/dynamic"
	"github.com/jmylchreest/ferret/internal/notify"
	"github.com/jmylchreest/ferret/internal/palette"
)

// SeedSource provides the seed colour for the dynamic scheme. It returns an
// error wrapping ErrNoWallpaper when there is nothing to extract from.
type SeedSource interface {
	Seed() (colour.Color, error)
}

// SeedFunc adapts a function to the SeedSource interface.
type SeedFunc func() (colour.Color, error)

// Seed calls f.
func (f SeedFunc) Seed() (colour.Color, error) {
	return f()
}

// Manager owns the active selection and its resolved colours for one
// process. Every setter either does nothing, fully applies the change
// (resolve colours, persist, then commit in memory), or rejects it leaving
// all state untouched.
type Manager struct {
	catalog  Catalog
	store    *Store
	seeds    SeedSource
	synth    *palette.Synthesizer
	notifier notify.Notifier
	rng      *rand.Rand
	logger   hclog.Logger
	fallback Selection

	current Selection
	colours palette.Harmonized
	notify  bool
}

// Builder provides a fluent interface for constructing a Manager.
type Builder struct {
	catalog  Catalog
	store    *Store
	seeds    SeedSource
	synth    *palette.Synthesizer
	notifier notify.Notifier
	rng      *rand.Rand
	logger   hclog.Logger
	fallback *Selection
	notify   bool
}

// NewBuilder creates a new Manager builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithCatalog sets scheme discovery. Required.
func (b *Builder) WithCatalog(c Catalog) *Builder {
	b.catalog = c
	return b
}

// WithStore sets where the selection is persisted. Required.
func (b *Builder) WithStore(s *Store) *Builder {
	b.store = s
	return b
}

// WithSeedSource sets the wallpaper seed provider for the dynamic scheme.
func (b *Builder) WithSeedSource(s SeedSource) *Builder {
	b.seeds = s
	return b
}

// WithSynthesizer overrides the palette synthesizer.
func (b *Builder) WithSynthesizer(s *palette.Synthesizer) *Builder {
	b.synth = s
	return b
}

// WithNotifier sets where rejected changes are reported when notifications
// are enabled.
func (b *Builder) WithNotifier(n notify.Notifier) *Builder {
	b.notifier = n
	return b
}

// WithNotify enables notifications for rejected changes.
func (b *Builder) WithNotify(enabled bool) *Builder {
	b.notify = enabled
	return b
}

// WithRand sets the random source used by SetRandom.
func (b *Builder) WithRand(r *rand.Rand) *Builder {
	b.rng = r
	return b
}

// WithDefault overrides the selection used on first run and whenever the
// persisted record cannot be trusted. Its default flag is always set.
func (b *Builder) WithDefault(sel Selection) *Builder {
	sel.Default = true
	b.fallback = &sel
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l hclog.Logger) *Builder {
	b.logger = l
	return b
}

// Build constructs the Manager. The selection starts as the default
// selection with no colours; call Load to read the persisted record.
func (b *Builder) Build() (*Manager, error) {
	if b.catalog == nil {
		return nil, fmt.Errorf("scheme catalog is required")
	}
	if b.store == nil {
		return nil, fmt.Errorf("scheme store is required")
	}

	m := &Manager{
		catalog:  b.catalog,
		store:    b.store,
		seeds:    b.seeds,
		synth:    b.synth,
		notifier: b.notifier,
		rng:      b.rng,
		logger:   b.logger,
		fallback: DefaultSelection,
		current:  DefaultSelection,
		colours:  palette.Harmonized{},
		notify:   b.notify,
	}
	if b.fallback != nil {
		m.fallback = *b.fallback
		m.current = m.fallback
	}
	if m.logger == nil {
		m.logger = hclog.NewNullLogger()
	} else {
		m.logger = m.logger.Named("scheme")
	}
	if m.synth == nil {
		m.synth = palette.NewSynthesizer(nil).WithLogger(b.logger)
	}
	if m.notifier == nil {
		m.notifier = notify.Discard{}
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- scheme choice is not security sensitive
	}
	return m, nil
}

// Selection returns the active selection.
func (m *Manager) Selection() Selection { return m.current }

// Name returns the active scheme name.
func (m *Manager) Name() string { return m.current.Name }

// Flavour returns the active flavour.
func (m *Manager) Flavour() string { return m.current.Flavour }

// Mode returns the active mode.
func (m *Manager) Mode() string { return m.current.Mode }

// Variant returns the active variant token.
func (m *Manager) Variant() string { return m.current.Variant }

// IsDefault reports whether the selection is the untouched default.
func (m *Manager) IsDefault() bool { return m.current.Default }

// Colours returns a copy of the resolved colours.
func (m *Manager) Colours() palette.Harmonized { return m.colours.Clone() }

// Notify reports whether rejected changes trigger a notification.
func (m *Manager) Notify() bool { return m.notify }

// SetNotify enables or disables notifications for rejected changes.
func (m *Manager) SetNotify(enabled bool) { m.notify = enabled }

// Catalog returns the discovery source.
func (m *Manager) Catalog() Catalog { return m.catalog }

// Record returns the active selection with its colours.
func (m *Manager) Record() Record {
	return Record{Selection: m.current, Colours: m.Colours()}
}

// Load restores the persisted selection. A restored selection is never the
// default one, whatever its stored flag says. A missing, unreadable or
// invalid record is replaced by the default selection, which is then
// persisted. Load never fails; problems are logged.
func (m *Manager) Load() {
	rec, err := m.store.Load()
	if err == nil {
		err = m.validate(rec.Selection)
	}
	if err == nil {
		m.current = rec.Selection
		m.current.Default = false
		m.colours = rec.Colours
		if m.colours == nil {
			m.colours = palette.Harmonized{}
		}
		m.logger.Debug("loaded scheme", "name", rec.Name, "flavour", rec.Flavour, "mode", rec.Mode)
		return
	}

	m.logger.Debug("using default scheme", "reason", err)
	m.current = m.fallback
	m.colours = palette.Harmonized{}

	colours, rerr := m.resolve(m.current)
	if rerr != nil {
		m.logger.Warn("failed to resolve default scheme colours", "error", rerr)
	} else {
		m.colours = colours
	}

	if perr := m.Persist(); perr != nil {
		m.logger.Warn("failed to persist default scheme", "error", perr)
	}
}

// validate checks a selection against discovery.
func (m *Manager) validate(sel Selection) error {
	names := m.catalog.Names()
	if !slices.Contains(names, sel.Name) {
		return &InvalidSelectionError{Level: LevelName, Value: sel.Name, Valid: names}
	}
	flavours := m.catalog.Flavours(sel.Name)
	if !slices.Contains(flavours, sel.Flavour) {
		return &InvalidSelectionError{Level: LevelFlavour, Value: sel.Flavour, Scope: sel.Name, Valid: flavours}
	}
	modes := m.catalog.Modes(sel.Name, sel.Flavour)
	if !slices.Contains(modes, sel.Mode) {
		return &InvalidSelectionError{Level: LevelMode, Value: sel.Mode, Scope: sel.Name + " " + sel.Flavour, Valid: modes}
	}
	return nil
}

// SetName switches scheme. The flavour and mode are kept when the new
// scheme has them, otherwise they reset to its first flavour and mode.
func (m *Manager) SetName(name string) error {
	if name == m.current.Name {
		return nil
	}

	names := m.catalog.Names()
	if !slices.Contains(names, name) {
		return m.reject(&InvalidSelectionError{Level: LevelName, Value: name, Valid: names})
	}

	cand := m.current
	cand.Name = name
	cand.Flavour = keepOrFirst(m.catalog.Flavours(name), cand.Flavour)
	cand.Mode = keepOrFirst(m.catalog.Modes(name, cand.Flavour), cand.Mode)
	return m.apply(cand)
}

// SetFlavour switches flavour within the current scheme, resetting the mode
// if the new flavour lacks it.
func (m *Manager) SetFlavour(flavour string) error {
	if flavour == m.current.Flavour {
		return nil
	}

	flavours := m.catalog.Flavours(m.current.Name)
	if !slices.Contains(flavours, flavour) {
		return m.reject(&InvalidSelectionError{Level: LevelFlavour, Value: flavour, Scope: m.current.Name, Valid: flavours})
	}

	cand := m.current
	cand.Flavour = flavour
	cand.Mode = keepOrFirst(m.catalog.Modes(cand.Name, flavour), cand.Mode)
	return m.apply(cand)
}

// SetMode switches mode within the current scheme and flavour.
func (m *Manager) SetMode(mode string) error {
	if mode == m.current.Mode {
		return nil
	}

	modes := m.catalog.Modes(m.current.Name, m.current.Flavour)
	if !slices.Contains(modes, mode) {
		scope := m.current.Name + " " + m.current.Flavour
		return m.reject(&InvalidSelectionError{Level: LevelMode, Value: mode, Scope: scope, Valid: modes})
	}

	cand := m.current
	cand.Mode = mode
	return m.apply(cand)
}

// SetVariant sets the dynamic variant. Any token is accepted; unknown ones
// synthesize as vibrant. Colours are always recomputed and persisted.
func (m *Manager) SetVariant(variant string) error {
	cand := m.current
	cand.Variant = variant
	return m.apply(cand)
}

// SetDefault sets the default flag, persisting only when it changes.
func (m *Manager) SetDefault(state bool) error {
	if state == m.current.Default {
		return nil
	}

	cand := m.current
	cand.Default = state
	if err := m.store.Save(Record{Selection: cand, Colours: m.colours}); err != nil {
		return err
	}
	m.current = cand
	return nil
}

// SetRandom picks a scheme, then one of its flavours, then one of that
// flavour's modes, uniformly at each step. Schemes and flavours without
// any modes are never picked, so the result is always valid.
func (m *Manager) SetRandom() error {
	var names []string
	for _, name := range m.catalog.Names() {
		if len(m.usableFlavours(name)) > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: no schemes available", ErrInvalidSelection)
	}

	cand := m.current
	cand.Name = names[m.rng.Intn(len(names))]
	flavours := m.usableFlavours(cand.Name)
	cand.Flavour = flavours[m.rng.Intn(len(flavours))]
	modes := m.catalog.Modes(cand.Name, cand.Flavour)
	cand.Mode = modes[m.rng.Intn(len(modes))]

	m.logger.Debug("picked random scheme", "name", cand.Name, "flavour", cand.Flavour, "mode", cand.Mode)
	return m.apply(cand)
}

func (m *Manager) usableFlavours(name string) []string {
	var out []string
	for _, f := range m.catalog.Flavours(name) {
		if len(m.catalog.Modes(name, f)) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// RecomputeColours re-resolves the colours of the current selection and
// persists them. On failure the previous colours are kept.
func (m *Manager) RecomputeColours() error {
	return m.apply(m.current)
}

// Persist writes the current selection and colours.
func (m *Manager) Persist() error {
	return m.store.Save(Record{Selection: m.current, Colours: m.colours})
}

// apply resolves and persists cand, committing it only if both succeed.
func (m *Manager) apply(cand Selection) error {
	colours, err := m.resolve(cand)
	if err != nil {
		return err
	}
	if err := m.store.Save(Record{Selection: cand, Colours: colours}); err != nil {
		return err
	}
	m.current = cand
	m.colours = colours
	m.logger.Debug("applied scheme", "name", cand.Name, "flavour", cand.Flavour, "mode", cand.Mode, "variant", cand.Variant)
	return nil
}

// resolve computes the colours for sel: synthesized from the wallpaper for
// the dynamic scheme, read from the palette file otherwise.
func (m *Manager) resolve(sel Selection) (palette.Harmonized, error) {
	if sel.Name != DynamicName {
		return LoadPalette(m.catalog.PalettePath(sel.Name, sel.Flavour, sel.Mode))
	}

	if m.seeds == nil {
		m.notifyFailure("Unable to set dynamic scheme", "No wallpaper set. Please set a wallpaper before setting a dynamic scheme.")
		return nil, ErrNoWallpaper
	}
	seed, err := m.seeds.Seed()
	if err != nil {
		if errors.Is(err, ErrNoWallpaper) {
			m.notifyFailure("Unable to set dynamic scheme", "No wallpaper set. Please set a wallpaper before setting a dynamic scheme.")
		}
		return nil, fmt.Errorf("failed to get wallpaper seed: %w", err)
	}

	return m.synth.Synthesize(dynamic.ParseVariant(sel.Variant), seed, sel.IsDark()), nil
}

func (m *Manager) reject(err *InvalidSelectionError) error {
	m.logger.Debug("rejected scheme change", "level", err.Level, "value", err.Value)

	var title, body string
	switch err.Level {
	case LevelName:
		title = "Unable to set scheme"
		body = fmt.Sprintf("%q is not a valid scheme.\nValid schemes are: %s", err.Value, strings.Join(err.Valid, ", "))
	case LevelFlavour:
		title = "Unable to set scheme flavour"
		body = fmt.Sprintf("%q is not a valid flavour of scheme %q.\nValid flavours are: %s", err.Value, err.Scope, strings.Join(err.Valid, ", "))
	default:
		title = "Unable to set scheme mode"
		body = fmt.Sprintf("Scheme %q does not have a %s mode.", err.Scope, err.Value)
	}
	m.notifyFailure(title, body)
	return err
}

func (m *Manager) notifyFailure(title, body string) {
	if !m.notify {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.notifier.Notify(ctx, notify.Message{Urgency: notify.UrgencyCritical, Title: title, Body: body}); err != nil {
		m.logger.Debug("failed to send notification", "error", err)
	}
}

// keepOrFirst returns current if it is among options, else the first
// option. With no options current is returned unchanged and resolution will
// fail later.
func keepOrFirst(options []string, current string) string {
	if len(options) == 0 || slices.Contains(options, current) {
		return current
	}
	return options[0]
}
