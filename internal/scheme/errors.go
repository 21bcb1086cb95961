package scheme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSelection marks a name, flavour or mode that discovery does
	// not know about.
	ErrInvalidSelection = errors.New("invalid scheme selection")

	// ErrMissingPalette is returned when a static scheme has no readable
	// palette file.
	ErrMissingPalette = errors.New("palette file not found")

	// ErrNoWallpaper is returned when the dynamic scheme has no wallpaper to
	// extract a seed from.
	ErrNoWallpaper = errors.New("no wallpaper set")
)

// Level names the part of a selection being changed.
type Level string

// Selection levels.
const (
	LevelName    Level = "name"
	LevelFlavour Level = "flavour"
	LevelMode    Level = "mode"
)

// InvalidSelectionError describes a rejected selection change.
type InvalidSelectionError struct {
	Level Level
	Value string
	// Scope is the parent selection the value was looked up under, e.g. the
	// scheme name for a flavour.
	Scope string
	Valid []string
}

func (e *InvalidSelectionError) Error() string {
	where := ""
	if e.Scope != "" {
		where = fmt.Sprintf(" for %q", e.Scope)
	}
	return fmt.Sprintf("invalid scheme %s %q%s (valid: %s)", e.Level, e.Value, where, strings.Join(e.Valid, ", "))
}

// Is lets errors.Is match ErrInvalidSelection.
func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}
