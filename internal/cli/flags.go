package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   *string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(p *string, allowed ...string) *enumValue {
	return &enumValue{value: p, allowed: allowed}
}

func (e *enumValue) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(e.allowed, s) {
		return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
	}
	*e.value = s
	return nil
}

func (e *enumValue) Type() string {
	return "string"
}
