package colour

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 8

// DisableColourOutput can be used to disable colour output.
var DisableColourOutput = false

// ColourPreview returns a solid block of the given hex colour, width cells wide.
// The hex value may omit the leading #.
func ColourPreview(hex string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	block := strings.Repeat(" ", width)
	if DisableColourOutput {
		return block
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#" + strings.TrimPrefix(hex, "#"))).
		Render(block)
}

// ColourString renders text in the given hex colour, or plain text when
// colour output is disabled.
func ColourString(hex, text string) string {
	if DisableColourOutput {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#" + strings.TrimPrefix(hex, "#"))).
		Render(text)
}

// FormatColourWithLabel formats a colour with a label and preview.
func FormatColourWithLabel(hex, label string, width int) string {
	preview := ColourPreview(hex, width)
	return fmt.Sprintf("%s  %-22s %s", preview, label, ColourString(hex, strings.ToUpper(strings.TrimPrefix(hex, "#"))))
}
