package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders a Markdown outline using
// glamour. Word wrap is disabled so deep suite trees keep their indentation.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
