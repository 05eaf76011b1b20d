// Package render provides markdown rendering and colour themes for terminal output.
package render

import (
	"os"

	"github.com/sanchai/sanchai/internal/config"
)

// Glamour styles accepted by Options.Style
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour built-in style name or a path to a JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// OptionsFromConfig derives render options from the user configuration.
// GLAMOUR_STYLE in the environment takes precedence over the config file.
func OptionsFromConfig(cfg config.Config, width int) Options {
	opts := DefaultOptions().WithWidth(width)

	md := cfg.Markdown
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}

// StyleNames lists the built-in glamour styles
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleTokyoNight, StyleNoTTY, StyleASCII}
}
