package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat screen
type TUITheme struct {
	Name        string
	Description string

	Surface lipgloss.Color
	Border  lipgloss.Color

	Primary   lipgloss.Color // agent accents
	Secondary lipgloss.Color // user accents
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark theme with blue accents",
		Surface:     "#24283b",
		Border:      "#414868",
		Primary:     "#7aa2f7",
		Secondary:   "#9ece6a",
		Accent:      "#bb9af7",
		Warning:     "#e0af68",
		Error:       "#f7768e",
		Text:        "#c0caf5",
		TextDim:     "#565f89",
		TextMute:    "#3b4261",
	}

	// CatppuccinTheme is based on the Catppuccin Mocha palette
	CatppuccinTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - warm dark theme with pastel colors",
		Surface:     "#313244",
		Border:      "#45475a",
		Primary:     "#89b4fa",
		Secondary:   "#a6e3a1",
		Accent:      "#cba6f7",
		Warning:     "#f9e2af",
		Error:       "#f38ba8",
		Text:        "#cdd6f4",
		TextDim:     "#6c7086",
		TextMute:    "#45475a",
	}

	// NordTheme is based on the Nord palette
	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - arctic theme with cool tones",
		Surface:     "#3b4252",
		Border:      "#4c566a",
		Primary:     "#88c0d0",
		Secondary:   "#a3be8c",
		Accent:      "#b48ead",
		Warning:     "#ebcb8b",
		Error:       "#bf616a",
		Text:        "#eceff4",
		TextDim:     "#7b88a1",
		TextMute:    "#4c566a",
	}

	// MonsoonTheme is a light theme for bright terminals
	MonsoonTheme = TUITheme{
		Name:        "monsoon",
		Description: "Monsoon - light theme with sky and leaf tones",
		Surface:     "#eef3f8",
		Border:      "#9fb3c8",
		Primary:     "#1f6feb",
		Secondary:   "#2da44e",
		Accent:      "#8250df",
		Warning:     "#bf8700",
		Error:       "#cf222e",
		Text:        "#1f2328",
		TextDim:     "#57606a",
		TextMute:    "#8c959f",
	}
)

var tuiThemes = []TUITheme{TokyoNightTheme, CatppuccinTheme, NordTheme, MonsoonTheme}

var (
	themeMu      sync.RWMutex
	currentTheme = TokyoNightTheme
)

// GetTUITheme returns the active theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates the theme called name. Unknown names are ignored.
func SetTUITheme(name string) bool {
	theme, ok := TUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// TUIThemeByName looks a theme up by name
func TUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// TUIThemeNames lists the available theme names
func TUIThemeNames() []string {
	names := make([]string, len(tuiThemes))
	for i, t := range tuiThemes {
		names[i] = t.Name
	}
	return names
}
