package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for terminal output.
// Each ANSI field contains the escape code for its color category; Accent
// and Muted are the lipgloss equivalents used by the styled blocks.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for values and prompts.
	Primary string
	// Secondary is used for less prominent elements such as digit counts.
	Secondary string
	// Success marks consistent results and completed evaluations.
	Success string
	// Warning is used for truncation notices and non-critical issues.
	Warning string
	// Error marks failed evaluations and width mismatches.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string

	// Accent colors banner borders and headers.
	Accent lipgloss.TerminalColor
	// Muted colors secondary banner text.
	Muted lipgloss.TerminalColor
	// SuccessColor, WarningColor and ErrorColor mirror the ANSI status
	// codes for lipgloss styles.
	SuccessColor lipgloss.TerminalColor
	WarningColor lipgloss.TerminalColor
	ErrorColor   lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("39"),
		Muted:     lipgloss.Color("245"),

		SuccessColor: lipgloss.Color("82"),
		WarningColor: lipgloss.Color("220"),
		ErrorColor:   lipgloss.Color("196"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("27"),
		Muted:     lipgloss.Color("240"),

		SuccessColor: lipgloss.Color("28"),
		WarningColor: lipgloss.Color("130"),
		ErrorColor:   lipgloss.Color("124"),
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{
		Name:   "none",
		Accent: lipgloss.NoColor{},
		Muted:  lipgloss.NoColor{},

		SuccessColor: lipgloss.NoColor{},
		WarningColor: lipgloss.NoColor{},
		ErrorColor:   lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// If noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
