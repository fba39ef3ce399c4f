package ui

// The Color* accessors read the active theme, so callers never cache escape
// codes across a theme change.

// ColorReset returns the reset sequence.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the bold sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline sequence.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorMagenta returns the primary accent.
func ColorMagenta() string { return GetCurrentTheme().Primary }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorCyan returns the info color.
func ColorCyan() string { return GetCurrentTheme().Info }

// ColorGrey returns the secondary color.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// Paint wraps s in color and a reset. With the no-color theme active it
// returns s unchanged.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
