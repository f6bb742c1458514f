package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorBrightCyan
	ColorOrange
	ColorPurple
	ColorSky
	ColorSlate
	ColorGray
)

// String returns the color name, used in logs and test failures.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorBrightRed:
		return "bright-red"
	case ColorBrightGreen:
		return "bright-green"
	case ColorBrightBlue:
		return "bright-blue"
	case ColorBrightCyan:
		return "bright-cyan"
	case ColorOrange:
		return "orange"
	case ColorPurple:
		return "purple"
	case ColorSky:
		return "sky"
	case ColorSlate:
		return "slate"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}
