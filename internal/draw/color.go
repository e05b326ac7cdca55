package draw

// ANSI SGR sequences used for text overlays.
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorGreen = "\033[32m"
)

// Colorize wraps s in color and a reset.
func Colorize(color, s string) string {
	return color + s + ColorReset
}
