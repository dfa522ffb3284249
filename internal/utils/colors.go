package utils

// Terminal color codes using ANSI escape sequences
const (
	ResetColor  = "\033[0m"
	RedColor    = "\033[31m" // For errors
	YellowColor = "\033[33m" // For warnings
	BlueColor   = "\033[34m" // For verbose per-file details
	CyanColor   = "\033[36m" // For debug traces
)

// ColoredText wraps text with color codes and reset at the end
func ColoredText(text string, color string) string {
	return color + text + ResetColor
}

// Info returns blue-colored text, used by LogVerbose
func Info(text string) string {
	return ColoredText(text, BlueColor)
}

// Warning returns yellow-colored text for warning messages
func Warning(text string) string {
	return ColoredText(text, YellowColor)
}

// Error returns red-colored text for error messages
func Error(text string) string {
	return ColoredText(text, RedColor)
}

// Debug returns cyan-colored text, used by LogDebug
func Debug(text string) string {
	return ColoredText(text, CyanColor)
}
