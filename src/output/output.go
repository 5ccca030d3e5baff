// Package output renders terminal output for pipeline runs: framed
// sections, status icons, and CI-platform integration (GitLab collapsible
// sections, color handling for non-tty CI logs).
package output

import "os"

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}

// Colorize wraps text in a state-appropriate color when color is enabled.
func Colorize(text, state string, color bool) string {
	if !color {
		return text
	}
	switch state {
	case "success":
		return colorGreen + text + colorReset
	case "failure", "error":
		return colorRed + text + colorReset
	case "cancelled":
		return colorYellow + text + colorReset
	default:
		return text
	}
}
