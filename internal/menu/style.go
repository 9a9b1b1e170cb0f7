package menu

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiPurple = "\x1b[35m"
	ansiGray   = "\x1b[90m"
	ansiPink   = "\x1b[95m"
	ansiNavy   = "\x1b[38;5;17m"

	clearSeq = "\x1b[H\x1b[2J"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// UseColor resolves a color mode ("auto", "always", "never") for f.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}

type style struct {
	enabled bool
}

func (s style) paint(code, text string) string {
	if !s.enabled {
		return text
	}
	return code + text + ansiReset
}

func (s style) red(text string) string    { return s.paint(ansiRed, text) }
func (s style) green(text string) string  { return s.paint(ansiGreen, text) }
func (s style) yellow(text string) string { return s.paint(ansiYellow, text) }
func (s style) blue(text string) string   { return s.paint(ansiBlue, text) }
func (s style) purple(text string) string { return s.paint(ansiPurple, text) }
func (s style) gray(text string) string   { return s.paint(ansiGray, text) }
func (s style) pink(text string) string   { return s.paint(ansiPink, text) }
func (s style) header(text string) string { return s.paint(ansiNavy+ansiBold, text) }
