// Package ui prints status lines and colorized links on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ANSI palette indices for message levels.
const (
	colorError   = "1"
	colorSuccess = "2"
	colorWarn    = "3"
	colorInfo    = "4"
)

const linkColor = "#87CEEB"

type UI struct {
	out          io.Writer
	errOut       io.Writer
	output       *termenv.Output
	errOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, errOut io.Writer, mode ColorMode, disableColor bool) *UI {
	u := &UI{
		out:       out,
		errOut:    errOut,
		output:    termenv.NewOutput(out),
		errOutput: termenv.NewOutput(errOut),
	}
	u.ColorEnabled = u.colorAllowed(mode, disableColor)
	return u
}

func (u *UI) colorAllowed(mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}
	// NO_COLOR wins even over --color=always.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return u.output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any)   { u.paint(u.errOut, u.errOutput, colorError, format, args...) }
func (u *UI) Warnf(format string, args ...any)    { u.paint(u.errOut, u.errOutput, colorWarn, format, args...) }
func (u *UI) Infof(format string, args ...any)    { u.paint(u.out, u.output, colorInfo, format, args...) }
func (u *UI) Successf(format string, args ...any) { u.paint(u.out, u.output, colorSuccess, format, args...) }

func (u *UI) paint(w io.Writer, output *termenv.Output, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	fmt.Fprintln(w, msg)
}

// LinkText colors a URL in the same sky blue the exporters use.
func (u *UI) LinkText(text string) string {
	if !u.ColorEnabled {
		return text
	}
	return u.output.String(text).Foreground(u.output.Color(linkColor)).String()
}

func NormalizeColorMode(value string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
