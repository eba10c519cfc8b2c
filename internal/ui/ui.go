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

// Theme picks the palette. Anything other than "dark" reads as light.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(value string) Theme {
	if strings.EqualFold(strings.TrimSpace(value), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Palette holds the hex colors used for output.
type Palette struct {
	Link     string
	Accent   string
	Muted    string
	Verified string
	Pending  string
	Error    string
	Warn     string
	Info     string
	Success  string
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Link:     "#1F6FEB",
		Accent:   "#8250DF",
		Muted:    "#6E7781",
		Verified: "#1A7F37",
		Pending:  "#9A6700",
		Error:    "#CF222E",
		Warn:     "#9A6700",
		Info:     "#0969DA",
		Success:  "#1A7F37",
	},
	ThemeDark: {
		Link:     "#87CEEB",
		Accent:   "#D2A8FF",
		Muted:    "#8B949E",
		Verified: "#3FB950",
		Pending:  "#D29922",
		Error:    "#F85149",
		Warn:     "#D29922",
		Info:     "#58A6FF",
		Success:  "#3FB950",
	},
}

func (t Theme) Palette() Palette {
	return palettes[ParseTheme(string(t))]
}

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
	Theme        Theme
	Palette      Palette
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool, theme Theme) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)
	theme = ParseTheme(string(theme))

	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
		Theme:        theme,
		Palette:      theme.Palette(),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

// SetTheme switches the palette for the rest of the run.
func (u *UI) SetTheme(theme Theme) {
	u.Theme = ParseTheme(string(theme))
	u.Palette = u.Theme.Palette()
}

func (u *UI) line(w io.Writer, output *termenv.Output, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(w, Colorize(output, u.ColorEnabled, color, msg))
}

func (u *UI) Errorf(format string, args ...any) {
	u.line(u.Err, u.ErrOutput, u.Palette.Error, format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.line(u.Err, u.ErrOutput, u.Palette.Warn, format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.line(u.Out, u.Output, u.Palette.Info, format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.line(u.Out, u.Output, u.Palette.Success, format, args...)
}

// Colorize paints text with a hex color when color output is enabled.
func Colorize(output *termenv.Output, enabled bool, color string, text string) string {
	if !enabled || output == nil || color == "" {
		return text
	}
	return output.String(text).Foreground(output.Color(color)).String()
}

func (u *UI) LinkText(text string) string {
	return Colorize(u.Output, u.ColorEnabled, u.Palette.Link, text)
}

func (u *UI) Muted(text string) string {
	return Colorize(u.Output, u.ColorEnabled, u.Palette.Muted, text)
}

func (u *UI) Accent(text string) string {
	return Colorize(u.Output, u.ColorEnabled, u.Palette.Accent, text)
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
