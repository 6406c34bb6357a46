// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Theme defines the color palette for timeflow's terminal output. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// HeaderForeground colors summary lines and section titles.
	HeaderForeground lipgloss.Color

	// InstantForeground colors simulated instants.
	InstantForeground lipgloss.Color

	// FiringForeground colors schedule names in firing lists.
	FiringForeground lipgloss.Color

	// WarningForeground colors interruptions and other abnormal ends.
	WarningForeground lipgloss.Color

	// DigestForeground colors content digests.
	DigestForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground:  lipgloss.Color("255"),
	InstantForeground: lipgloss.Color("75"),  // blue
	FiringForeground:  lipgloss.Color("114"), // green
	WarningForeground: lipgloss.Color("220"), // amber
	DigestForeground:  lipgloss.Color("141"), // light purple
}

// Styles are a Theme bound to one output. When the output is plain,
// every style renders its text unchanged.
type Styles struct {
	Normal  lipgloss.Style
	Faint   lipgloss.Style
	Header  lipgloss.Style
	Instant lipgloss.Style
	Firing  lipgloss.Style
	Warning lipgloss.Style
	Digest  lipgloss.Style
}

// Styles binds the theme to w. With styled set the renderer is forced
// to the 256-color profile; lipgloss would otherwise re-detect from the
// environment and drop colors under tmux or a pager. Without it, the
// ASCII profile strips all styling.
func (theme Theme) Styles(w io.Writer, styled bool) Styles {
	profile := termenv.Ascii
	if styled {
		profile = termenv.ANSI256
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return Styles{
		Normal:  renderer.NewStyle().Foreground(theme.NormalText),
		Faint:   renderer.NewStyle().Foreground(theme.FaintText),
		Header:  renderer.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		Instant: renderer.NewStyle().Foreground(theme.InstantForeground),
		Firing:  renderer.NewStyle().Foreground(theme.FiringForeground).Bold(true),
		Warning: renderer.NewStyle().Foreground(theme.WarningForeground).Bold(true),
		Digest:  renderer.NewStyle().Foreground(theme.DigestForeground),
	}
}

// PadRight pads s with spaces to width terminal cells. Escape
// sequences in s take no width, so styled and plain strings align
// alike. Strings already at least width wide are returned unchanged.
func PadRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
