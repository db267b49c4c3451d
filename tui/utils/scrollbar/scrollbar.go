// Package scrollbar draws a one-column scrollbar beside a viewport.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/grovetools/jsonview/tui/theme"
)

const (
	thumb = "█"
	track = "░"
)

// Generate returns one scrollbar cell per line for a bar of the given height.
func Generate(vp *viewport.Model, height int) []string {
	if height <= 0 {
		return []string{}
	}
	style := theme.DefaultTheme.Muted
	bar := make([]string, height)

	total := vp.TotalLineCount()
	if total <= vp.Height {
		cell := style.Render(" ")
		if total > 0 {
			cell = style.Render(thumb)
		}
		for i := range bar {
			bar[i] = cell
		}
		return bar
	}

	size := max(1, height*vp.Height/total)
	percent := min(max(vp.ScrollPercent(), 0), 1)
	span := height - size
	start := min(max(int(float64(span)*percent+0.5), 0), span)

	for i := range bar {
		if i >= start && i < start+size {
			bar[i] = style.Render(thumb)
		} else {
			bar[i] = style.Render(track)
		}
	}
	return bar
}

// Overlay appends the scrollbar to each line of the viewport's view.
func Overlay(vp *viewport.Model) string {
	lines := strings.Split(vp.View(), "\n")
	bar := Generate(vp, len(lines))
	for i := range lines {
		lines[i] += bar[i]
	}
	return strings.Join(lines, "\n")
}
