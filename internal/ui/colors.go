package ui

import "github.com/charmbracelet/lipgloss"

var styles = NewPalette(Colors{
	Title: "#7D56F4",
	Year:  "#04B575",
	Error: "#FF0000",
	Empty: "#FFA500",
	Muted: "#626262",
})

// Colors names the foreground colors of a [Palette].
type Colors struct {
	Title, Year, Error, Empty, Muted string
}

// Palette holds the styles the watchlist views render with.
type Palette struct {
	title lipgloss.Style
	year  lipgloss.Style
	err   lipgloss.Style
	empty lipgloss.Style
	muted lipgloss.Style
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title: fg(c.Title).Bold(true).MarginBottom(1),
		year:  fg(c.Year).Bold(true),
		err:   fg(c.Error).Bold(true),
		empty: fg(c.Empty),
		muted: fg(c.Muted).Italic(true),
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
