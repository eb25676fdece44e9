package ui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/radio/internal/domain/track"
)

func color(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

// styles holds the Mocha-flavoured styles used by the display.
type styles struct {
	title    lipgloss.Style
	artist   lipgloss.Style
	song     lipgloss.Style
	subtext  lipgloss.Style
	dim      lipgloss.Style
	rule     lipgloss.Style
	country  lipgloss.Style
	year     lipgloss.Style
	code     lipgloss.Style
	heading  lipgloss.Style
	warning  lipgloss.Style
	errorMsg lipgloss.Style
	moods    map[track.Mood]lipgloss.Style
	mood     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	p := catppuccin.Mocha
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(color(p.Mauve())),
		artist:   r.NewStyle().Bold(true).Foreground(color(p.Pink())),
		song:     r.NewStyle().Bold(true).Foreground(color(p.Text())),
		subtext:  r.NewStyle().Foreground(color(p.Subtext0())),
		dim:      r.NewStyle().Faint(true),
		rule:     r.NewStyle().Foreground(color(p.Surface1())),
		country:  r.NewStyle().Foreground(color(p.Green())),
		year:     r.NewStyle().Foreground(color(p.Yellow())),
		code:     r.NewStyle().Foreground(color(p.Blue())),
		heading:  r.NewStyle().Bold(true),
		warning:  r.NewStyle().Foreground(color(p.Yellow())),
		errorMsg: r.NewStyle().Foreground(color(p.Red())),
		moods: map[track.Mood]lipgloss.Style{
			track.MoodSlow:  r.NewStyle().Foreground(color(p.Blue())),
			track.MoodFast:  r.NewStyle().Foreground(color(p.Peach())),
			track.MoodWeird: r.NewStyle().Foreground(color(p.Mauve())),
		},
		mood: r.NewStyle().Foreground(color(p.Text())),
	}
}

func (s styles) moodStyle(m track.Mood) lipgloss.Style {
	if st, ok := s.moods[m]; ok {
		return st
	}
	return s.mood
}
