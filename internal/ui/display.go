// Package ui renders the radio session in the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/osa030/radio/internal/app/directory"
	"github.com/osa030/radio/internal/domain/selection"
	"github.com/osa030/radio/internal/domain/track"
)

const (
	indent    = "  "
	ruleWidth = 50
	separator = "  ·  "
)

// Display writes session output to the terminal.
type Display struct {
	out    io.Writer
	errOut io.Writer
	st     styles
	nameOf func(code string) string
}

// New creates a display writing regular output to out and errors to errOut.
// nameOf maps country codes to display names; nil shows codes.
func New(out, errOut io.Writer, nameOf func(code string) string) *Display {
	if nameOf == nil {
		nameOf = func(code string) string { return code }
	}
	return &Display{
		out:    out,
		errOut: errOut,
		st:     newStyles(lipgloss.NewRenderer(out)),
		nameOf: nameOf,
	}
}

func (d *Display) line(w io.Writer, s string) {
	if s == "" {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, indent+s)
}

// Banner prints the session header with the active filters and key help.
func (d *Display) Banner(sel selection.Selection) {
	d.line(d.out, "")
	d.line(d.out, d.st.title.Render("📻  radiooooo"))
	d.line(d.out, d.st.subtext.Render("Music from everywhere, everywhen"))

	if filters := sel.Describe(d.nameOf); len(filters) > 0 {
		d.line(d.out, d.st.dim.Render("Filters: "+strings.Join(filters, " · ")))
	}

	d.line(d.out, "")
	d.line(d.out, d.st.subtext.Render("[n] next  [q] quit"))
	d.line(d.out, "")
}

// ShowTrack prints the card for a track that is about to play.
func (d *Display) ShowTrack(t *track.Track) {
	rule := d.st.rule.Render(strings.Repeat("─", ruleWidth))

	d.line(d.out, "")
	d.line(d.out, rule)
	d.line(d.out, d.st.artist.Render("♫ "+t.Artist))
	d.line(d.out, d.st.song.Render(t.Title))
	if t.Album != "" {
		d.line(d.out, d.st.subtext.Render(t.Album))
	}
	d.line(d.out, "")

	year := "?"
	if t.Year > 0 {
		year = fmt.Sprintf("%d", t.Year)
	}
	country := "?"
	if t.CountryCode != "" {
		country = d.nameOf(t.CountryCode)
	}
	meta := []string{
		d.st.country.Render(country),
		d.st.year.Render(year),
		d.st.moodStyle(t.Mood).Render(t.Mood.Lower()),
		d.st.subtext.Render(FormatLength(t.Duration())),
	}
	d.line(d.out, strings.Join(meta, separator))

	var credits []string
	if t.Label != "" {
		credits = append(credits, t.Label)
	}
	if t.Songwriter != "" {
		credits = append(credits, "written by "+t.Songwriter)
	}
	if len(credits) > 0 {
		d.line(d.out, d.st.dim.Render(strings.Join(credits, " · ")))
	}

	d.line(d.out, rule)
	d.line(d.out, "")
}

// NoTracks prints the notice shown when the selection matches nothing.
func (d *Display) NoTracks() {
	d.line(d.out, d.st.errorMsg.Render("No tracks found for this selection. Try different filters."))
}

// MissingAudio prints the notice shown when a track has no stream to play.
func (d *Display) MissingAudio() {
	d.line(d.out, d.st.errorMsg.Render("No audio URL found for this track."))
}

// Farewell prints the closing line of a session.
func (d *Display) Farewell() {
	d.line(d.out, "")
	d.line(d.out, d.st.dim.Render("goodbye 📻"))
	d.line(d.out, "")
}

// Error prints err with any hints attached to it.
// Ambiguous country queries list their candidates instead.
func (d *Display) Error(err error) {
	var ambiguous *directory.AmbiguousError
	if errors.As(err, &ambiguous) {
		fmt.Fprintln(d.errOut, d.st.warning.Render(fmt.Sprintf("Multiple matches for '%s':", ambiguous.Query)))
		for _, c := range ambiguous.Candidates {
			d.line(d.errOut, d.st.code.Render(c.Code)+" — "+c.Name)
		}
		if more := ambiguous.Total - len(ambiguous.Candidates); more > 0 {
			d.line(d.errOut, d.st.dim.Render(fmt.Sprintf("... and %d more", more)))
		}
		return
	}

	fmt.Fprintln(d.errOut, d.st.errorMsg.Render("Error: "+err.Error()))
	if hints := errors.FlattenHints(err); hints != "" {
		for _, h := range strings.Split(hints, "\n") {
			fmt.Fprintln(d.errOut, d.st.subtext.Render(h))
		}
	}
}

// Countries prints a titled country listing followed by its size.
func (d *Display) Countries(title string, entries []directory.Entry) {
	d.line(d.out, "")
	d.line(d.out, d.st.heading.Render(title))
	d.line(d.out, "")
	for _, e := range entries {
		d.line(d.out, d.st.code.Render(e.Code)+"  "+e.Name)
	}
	d.line(d.out, "")
	d.line(d.out, d.st.dim.Render(fmt.Sprintf("%d countries", len(entries))))
	d.line(d.out, "")
}

// FormatLength renders a track length as m:ss.
func FormatLength(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
