package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmars8047/DSMZip/internal/progress"
)

const (
	barWidth      = 30
	redrawLimit   = 50 * time.Millisecond
	maxLabelWidth = 40
)

// progressRenderer draws an overall bar and a bar for the current entry,
// redrawing both lines in place
type progressRenderer struct {
	out      io.Writer
	overall  progress.Event
	item     progress.Event
	drawn    bool
	lastDraw time.Time
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{out: out}
}

// Handle receives tracker events. Intermediate events are throttled; label
// changes and terminal events always redraw.
func (r *progressRenderer) Handle(e progress.Event) {
	var changed bool
	if e.Scope == progress.ScopeOverall {
		changed = r.overall.Label != e.Label
		r.overall = e
	} else {
		changed = r.item.Label != e.Label
		r.item = e
	}

	if !e.Done && !changed && time.Since(r.lastDraw) < redrawLimit {
		return
	}
	r.draw()
}

// Close draws the final state
func (r *progressRenderer) Close() {
	if r.drawn {
		r.draw()
		fmt.Fprintln(r.out)
	}
}

func (r *progressRenderer) draw() {
	if r.drawn {
		fmt.Fprint(r.out, "\033[2A")
	}
	fmt.Fprintf(r.out, "\033[K  %sTotal:%s  %s\n", colorGray, colorReset, renderBar(r.overall, colorGreen))
	fmt.Fprintf(r.out, "\033[K  %sEntry:%s  %s\n", colorGray, colorReset, renderBar(r.item, colorYellow))
	r.drawn = true
	r.lastDraw = time.Now()
}

func renderBar(e progress.Event, color string) string {
	filled := barWidth * e.Percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	label := e.Label
	if runes := []rune(label); len(runes) > maxLabelWidth {
		label = string(runes[:maxLabelWidth-3]) + "..."
	}

	return fmt.Sprintf("[%s%s%s] %s%3d%%%s %s%s%s",
		color, bar, colorReset, color, e.Percent, colorReset, colorGray, label, colorReset)
}
