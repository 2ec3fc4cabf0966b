// Package renderer draws game snapshots to an ANSI terminal.
package renderer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/hunt/camera"
	"github.com/pthm-cable/hunt/game"
)

// Escape sequences for frame control.
const (
	clearScreen = "\x1b[H\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// borderRows is the top and bottom frame lines around the map.
const borderRows = 2

// TerminalRenderer draws a Snapshot as a bordered character grid with HUD
// lines underneath. Lines end in CRLF so output is correct in raw mode.
type TerminalRenderer struct {
	out   *bufio.Writer
	cam   *camera.Camera
	cols  int
	rows  int
	color bool
}

// NewTerminalRenderer creates a renderer for a terminal of cols x rows
// characters. A non-positive size disables clipping.
func NewTerminalRenderer(w io.Writer, cols, rows int, color bool) *TerminalRenderer {
	return &TerminalRenderer{
		out:   bufio.NewWriter(w),
		cols:  cols,
		rows:  rows,
		color: color,
	}
}

// Resize updates the terminal dimensions.
func (r *TerminalRenderer) Resize(cols, rows int) {
	r.cols = cols
	r.rows = rows
}

// Begin hides the cursor.
func (r *TerminalRenderer) Begin() error {
	r.out.WriteString(hideCursor)
	return r.out.Flush()
}

// End restores the cursor.
func (r *TerminalRenderer) End() error {
	r.out.WriteString(ansiReset + showCursor)
	return r.out.Flush()
}

// Draw clears the screen and writes one frame.
func (r *TerminalRenderer) Draw(snap game.Snapshot, hud []string) error {
	r.out.WriteString(clearScreen)
	r.writeFrame(r.out, snap, hud)
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}

// Frame returns one frame without screen control sequences.
func (r *TerminalRenderer) Frame(snap game.Snapshot, hud []string) string {
	var sb strings.Builder
	out := bufio.NewWriter(&sb)
	r.writeFrame(out, snap, hud)
	out.Flush()
	return sb.String()
}

// viewport returns a camera sized for the snapshot and current terminal.
func (r *TerminalRenderer) viewport(snap game.Snapshot, hudLines int) *camera.Camera {
	viewW, viewH := snap.Width, snap.Height
	if r.cols > 0 {
		viewW = min(viewW, r.cols-2)
	}
	if r.rows > 0 {
		viewH = min(viewH, r.rows-borderRows-hudLines)
	}

	if r.cam == nil || r.cam.WorldW != snap.Width || r.cam.WorldH != snap.Height {
		r.cam = camera.New(viewW, viewH, snap.Width, snap.Height)
	} else {
		r.cam.Resize(viewW, viewH)
	}
	r.cam.Follow(snap.Player.Pos.X, snap.Player.Pos.Y)
	return r.cam
}

func (r *TerminalRenderer) writeFrame(out *bufio.Writer, snap game.Snapshot, hud []string) {
	cam := r.viewport(snap, len(hud))
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	w, h := maxX-minX, maxY-minY

	cells := make([][]glyph, h)
	for sy := range cells {
		cells[sy] = make([]glyph, w)
		for sx := range cells[sy] {
			wx, wy := cam.ScreenToWorld(sx, sy)
			cells[sy][sx] = tileGlyph(snap.Tiles[wy][wx])
		}
	}
	for _, e := range snap.Entities {
		if sx, sy, ok := cam.WorldToScreen(e.Pos.X, e.Pos.Y); ok && sx < w && sy < h {
			cells[sy][sx] = kindGlyph(e.Kind)
		}
	}
	// Player draws last so it is never hidden
	if sx, sy, ok := cam.WorldToScreen(snap.Player.Pos.X, snap.Player.Pos.Y); ok && sx < w && sy < h {
		cells[sy][sx] = playerGlyph
	}

	border := strings.Repeat("=", w+2)
	line(out, border)

	var row strings.Builder
	for _, cellRow := range cells {
		row.Reset()
		row.WriteByte('|')
		for _, g := range cellRow {
			r.writeGlyph(&row, g)
		}
		row.WriteByte('|')
		line(out, row.String())
	}

	line(out, border)
	for _, l := range hud {
		line(out, l)
	}
}

func (r *TerminalRenderer) writeGlyph(sb *strings.Builder, g glyph) {
	if r.color && g.color != "" {
		sb.WriteString(g.color)
		sb.WriteRune(g.ch)
		sb.WriteString(ansiReset)
		return
	}
	sb.WriteRune(g.ch)
}

func line(out *bufio.Writer, s string) {
	out.WriteString(s)
	out.WriteString("\r\n")
}
