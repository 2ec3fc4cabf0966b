package renderer

import (
	"github.com/pthm-cable/hunt/components"
	"github.com/pthm-cable/hunt/systems"
)

// ANSI SGR sequences used by the terminal renderer.
const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiBold   = "\x1b[1m"
	ansiGray   = "\x1b[90m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiWhite  = "\x1b[97m"
	ansiBrown  = "\x1b[38;5;94m"
)

// glyph is one drawable cell: a single-column rune plus its colour.
type glyph struct {
	ch    rune
	color string
}

// Tile glyphs. Air is blank so animals read clearly against the sky.
var tileGlyphs = map[systems.Tile]glyph{
	systems.TileAir:   {' ', ""},
	systems.TileGrass: {'"', ansiGreen},
	systems.TileTree:  {'T', ansiBrown},
	systems.TileStone: {'o', ansiGray},
}

var kindGlyphs = map[components.Kind]glyph{
	components.KindRabbit:   {'r', ansiWhite},
	components.KindSquirrel: {'s', ansiYellow},
	components.KindWolf:     {'W', ansiBold + ansiRed},
}

var playerGlyph = glyph{'@', ansiBold + ansiYellow}

// tileGlyph returns the glyph for a terrain tile.
func tileGlyph(t systems.Tile) glyph {
	if g, ok := tileGlyphs[t]; ok {
		return g
	}
	return glyph{'?', ""}
}

// kindGlyph returns the glyph for an animal.
func kindGlyph(k components.Kind) glyph {
	if g, ok := kindGlyphs[k]; ok {
		return g
	}
	return glyph{'?', ""}
}
