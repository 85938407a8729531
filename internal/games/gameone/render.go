package gameone

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/sim"
)

type glyph struct {
	r rune
	c core.Color
}

var terrainGlyphs = map[byte]glyph{
	'G': {'.', core.ColorGreen},
	'W': {'≈', core.ColorBlue},
	'w': {'~', core.ColorBrightBlue},
	'H': {'n', core.ColorOrange},
	'M': {'^', core.ColorGray},
	'S': {':', core.ColorYellow},
	'I': {'-', core.ColorWhite},
	'L': {'~', core.ColorRed},
}

var itemGlyphs = map[byte]glyph{
	'@':  {'♣', core.ColorBrightGreen},
	'#':  {'#', core.ColorOrange},
	'-':  {'-', core.ColorOrange},
	'|':  {'|', core.ColorOrange},
	'/':  {'/', core.ColorOrange},
	'\\': {'\\', core.ColorOrange},
}

var (
	openGlyph       = glyph{'.', core.ColorGreen}
	playerGlyph     = glyph{'@', core.ColorBrightMagenta}
	deadPlayerGlyph = glyph{'x', core.ColorGray}
	deadEnemyGlyph  = glyph{'%', core.ColorGray}
	enemyColor      = core.ColorBrightRed
	energyFullRune  = '■'
	energyEmptyRune = '□'
	livesRune       = '♥'
)

// Render draws the map, the actors and the HUD.
func (g *Game) Render(dst *core.Screen) {
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	columns, rows := g.arena.Columns(), g.arena.Rows()
	ox := (dst.Width() - columns) / 2
	oy := 2

	dst.DrawTextCentered(0, fmt.Sprintf("%s: %s", g.Title(), g.levelName))
	dst.DrawBox(core.NewRect(ox-1, oy-1, columns+2, rows+2))

	for y := range rows {
		for x := range columns {
			gl := g.tileGlyph(x, y)
			dst.SetColored(ox+x, oy+y, gl.r, gl.c)
		}
	}

	// Corpses first so living actors sharing a cell stay visible.
	actors := g.arena.Actors()
	for _, a := range actors {
		if !a.IsAlive() {
			gl := actorGlyph(a)
			dst.SetColored(ox+a.X(), oy+a.Y(), gl.r, gl.c)
		}
	}
	for _, a := range actors {
		if a.IsAlive() {
			gl := actorGlyph(a)
			dst.SetColored(ox+a.X(), oy+a.Y(), gl.r, gl.c)
		}
	}

	g.renderHUD(dst, oy+rows+1)
}

func (g *Game) tileGlyph(x, y int) glyph {
	if g.tiles == nil {
		return openGlyph
	}
	tile := g.tiles.Tile(x, y)
	if gl, ok := itemGlyphs[tile.Item.Code]; ok && tile.Item.Valid() {
		return gl
	}
	if gl, ok := terrainGlyphs[tile.Terrain.Code]; ok {
		return gl
	}
	return openGlyph
}

func actorGlyph(a *sim.Actor) glyph {
	switch {
	case a.Kind() == sim.KindPlayer && a.IsAlive():
		return playerGlyph
	case a.Kind() == sim.KindPlayer:
		return deadPlayerGlyph
	case !a.IsAlive():
		return deadEnemyGlyph
	}
	r, _ := utf8.DecodeRuneInString(a.Name())
	return glyph{unicode.ToUpper(r), enemyColor}
}

func (g *Game) renderHUD(dst *core.Screen, y int) {
	p := g.arena.Player()
	x := (dst.Width() - g.arena.Columns()) / 2
	x = max(0, min(x, dst.Width()-40))

	energy := strings.Repeat(string(energyFullRune), p.Energy()) +
		strings.Repeat(string(energyEmptyRune), p.MaximumEnergy()-p.Energy())
	dst.DrawText(x, y, "Energy ")
	dst.DrawTextColored(x+7, y, energy, core.ColorYellow)
	lives := fmt.Sprintf("Lives %s", strings.Repeat(string(livesRune), p.Lives()))
	dst.DrawTextColored(x+8+len([]rune(energy)), y, lives, core.ColorRed)

	alive := 0
	for _, e := range g.arena.Enemies() {
		if e.IsAlive() {
			alive++
		}
	}
	dst.DrawText(x, y+1, fmt.Sprintf("Score %d  Enemies %d/%d", g.score, alive, len(g.arena.Enemies())))

	dst.DrawTextCentered(y+2, g.statusLine())
}

func (g *Game) statusLine() string {
	p := g.arena.Player()
	switch {
	case g.won:
		return "All enemies defeated! Press R to play again"
	case g.gameOver:
		return "Game over. Press R to restart"
	case g.paused:
		return "Paused. Press P to resume"
	case !p.IsAlive():
		return "You lost a life. Press R to respawn"
	case !g.arena.Driver().Running():
		return "Move to wake the enemies"
	default:
		return ""
	}
}
