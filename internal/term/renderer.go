// Package term draws the game in a terminal with tcell and reads its keys.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"dinorun/internal/asset"
	"dinorun/internal/scene"
)

// Mode selects which overlay is drawn on top of the scene.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModeGameOver
)

const (
	// Visible slice of the track, in world units.
	ViewLeft  = -8.0
	ViewRight = 52.0
	// Terminal cells are roughly twice as tall as wide.
	RowsPerUnit = 2.0

	// Scenery spans this many world units across the whole screen.
	decorSpan = 2000.0
	cloudTopY = 200.0
	cloudBand = 100.0
)

var (
	groundStyle   = tcell.StyleDefault.Foreground(tcell.Color(240))
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	cloudStyle    = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	scatterStyle  = tcell.StyleDefault.Foreground(tcell.Color(137))
	scoreStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	overStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var scatterGlyphs = map[string]rune{
	asset.SmallPalmTree: 'Ψ',
	asset.BigPalmTree:   'Ψ',
	asset.Skull:         'ø',
	asset.Scorpion:      '§',
	asset.Pyramid:       '▲',
	asset.Monument:      '∏',
	asset.Cactus1:       '¥',
	asset.Cactus2:       '¥',
	asset.Cactus3:       '¥',
}

// Two-frame run cycle, drawn bottom-up from the player's feet.
var raptorFrames = [2][3]string{
	{` /\ `, `<##/`, `  _o`},
	{` |\ `, `<##/`, `  _o`},
}

type Renderer struct {
	screen  tcell.Screen
	hud     *Hud
	width   int
	height  int
	groundY int
}

func NewRenderer(screen tcell.Screen, hud *Hud) *Renderer {
	r := &Renderer{screen: screen, hud: hud}
	r.Resize()
	return r
}

// Resize picks up the current terminal size.
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.groundY = r.height - 2
}

// Column maps a track x coordinate to a screen column.
func (r *Renderer) Column(x float64) int {
	return int(math.Floor((x - ViewLeft) / (ViewRight - ViewLeft) * float64(r.width)))
}

// Row maps a height above the ground to a screen row.
func (r *Renderer) Row(y float64) int {
	return r.groundY - 1 - int(math.Floor(y*RowsPerUnit))
}

func (r *Renderer) Draw(sc *scene.Scene, mode Mode) {
	r.screen.Clear()

	var player *scene.Node
	for _, n := range sc.Nodes() {
		if !n.Visible {
			continue
		}
		switch n.Model {
		case asset.Raptor:
			player = n
		case asset.Cactus:
			r.drawObstacle(n)
		case asset.Cloud1, asset.Cloud2, asset.Cloud3:
			r.drawCloud(n)
		default:
			r.drawScatter(n)
		}
	}
	r.drawGround()
	if player != nil {
		r.drawPlayer(player)
	}
	r.drawScore()

	switch mode {
	case ModeMenu:
		r.drawMenu()
	case ModeGameOver:
		r.drawGameOver()
	}
	r.screen.Show()
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.set(x+i, y, ch, style)
	}
}

func (r *Renderer) centered(y int, s string, style tcell.Style) {
	r.text((r.width-len([]rune(s)))/2, y, s, style)
}

func (r *Renderer) drawGround() {
	for x := 0; x < r.width; x++ {
		r.set(x, r.groundY, '━', groundStyle)
	}
}

func (r *Renderer) drawObstacle(n *scene.Node) {
	b := n.WorldBounds()
	x0, x1 := r.Column(b.Min.X()), r.Column(b.Max.X())
	top, bottom := r.Row(b.Max.Y()), r.Row(b.Min.Y())
	for y := top; y <= bottom; y++ {
		for x := x0; x <= x1; x++ {
			ch := '║'
			if y == top {
				ch = '╥'
			}
			r.set(x, y, ch, obstacleStyle)
		}
	}
}

func (r *Renderer) drawPlayer(n *scene.Node) {
	b := n.WorldBounds()
	x := r.Column(b.Min.X())
	y := r.Row(b.Min.Y())
	frame := raptorFrames[int(n.Clock*8)%2]
	for i, line := range frame {
		for j, ch := range line {
			if ch != ' ' {
				r.set(x+j, y-i, ch, playerStyle)
			}
		}
	}
}

func (r *Renderer) decorColumn(x float64) int {
	return int(math.Floor(x / decorSpan * float64(r.width)))
}

func (r *Renderer) drawCloud(n *scene.Node) {
	sky := r.groundY / 3
	if sky < 1 {
		return
	}
	b := n.WorldBounds()
	y := 1 + int((cloudTopY-b.Center().Y())/cloudBand*float64(sky))
	length := 1 + int(math.Ceil(b.Size().X()/decorSpan*float64(r.width)))
	x := r.decorColumn(b.Min.X())
	for i := 0; i < length; i++ {
		r.set(x+i, y, '~', cloudStyle)
	}
}

func (r *Renderer) drawScatter(n *scene.Node) {
	ch, ok := scatterGlyphs[n.Model]
	if !ok {
		ch = '.'
	}
	x := r.decorColumn(n.WorldBounds().Center().X())
	r.set(x, r.groundY-1, ch, scatterStyle)
}

func (r *Renderer) drawScore() {
	s := r.hud.Score()
	r.text(r.width-len(s)-1, 0, s, scoreStyle)
}

func (r *Renderer) drawMenu() {
	y := r.height/2 - 3
	r.centered(y, "DINORUN", titleStyle)
	r.centered(y+2, "Press Space to start", tcell.StyleDefault)
	r.centered(y+3, "Space / Up to jump, Esc to exit", tcell.StyleDefault)
}

func (r *Renderer) drawGameOver() {
	r.centered(2, "GAME OVER", overStyle)
	r.centered(3, fmt.Sprintf("Score: %s", r.hud.FinalScore()), scoreStyle)
	r.centered(5, "Press ENTER to restart", scoreStyle)
	r.centered(6, "Press ESC to exit", scoreStyle)
}
