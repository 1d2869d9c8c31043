package term

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"dinorun/internal/asset"
	"dinorun/internal/scene"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(s tcell.Screen, w, h int) string {
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(row(s, y, w))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestProjection(t *testing.T) {
	s := newSimScreen(t, 60, 24)
	r := NewRenderer(s, NewHud())
	if c := r.Column(ViewLeft); c != 0 {
		t.Errorf("Column(ViewLeft) = %d", c)
	}
	if c := r.Column(0); c != 8 {
		t.Errorf("Column(0) = %d, want 8", c)
	}
	if c := r.Column(ViewRight); c != 60 {
		t.Errorf("Column(ViewRight) = %d", c)
	}
	if y := r.Row(0); y != 21 {
		t.Errorf("Row(0) = %d, want 21", y)
	}
	if y := r.Row(3); y != 15 {
		t.Errorf("Row(3) = %d, want 15", y)
	}
}

func TestDrawGroundScoreAndObstacle(t *testing.T) {
	const w, h = 60, 24
	s := newSimScreen(t, w, h)
	hud := NewHud()
	hud.ShowScore("00042")
	r := NewRenderer(s, hud)

	sc := scene.New()
	im := asset.NewImmediate(sc)
	var cactus *scene.Node
	if err := im.Load(asset.Cactus, func(n *scene.Node) { cactus = n }); err != nil {
		t.Fatal(err)
	}
	cactus.Position = mgl64.Vec3{20, 0, 0}
	cactus.Scale = 0.01

	r.Draw(sc, ModePlaying)

	if g := row(s, 22, w); strings.Count(g, "━") != w {
		t.Fatalf("ground row = %q", g)
	}
	if top := row(s, 0, w); !strings.Contains(top, "00042") {
		t.Fatalf("score row = %q", top)
	}
	col := r.Column(20)
	if ch, _, _, _ := s.GetContent(col, r.Row(0)); ch != '║' {
		t.Fatalf("obstacle cell = %q", ch)
	}
}

func TestHiddenNodesAreNotDrawn(t *testing.T) {
	const w, h = 60, 24
	s := newSimScreen(t, w, h)
	r := NewRenderer(s, NewHud())

	sc := scene.New()
	n := scene.NewNode(asset.Cactus, asset.DefaultCatalog()[asset.Cactus].Bounds)
	n.Position = mgl64.Vec3{20, 0, 0}
	n.Scale = 0.01
	n.Visible = false
	sc.Add(n)

	r.Draw(sc, ModePlaying)
	if strings.ContainsAny(screenText(s, w, h), "║╥") {
		t.Fatal("hidden obstacle was drawn")
	}
}

func TestDrawPlayerSprite(t *testing.T) {
	const w, h = 60, 24
	s := newSimScreen(t, w, h)
	r := NewRenderer(s, NewHud())

	sc := scene.New()
	im := asset.NewImmediate(sc)
	err := im.Load(asset.Raptor, func(n *scene.Node) {
		n.Scale = 0.0025
		n.Orientation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	})
	if err != nil {
		t.Fatal(err)
	}
	r.Draw(sc, ModePlaying)
	if !strings.Contains(screenText(s, w, h), "<##/") {
		t.Fatal("player sprite missing")
	}
}

func TestOverlays(t *testing.T) {
	const w, h = 60, 24
	s := newSimScreen(t, w, h)
	hud := NewHud()
	r := NewRenderer(s, hud)
	sc := scene.New()

	r.Draw(sc, ModeMenu)
	if !strings.Contains(screenText(s, w, h), "Press Space to start") {
		t.Fatal("menu text missing")
	}

	hud.ShowGameOver("00123")
	r.Draw(sc, ModeGameOver)
	text := screenText(s, w, h)
	if !strings.Contains(text, "GAME OVER") || !strings.Contains(text, "Score: 00123") {
		t.Fatalf("game over overlay missing:\n%s", text)
	}
}

func TestDrawSurvivesTinyScreen(t *testing.T) {
	s := newSimScreen(t, 3, 2)
	r := NewRenderer(s, NewHud())
	sc := scene.New()
	im := asset.NewImmediate(sc)
	for _, m := range []string{asset.Raptor, asset.Cactus, asset.Cloud1, asset.Pyramid} {
		if err := im.Load(m, nil); err != nil {
			t.Fatal(err)
		}
	}
	r.Draw(sc, ModeGameOver)
}

func TestDecorationPlacedFromWorldBounds(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	r := NewRenderer(s, NewHud())
	sc := scene.New()
	im := asset.NewImmediate(sc)

	if err := im.Load(asset.Cloud1, func(n *scene.Node) {
		n.Position = mgl64.Vec3{1000, 150, 0}
		n.Scale = 10
	}); err != nil {
		t.Fatal(err)
	}
	if err := im.Load(asset.Pyramid, func(n *scene.Node) {
		n.Position = mgl64.Vec3{500, 0, 0}
	}); err != nil {
		t.Fatal(err)
	}
	r.Draw(sc, ModePlaying)

	// Cloud spans x 980..1020, which is three cells starting at column 39.
	if got := row(s, 5, 80)[39:42]; got != "~~~" {
		t.Errorf("cloud row = %q", row(s, 5, 80))
	}
	if ch, _, _, _ := s.GetContent(42, 5); ch == '~' {
		t.Error("cloud drawn wider than its bounds")
	}
	if ch, _, _, _ := s.GetContent(20, 27); ch != '▲' {
		t.Errorf("pyramid glyph = %q", ch)
	}
}
