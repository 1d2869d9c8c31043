// Package game drives one run: it owns the simulation context and steps the
// player, the obstacle pool and the scenery in a fixed order.
package game

import (
	"dinorun/internal/background"
	"dinorun/internal/mathutil"
	"dinorun/internal/player"
	"dinorun/internal/scene"
	"dinorun/internal/world"
)

// MaxFrameTime caps a single step so a stalled frame cannot tunnel the
// player through an obstacle.
const MaxFrameTime = 0.1

// ScoreDisplay receives the zero-padded score when it changes.
type ScoreDisplay = world.ScoreDisplay

// GameOverDisplay is told once when the run ends.
type GameOverDisplay interface {
	ShowGameOver(score string)
}

// Sounds plays gameplay cues.
type Sounds interface {
	PlayJump()
	PlayGameOver()
}

// Context is everything a session's subsystems share.
type Context struct {
	Rand   *mathutil.Rand
	Scene  *scene.Scene
	Loader world.Loader
}

func NewContext(seed int64, sc *scene.Scene, l world.Loader) *Context {
	return &Context{
		Rand:   mathutil.NewRand(seed),
		Scene:  sc,
		Loader: l,
	}
}

// Options configures a Session. Nil collaborators are ignored.
type Options struct {
	ScrollSpeed  float64
	JumpMode     player.JumpMode
	MaxFrameTime float64

	Scores   ScoreDisplay
	GameOver GameOverDisplay
	Sounds   Sounds
}

// Session is one run from start to collision.
type Session struct {
	World      *world.Manager
	Player     *player.Player
	Background *background.Background

	maxFrame float64
	started  bool
	gameOver bool
	frames   int

	gameOverUI GameOverDisplay
	sounds     Sounds
}

func NewSession(ctx *Context, opts Options) *Session {
	if opts.MaxFrameTime <= 0 {
		opts.MaxFrameTime = MaxFrameTime
	}
	w := world.NewManager(world.Options{
		ScrollSpeed: opts.ScrollSpeed,
		Rand:        ctx.Rand,
		Loader:      ctx.Loader,
		Scores:      opts.Scores,
	})

	return &Session{
		World:      w,
		Player:     player.New(ctx.Loader, w, opts.JumpMode),
		Background: background.New(ctx.Loader, ctx.Rand),
		maxFrame:   opts.MaxFrameTime,
		gameOverUI: opts.GameOver,
		sounds:     opts.Sounds,
	}
}

// Start lets Step advance the simulation.
func (s *Session) Start() { s.started = true }

func (s *Session) Started() bool  { return s.started }
func (s *Session) GameOver() bool { return s.gameOver }
func (s *Session) Frames() int    { return s.frames }

// Step advances one frame and reports whether anything was simulated.
//
// The player tests against colliders from the previous world update, so hits
// are detected one frame late. Keep the order; moving the world first changes
// outcomes near obstacle edges.
func (s *Session) Step(dt float64, in player.Input) bool {
	if !s.started || s.gameOver || dt <= 0 {
		return false
	}
	if dt > s.maxFrame {
		dt = s.maxFrame
	}

	s.Player.Update(dt, in)
	s.World.Update(dt)
	s.Background.Update(dt)
	s.frames++

	if s.Player.Jumped() && s.sounds != nil {
		s.sounds.PlayJump()
	}
	if s.Player.GameOver() && !s.gameOver {
		s.gameOver = true
		if s.gameOverUI != nil {
			s.gameOverUI.ShowGameOver(s.World.ScoreText())
		}
		if s.sounds != nil {
			s.sounds.PlayGameOver()
		}
	}
	return true
}
