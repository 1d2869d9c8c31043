// Package player implements the runner: a vertical kinematic body that can
// jump while grounded and ends the run on its first obstacle hit.
package player

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dinorun/internal/asset"
	"dinorun/internal/geom"
	"dinorun/internal/scene"
	"dinorun/internal/world"
)

const (
	JumpImpulse      = 30.0
	Gravity          = 75.0
	TerminalVelocity = 100.0

	// The raptor model is authored facing +Z and in centimetres.
	modelScale = 0.0025
	modelYaw   = math.Pi / 2
)

// JumpMode selects how the jump signal is sampled.
type JumpMode int

const (
	// JumpLevel jumps on every grounded frame the signal is held.
	JumpLevel JumpMode = iota
	// JumpEdge jumps only on the frame the signal goes from released to held.
	JumpEdge
)

func (m JumpMode) String() string {
	switch m {
	case JumpEdge:
		return "edge"
	default:
		return "level"
	}
}

// Input is the player's control state for one frame.
type Input struct {
	Jump bool
}

// ColliderSource supplies the obstacles to test against.
type ColliderSource interface {
	Colliders() []*world.Entity
}

// Player is the runner.
type Player struct {
	position  mgl64.Vec3
	velocityY float64

	mode     JumpMode
	prevJump bool
	jumped   bool

	box      geom.AABB
	node     *scene.Node
	world    ColliderSource
	gameOver bool
}

// New creates a player at the origin and requests its representation. The
// player is inert until the representation is delivered.
func New(l world.Loader, src ColliderSource, mode JumpMode) *Player {
	p := &Player{
		mode:  mode,
		box:   geom.Empty(),
		world: src,
	}
	if l != nil {
		if err := l.Load(asset.Raptor, p.attach); err != nil {
			log.Printf("player: representation unavailable: %v", err)
		}
	}
	return p
}

func (p *Player) attach(n *scene.Node) {
	n.Scale = modelScale
	n.Orientation = geom.Yaw(modelYaw)
	n.Position = p.position
	p.node = n
}

// Grounded is derived from height; there is no stored state to drift.
func (p *Player) Grounded() bool { return p.position.Y() == 0 }

func (p *Player) PositionY() float64 { return p.position.Y() }
func (p *Player) VelocityY() float64 { return p.velocityY }
func (p *Player) GameOver() bool     { return p.gameOver }
func (p *Player) Ready() bool        { return p.node != nil }
func (p *Player) Node() *scene.Node  { return p.node }

// Box returns the bounding box from the last collision check.
func (p *Player) Box() geom.AABB { return p.box }

// Jumped reports whether the last Update started a jump.
func (p *Player) Jumped() bool { return p.jumped }

// SetState places the player, e.g. to resume a run or set up a test.
func (p *Player) SetState(y, vy float64) {
	p.position[1] = math.Max(y, 0)
	p.velocityY = math.Max(vy, -TerminalVelocity)
	if p.node != nil {
		p.node.Position = p.position
	}
}

// Update integrates one frame and, once the representation exists, checks
// for collisions. Colliders are whatever the world produced last frame.
func (p *Player) Update(dt float64, in Input) {
	p.jumped = false
	if dt < 0 {
		return
	}

	pressed := in.Jump
	if p.mode == JumpEdge {
		pressed = in.Jump && !p.prevJump
	}
	p.prevJump = in.Jump

	if pressed && p.Grounded() {
		p.velocityY = JumpImpulse
		p.jumped = true
	}

	acceleration := -Gravity * dt
	y := p.position.Y() + dt*(p.velocityY+acceleration*0.5)
	p.position[1] = math.Max(y, 0)

	p.velocityY = math.Max(p.velocityY+acceleration, -TerminalVelocity)

	if p.node != nil {
		p.node.Advance(dt)
		p.node.Position = p.position
		p.CheckCollisions()
	}
}

// CheckCollisions latches game over on the first overlapping obstacle.
func (p *Player) CheckCollisions() {
	if p.node == nil {
		return
	}
	p.box = p.node.WorldBounds()
	if p.world == nil {
		return
	}
	for _, c := range p.world.Colliders() {
		if c.Collider().Intersects(p.box) {
			p.gameOver = true
			return
		}
	}
}
