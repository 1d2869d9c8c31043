// Package world owns the scrolling obstacles: when to spawn them, how far they
// have travelled, and when they go back to the pool.
package world

import (
	"fmt"
	"log"
	"math"

	"dinorun/internal/geom"
	"dinorun/internal/mathutil"
)

// ScoreDisplay receives the formatted score whenever it changes.
type ScoreDisplay interface {
	ShowScore(text string)
}

// Options configures a Manager. Zero fields take defaults.
type Options struct {
	ScrollSpeed float64
	Rand        *mathutil.Rand
	Loader      Loader
	Scores      ScoreDisplay
}

// Manager is the obstacle pool.
type Manager struct {
	active []*Entity // spawn order; tail is the newest
	free   []*Entity // LIFO

	speed      float64
	separation float64
	score      float64
	scoreText  string

	constructed int

	rng    *mathutil.Rand
	loader Loader
	scores ScoreDisplay
}

func NewManager(opts Options) *Manager {
	if opts.ScrollSpeed <= 0 {
		opts.ScrollSpeed = DefaultScrollSpeed
	}
	if opts.Rand == nil {
		opts.Rand = mathutil.NewRand(1)
	}
	return &Manager{
		speed:      opts.ScrollSpeed,
		separation: SeparationBase,
		scoreText:  formatScore(0),
		rng:        opts.Rand,
		loader:     opts.Loader,
		scores:     opts.Scores,
	}
}

// Update runs one frame: spawn, scroll and recycle, then score.
func (m *Manager) Update(dt float64) {
	if dt < 0 {
		return
	}
	m.MaybeSpawn()
	m.Advance(dt)
	m.UpdateScore(dt)
}

// lastPosition is the x of the most recently spawned entity. An empty world
// reports SeparationBase, which guarantees the first call spawns.
func (m *Manager) lastPosition() float64 {
	if len(m.active) == 0 {
		return SeparationBase
	}
	return m.active[len(m.active)-1].Position.X()
}

// MaybeSpawn spawns a cluster once the newest entity has moved far enough
// from the spawn point. It reports whether a cluster was spawned.
func (m *Manager) MaybeSpawn() bool {
	closest := m.lastPosition()
	if math.Abs(SpawnX-closest) <= m.separation {
		return false
	}
	m.SpawnCluster()
	m.separation = m.rng.RandRange(SeparationBase, SeparationBase*SeparationSpread)
	return true
}

// SpawnCluster lays out one to three same-sized obstacles back to back.
func (m *Manager) SpawnCluster() {
	class := sizeClasses[m.rng.RandInt(0, len(sizeClasses)-1)]
	count := m.rng.RandInt(1, class.maxMembers)
	for i := 0; i < count; i++ {
		m.spawnOne(class.scale, float64(i)*ClusterUnit*class.scale)
	}
}

func (m *Manager) spawnOne(scale, offset float64) {
	var e *Entity
	if n := len(m.free); n > 0 {
		e = m.free[n-1]
		m.free[n-1] = nil
		m.free = m.free[:n-1]
		e.Show()
	} else {
		e = m.construct()
	}

	e.Orientation = geom.Yaw(m.rng.Angle())
	e.Position[0] = SpawnX + offset
	e.Scale = scale * ScaleUnit
	if e.node != nil {
		e.sync()
	}
	m.active = append(m.active, e)
}

func (m *Manager) construct() *Entity {
	m.constructed++
	if m.loader == nil {
		e, _ := NewEntity(nopLoader{})
		return e
	}
	e, err := NewEntity(m.loader)
	if err != nil {
		log.Printf("world: obstacle stays inert: %v", err)
	}
	return e
}

// Advance scrolls every active entity. Entities past DespawnX are hidden and
// moved to the free list; the rest get a fresh collider. Relative order of
// the survivors is preserved.
func (m *Manager) Advance(dt float64) {
	step := dt * m.speed
	kept := m.active[:0]
	for _, e := range m.active {
		e.Position[0] -= step
		if e.Position.X() < DespawnX {
			e.hide()
			m.free = append(m.free, e)
			continue
		}
		e.Update()
		kept = append(kept, e)
	}
	for i := len(kept); i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = kept
}

// UpdateScore accrues survival points and notifies the display when the
// visible digits change.
func (m *Manager) UpdateScore(dt float64) {
	if dt < 0 {
		return
	}
	m.score += dt * ScoreRate
	text := formatScore(m.score)
	if text == m.scoreText {
		return
	}
	m.scoreText = text
	if m.scores != nil {
		m.scores.ShowScore(text)
	}
}

func formatScore(score float64) string {
	return fmt.Sprintf("%0*d", ScoreDigits, int64(math.Round(score)))
}

// Colliders returns the active obstacles. Callers must not modify the slice.
func (m *Manager) Colliders() []*Entity { return m.active }

// Active returns the active obstacles in spawn order.
func (m *Manager) Active() []*Entity { return m.active }

// Free returns the recycled obstacles awaiting reuse.
func (m *Manager) Free() []*Entity { return m.free }

// Constructed is the number of entities ever built by this manager.
func (m *Manager) Constructed() int { return m.constructed }

func (m *Manager) Score() float64       { return m.score }
func (m *Manager) ScoreText() string    { return m.scoreText }
func (m *Manager) Separation() float64  { return m.separation }
func (m *Manager) ScrollSpeed() float64 { return m.speed }
