package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"dinorun/internal/asset"
	"dinorun/internal/audio"
	"dinorun/internal/config"
	"dinorun/internal/game"
	"dinorun/internal/scene"
	"dinorun/internal/term"
)

const (
	logDir      = "logs"
	logFileName = "dinorun.log"
	maxLogSize  = 10 * 1024 * 1024
)

// App is the terminal front end around one session at a time.
type App struct {
	screen   tcell.Screen
	cfg      config.Config
	hud      *term.Hud
	keys     *term.Keys
	renderer *term.Renderer
	sounds   game.Sounds
	time     game.TimeProvider
	clock    *game.FrameClock

	mode    term.Mode
	runs    int
	scene   *scene.Scene
	loader  *asset.Loader
	session *game.Session
}

func NewApp(screen tcell.Screen, cfg config.Config, sounds game.Sounds, tp game.TimeProvider) *App {
	if tp == nil {
		tp = game.SystemTime{}
	}
	hud := term.NewHud()
	a := &App{
		screen:   screen,
		cfg:      cfg,
		hud:      hud,
		keys:     term.NewKeys(cfg.KeyHold),
		renderer: term.NewRenderer(screen, hud),
		sounds:   sounds,
		time:     tp,
		clock:    game.NewFrameClock(tp),
	}
	a.newRun()
	return a
}

// newRun throws away the previous session and builds a fresh one in the
// menu state. Models still loading for the old session are dropped.
func (a *App) newRun() {
	if a.loader != nil {
		a.loader.Close()
	}
	a.scene = scene.New()
	a.loader = asset.NewLoader(a.scene, asset.WithLatency(a.cfg.LoadLatency))

	ctx := game.NewContext(a.cfg.Seed+int64(a.runs), a.scene, a.loader)
	a.session = game.NewSession(ctx, game.Options{
		ScrollSpeed: a.cfg.ScrollSpeed,
		JumpMode:    a.cfg.JumpMode,
		Scores:      a.hud,
		GameOver:    a.hud,
		Sounds:      a.sounds,
	})
	a.runs++
	a.hud.Reset()
	a.keys.Reset()
	a.mode = term.ModeMenu
	log.Printf("run %d ready (seed %d)", a.runs, a.cfg.Seed+int64(a.runs-1))
}

func (a *App) start() {
	a.session.Start()
	a.clock.Reset()
	a.mode = term.ModePlaying
	if s, ok := a.sounds.(interface{ PlayStart() }); ok {
		s.PlayStart()
	}
	log.Printf("run %d started", a.runs)
}

// HandleKey reacts to one key press and reports whether the app should quit.
func (a *App) HandleKey(ev *tcell.EventKey, now time.Time) bool {
	action := a.keys.Handle(ev, now)
	if action == term.ActionQuit {
		return true
	}
	switch a.mode {
	case term.ModeMenu:
		if action == term.ActionJump || action == term.ActionConfirm {
			a.keys.Reset()
			a.start()
		}
	case term.ModeGameOver:
		if action == term.ActionConfirm {
			a.newRun()
		}
	}
	return false
}

// Frame delivers finished loads, advances the session and redraws.
func (a *App) Frame(now time.Time) {
	a.loader.Poll()
	dt := a.clock.Tick()
	if a.mode == term.ModePlaying {
		a.session.Step(dt, a.keys.Input(now))
		if a.session.GameOver() {
			a.mode = term.ModeGameOver
			log.Printf("run %d over, score %s after %d frames", a.runs, a.session.World.ScoreText(), a.session.Frames())
		}
	}
	a.renderer.Draw(a.scene, a.mode)
}

func (a *App) Run() {
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(a.cfg.FrameDuration())
	defer ticker.Stop()
	defer a.loader.Close()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.HandleKey(ev, a.time.Now()) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
				a.renderer.Resize()
			}
		case <-ticker.C:
			a.Frame(a.time.Now())
		}
	}
}

// setupLogging sends the standard logger to a file under logs/ when debug is
// set. The terminal owns stdout, so without it logs are discarded.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotateErr = os.Rename(logPath, logPath+".old")
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	if rotateErr != nil {
		log.Printf("log rotation failed, appending: %v", rotateErr)
	}
	return f
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dinorun: %v\n", err)
		os.Exit(2)
	}

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dinorun: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "dinorun: init screen: %v\n", err)
		os.Exit(1)
	}
	// Runs after screen.Fini so the trace lands on a restored terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "dinorun crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorDefault).
		Foreground(tcell.ColorWhite))
	screen.Clear()

	var sounds game.Sounds
	if cfg.Sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			sounds = sm
			defer sm.Cleanup()
		}
	}

	log.Printf("dinorun starting: speed=%v jump=%v fps=%d", cfg.ScrollSpeed, cfg.JumpMode, cfg.FPS)
	NewApp(screen, cfg, sounds, nil).Run()
}
