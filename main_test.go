package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"dinorun/internal/config"
	"dinorun/internal/player"
	"dinorun/internal/term"
)

type fakeTime struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeTime) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// inTempDir runs the test from an empty working directory so log files land
// somewhere disposable.
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		os.Chdir(wd)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	inTempDir(t)
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("Expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("logs directory created without debug")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	inTempDir(t)
	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer f.Close()

	log.Println("Test log message")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer f.Close()

	if _, err := os.Stat(logPath + ".old"); err != nil {
		t.Errorf("Expected rotated log file: %v", err)
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log file is %d bytes", info.Size())
	}
}

func TestSetupLogging_RotationFailureIsLogged(t *testing.T) {
	inTempDir(t)
	logPath := filepath.Join(logDir, logFileName)
	// A non-empty directory in the way makes the rename fail.
	if err := os.MkdirAll(filepath.Join(logPath+".old", "keep"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected logging to fall back to the existing file")
	}
	defer f.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data[maxLogSize:]), "log rotation failed") {
		t.Error("rotation failure was not logged")
	}
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *fakeTime) {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)

	cfg := config.Default()
	cfg.Seed = 1
	cfg.JumpMode = player.JumpLevel
	ft := &fakeTime{now: time.Unix(1000, 0)}
	return NewApp(s, cfg, nil, ft), s, ft
}

func contents(s tcell.SimulationScreen) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteRune(' ')
		}
		if (i+1)%w == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestAppMenuDoesNotSimulate(t *testing.T) {
	a, s, ft := newTestApp(t)
	for i := 0; i < 5; i++ {
		ft.Advance(100 * time.Millisecond)
		a.Frame(ft.Now())
	}
	if a.session.Started() || a.session.World.Score() != 0 {
		t.Fatal("menu advanced the simulation")
	}
	if !strings.Contains(contents(s), "Press Space to start") {
		t.Fatal("menu not drawn")
	}
}

func TestAppFullRun(t *testing.T) {
	a, s, ft := newTestApp(t)
	a.loader.Wait()
	a.Frame(ft.Now())

	if a.HandleKey(key(tcell.KeyRune, ' '), ft.Now()) {
		t.Fatal("space quit the app")
	}
	if a.mode != term.ModePlaying || !a.session.Started() {
		t.Fatal("space did not start the run")
	}

	for i := 0; i < 400 && a.mode == term.ModePlaying; i++ {
		ft.Advance(100 * time.Millisecond)
		a.loader.Wait()
		a.Frame(ft.Now())
	}
	if a.mode != term.ModeGameOver {
		t.Fatal("run never ended")
	}
	if !a.hud.GameOver() || a.hud.FinalScore() == "" {
		t.Fatal("hud not told about game over")
	}
	if !strings.Contains(contents(s), "GAME OVER") {
		t.Fatal("game over overlay not drawn")
	}

	// Jumping does nothing once the run is over.
	a.HandleKey(key(tcell.KeyRune, ' '), ft.Now())
	if a.mode != term.ModeGameOver {
		t.Fatal("space left the game over screen")
	}

	old := a.session
	a.HandleKey(key(tcell.KeyEnter, 0), ft.Now())
	if a.mode != term.ModeMenu || a.session == old || a.runs != 2 {
		t.Fatal("enter did not prepare a new run")
	}
	if a.hud.GameOver() || a.hud.Score() != "00000" {
		t.Fatal("hud not reset for the new run")
	}
}

func TestAppQuit(t *testing.T) {
	a, _, ft := newTestApp(t)
	if !a.HandleKey(key(tcell.KeyEscape, 0), ft.Now()) {
		t.Fatal("escape did not quit")
	}
	if !a.HandleKey(key(tcell.KeyRune, 'q'), ft.Now()) {
		t.Fatal("q did not quit")
	}
}
