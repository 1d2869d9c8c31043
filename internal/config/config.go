// Package config resolves runtime settings from defaults, an optional .env
// file, DINORUN_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dinorun/internal/player"
)

const EnvPrefix = "DINORUN_"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Seed        int64
	ScrollSpeed float64
	JumpMode    player.JumpMode
	FPS         int
	// KeyHold is how long a key press counts as held; terminals report
	// repeats but no releases.
	KeyHold     time.Duration
	LoadLatency time.Duration
	Sound       bool
	Debug       bool
	EnvFile     string
}

func Default() Config {
	return Config{
		Seed:        time.Now().UnixNano(),
		ScrollSpeed: 12,
		JumpMode:    player.JumpLevel,
		FPS:         60,
		KeyHold:     150 * time.Millisecond,
		Sound:       true,
		EnvFile:     ".env",
	}
}

// FrameDuration is the ticker period for the configured frame rate.
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

func (c Config) Validate() error {
	switch {
	case c.ScrollSpeed <= 0:
		return fmt.Errorf("%w: scroll speed must be positive, got %v", ErrInvalid, c.ScrollSpeed)
	case c.FPS <= 0 || c.FPS > 240:
		return fmt.Errorf("%w: fps must be in (0, 240], got %d", ErrInvalid, c.FPS)
	case c.KeyHold < 0:
		return fmt.Errorf("%w: key hold must not be negative", ErrInvalid)
	case c.LoadLatency < 0:
		return fmt.Errorf("%w: load latency must not be negative", ErrInvalid)
	}
	return nil
}

// ParseJumpMode accepts "level" or "edge".
func ParseJumpMode(s string) (player.JumpMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "level", "hold", "":
		return player.JumpLevel, nil
	case "edge", "press":
		return player.JumpEdge, nil
	}
	return player.JumpLevel, fmt.Errorf("%w: jump mode %q", ErrInvalid, s)
}

// Load builds a Config. lookup reads the process environment; tests pass
// their own. The .env file only fills variables lookup does not define.
func Load(args []string, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := Default()

	fs := flag.NewFlagSet("dinorun", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	envFile := fs.String("env-file", cfg.EnvFile, "dotenv file with DINORUN_* settings")
	seed := fs.Int64("seed", 0, "random seed (0 picks one from the clock)")
	speed := fs.Float64("speed", 0, "obstacle scroll speed in units per second")
	jump := fs.String("jump", "", "jump input mode: level or edge")
	fps := fs.Int("fps", 0, "frames per second")
	hold := fs.Duration("key-hold", 0, "how long a key press counts as held")
	latency := fs.Duration("load-latency", 0, "artificial model load latency")
	sound := fs.Bool("sound", cfg.Sound, "enable sound effects")
	debug := fs.Bool("debug", false, "write a debug log to logs/")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: parse flags: %w", err)
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg.EnvFile = *envFile
	fileVars, err := readEnvFile(cfg.EnvFile)
	if err != nil {
		return cfg, err
	}
	get := func(key string) (string, bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := fileVars[EnvPrefix+key]
		return v, ok
	}
	if err := applyEnv(&cfg, get); err != nil {
		return cfg, err
	}

	if set["seed"] {
		cfg.Seed = *seed
	}
	if set["speed"] {
		cfg.ScrollSpeed = *speed
	}
	if set["jump"] {
		if cfg.JumpMode, err = ParseJumpMode(*jump); err != nil {
			return cfg, err
		}
	}
	if set["fps"] {
		cfg.FPS = *fps
	}
	if set["key-hold"] {
		cfg.KeyHold = *hold
	}
	if set["load-latency"] {
		cfg.LoadLatency = *latency
	}
	if set["sound"] {
		cfg.Sound = *sound
	}
	if set["debug"] {
		cfg.Debug = *debug
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return vars, nil
}

func applyEnv(cfg *Config, get func(string) (string, bool)) error {
	var err error
	if v, ok := get("SEED"); ok {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return envError("SEED", err)
		}
	}
	if v, ok := get("SPEED"); ok {
		if cfg.ScrollSpeed, err = strconv.ParseFloat(v, 64); err != nil {
			return envError("SPEED", err)
		}
	}
	if v, ok := get("JUMP"); ok {
		if cfg.JumpMode, err = ParseJumpMode(v); err != nil {
			return err
		}
	}
	if v, ok := get("FPS"); ok {
		if cfg.FPS, err = strconv.Atoi(v); err != nil {
			return envError("FPS", err)
		}
	}
	if v, ok := get("KEY_HOLD"); ok {
		if cfg.KeyHold, err = time.ParseDuration(v); err != nil {
			return envError("KEY_HOLD", err)
		}
	}
	if v, ok := get("LOAD_LATENCY"); ok {
		if cfg.LoadLatency, err = time.ParseDuration(v); err != nil {
			return envError("LOAD_LATENCY", err)
		}
	}
	if v, ok := get("SOUND"); ok {
		if cfg.Sound, err = strconv.ParseBool(v); err != nil {
			return envError("SOUND", err)
		}
	}
	if v, ok := get("DEBUG"); ok {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return envError("DEBUG", err)
		}
	}
	return nil
}

func envError(key string, err error) error {
	return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
}
