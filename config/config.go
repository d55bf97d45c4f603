package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"pong/game"
)

// Config is everything the server and the client read at start up.
// Precedence: defaults, then the TOML file, then environment variables.
type Config struct {
	Addr      string  `toml:"addr"`
	AIRatio   float64 `toml:"ai_ratio"`
	RNG       string  `toml:"rng"` // "reseed" or "advance"
	RepeatMs  int     `toml:"repeat_ms"`
	KeepAlive bool    `toml:"keep_alive"`
	Codec     string  `toml:"codec"`
	ServerURL string  `toml:"server_url"`
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		AIRatio:   game.DefaultAIRatio,
		RNG:       game.RNGReseed.String(),
		RepeatMs:  5,
		KeepAlive: false,
		Codec:     "json",
		ServerURL: "ws://localhost:8080/ws",
	}
}

// InitConfig loads .env style files into the environment. A missing file is
// not an error.
func InitConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no env file found", "files", files)
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}

	slog.Info("Successfully loaded environment variables")
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// Load builds a Config. path names a TOML file; when empty PONG_CONFIG is
// consulted, and with neither only defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("PONG_CONFIG")
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("read config %s: unknown keys %v", path, undecoded)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, err := GetEnvVariable("PONG_ADDR"); err == nil {
		c.Addr = v
	}
	if v, err := GetEnvVariable("PONG_AI_RATIO"); err == nil {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PONG_AI_RATIO: %w", err)
		}
		c.AIRatio = f
	}
	if v, err := GetEnvVariable("PONG_RNG"); err == nil {
		c.RNG = v
	}
	if v, err := GetEnvVariable("PONG_REPEAT_MS"); err == nil {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PONG_REPEAT_MS: %w", err)
		}
		c.RepeatMs = n
	}
	if v, err := GetEnvVariable("PONG_KEEPALIVE"); err == nil {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PONG_KEEPALIVE: %w", err)
		}
		c.KeepAlive = b
	}
	if v, err := GetEnvVariable("PONG_CODEC"); err == nil {
		c.Codec = v
	}
	if v, err := GetEnvVariable("PONG_SERVER"); err == nil {
		c.ServerURL = v
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.rngMode(); err != nil {
		return err
	}
	if c.RepeatMs <= 0 {
		return fmt.Errorf("repeat_ms must be positive, got %d", c.RepeatMs)
	}
	if c.AIRatio < 0 {
		return fmt.Errorf("ai_ratio must not be negative, got %v", c.AIRatio)
	}
	switch c.Codec {
	case "json", "proto":
	default:
		return fmt.Errorf("unknown codec %q", c.Codec)
	}
	return nil
}

func (c Config) rngMode() (game.RNGMode, error) {
	switch c.RNG {
	case "", "reseed":
		return game.RNGReseed, nil
	case "advance":
		return game.RNGAdvance, nil
	}
	return 0, fmt.Errorf("unknown rng mode %q", c.RNG)
}

// Rules returns the reducer settings. c must have passed Validate.
func (c Config) Rules() game.Rules {
	mode, _ := c.rngMode()
	return game.Rules{AIRatio: c.AIRatio, RNGMode: mode}
}

func (c Config) RepeatInterval() time.Duration {
	return time.Duration(c.RepeatMs) * time.Millisecond
}
