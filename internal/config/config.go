// Package config loads server settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting
type Config struct {
	Addr             string        `env:"ADDR" envDefault:":8080"`
	PublicURL        string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	TemplateDir      string        `env:"TEMPLATE_DIR" envDefault:"templates"`
	StaticDir        string        `env:"STATIC_DIR" envDefault:"static"`
	Debug            bool          `env:"DEBUG"`
	DiceSeed         int64         `env:"DICE_SEED"`
	FairDice         bool          `env:"FAIR_DICE"`
	TableIdleTimeout time.Duration `env:"TABLE_IDLE_TIMEOUT" envDefault:"2h"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
	QRSize           int           `env:"QR_SIZE" envDefault:"256"`
}

// Load reads the given .env files (default ".env") if present, then parses
// the environment. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
		log.Printf("config: no .env file, using process environment")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR must not be empty")
	}
	if c.TableIdleTimeout <= 0 {
		return fmt.Errorf("TABLE_IDLE_TIMEOUT must be positive, got %s", c.TableIdleTimeout)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.QRSize < 64 {
		return fmt.Errorf("QR_SIZE must be at least 64, got %d", c.QRSize)
	}
	return nil
}
