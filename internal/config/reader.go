package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvReader parses the process environment into a validated Config.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	cfg.normalize()
	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotenv loads the shared parent .env without touching variables that are
// already set, then the local .env on top of everything.
func LoadDotenv(parent, local string) error {
	if err := godotenv.Load(parent); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", parent, err)
	}
	if err := godotenv.Overload(local); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", local, err)
	}
	return nil
}

// Load reads ../.env and .env into the environment and parses the result.
func Load() (*Config, error) {
	if err := LoadDotenv("../.env", ".env"); err != nil {
		return nil, err
	}
	return NewEnvReader().Read()
}
