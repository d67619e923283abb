package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

const (
	engineOpenAI = "openai"
	engineLocal  = "local"
)

type Config struct {
	InPath    string
	OutPath   string
	Pretty    bool
	Overwrite bool

	Engine string
	Model  string
	APIKey string

	RedisAddr string
	RedisTTL  time.Duration

	GiftsPath   string
	Seed        uint64
	MetricsPath string
	Verbose     bool
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	switch c.Engine {
	case engineOpenAI:
		if c.Model == "" {
			return errors.New("missing -model")
		}
	case engineLocal:
	default:
		return fmt.Errorf("unknown -engine %q (want %s or %s)", c.Engine, engineOpenAI, engineLocal)
	}
	if c.RedisTTL < 0 {
		return errors.New("redis-ttl must be >= 0")
	}
	return nil
}

// applyEnv fills settings left empty on the command line from the environment.
func (c Config) applyEnv(getenv func(string) string) Config {
	if c.APIKey == "" {
		c.APIKey = getenv("OPENAI_API_KEY")
	}
	if c.RedisAddr == "" {
		c.RedisAddr = getenv("SANTA_REDIS_ADDR")
	}
	return c
}

func defaultConfig() Config {
	return Config{
		InPath:   filepath.FromSlash("data/friends.json"),
		Engine:   engineOpenAI,
		Model:    "gpt-5-mini",
		RedisTTL: 24 * time.Hour,
	}
}
