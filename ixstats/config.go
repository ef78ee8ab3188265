package ixstats

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ixstats/engine/ixstats/atomic"
	"github.com/ixstats/engine/ixstats/clock"
	"github.com/ixstats/engine/ixstats/database"
	"github.com/ixstats/engine/ixstats/market"
	"github.com/ixstats/engine/ixstats/policy"
)

type Config struct {
	Log    LogConfig         `toml:"log"`
	DB     database.DBConfig `toml:"db"`
	Server ServerConfig      `toml:"server"`
	Clock  ClockConfig       `toml:"clock"`
	Market MarketConfig      `toml:"market"`
	Policy PolicyConfig      `toml:"policy"`
	Mongo  MongoConfig       `toml:"mongo"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	AddSource bool   `toml:"add_source"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type ClockConfig struct {
	// Epoch is RFC3339; game time is anchored here and advances Multiplier
	// times faster than real time.
	Epoch      string  `toml:"epoch"`
	Multiplier float64 `toml:"multiplier"`
}

type MarketConfig struct {
	Fees market.FeeSchedule `toml:"fees"`
}

type PolicyConfig struct {
	Impact  policy.ImpactCoefficients `toml:"impact"`
	Synergy atomic.Config             `toml:"synergy"`
}

// MongoConfig points at the legacy export for the one-shot importer. Empty
// URI disables importing.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults backfills unset sections with the compiled-in defaults so a
// minimal config file only needs [db].
func (c *Config) applyDefaults() {
	if c.Market.Fees.ListingFee == 0 {
		c.Market.Fees = market.DefaultFeeSchedule()
	}
	if c.Policy.Impact.BaseImpactDefault == 0 {
		c.Policy.Impact = policy.DefaultImpactCoefficients()
	}
	if c.Policy.Synergy.MatchThreshold == 0 {
		c.Policy.Synergy = atomic.DefaultConfig()
	}
	if c.Clock.Multiplier == 0 {
		c.Clock.Multiplier = clock.DefaultMultiplier
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

// GameClock builds the configured IxTime source.
func (c *Config) GameClock() (clock.Clock, error) {
	epoch := time.Now()
	if c.Clock.Epoch != "" {
		parsed, err := time.Parse(time.RFC3339, c.Clock.Epoch)
		if err != nil {
			return nil, fmt.Errorf("invalid clock epoch: %w", err)
		}
		epoch = parsed
	}
	return clock.NewIxClock(epoch, c.Clock.Multiplier), nil
}
