// Package config loads and validates the planner's scalar parameters and
// HTTP service settings from command-line flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jfrascon/gerona/pkg/planner"
)

// Config holds every value the service needs at startup: the six scalar
// planner parameters plus the HTTP glue settings.
type Config struct {
	SizeForward  float64 `validate:"required"`
	SizeBackward float64 `validate:"required,lt=0"`
	SizeWidth    float64 `validate:"required,gt=0"`

	BackwardPenalty float64 `validate:"required,gte=1"`
	TurnPenalty     float64 `validate:"gte=0"`
	TurningStraight float64 `validate:"gte=0"`

	ListenAddr   string `validate:"required"`
	UseRateLimit bool
	CacheTTL     time.Duration
	DBPath       string `validate:"required"`
}

// Default returns the planner's own parameter defaults plus conservative
// service settings.
func Default() *Config {
	d := planner.DefaultConfig()
	return &Config{
		SizeForward:     d.SizeForward,
		SizeBackward:    d.SizeBackward,
		SizeWidth:       d.SizeWidth,
		BackwardPenalty: d.BackwardPenalty,
		TurnPenalty:     d.TurnPenalty,
		TurningStraight: d.TurningStraight,
		ListenAddr:      ":5000",
		UseRateLimit:    false,
		CacheTTL:        24 * time.Hour,
		DBPath:          "./gerona-cache.db",
	}
}

// FromFlags parses the process's command-line flags into a Config seeded
// with Default()'s values, mirroring cmd/engine/main.go's flag.String/
// flag.Bool variable block.
func FromFlags() *Config {
	c := Default()

	flag.Float64Var(&c.SizeForward, "size-forward", c.SizeForward, "vehicle footprint extent ahead of the rear axle, metres")
	flag.Float64Var(&c.SizeBackward, "size-backward", c.SizeBackward, "vehicle footprint extent behind the rear axle, metres (negative)")
	flag.Float64Var(&c.SizeWidth, "size-width", c.SizeWidth, "vehicle footprint half-width, metres")
	flag.Float64Var(&c.BackwardPenalty, "backward-penalty", c.BackwardPenalty, "cost multiplier for driving a segment or curve backward")
	flag.Float64Var(&c.TurnPenalty, "turn-penalty", c.TurnPenalty, "fixed cost charged per direction change")
	flag.Float64Var(&c.TurningStraight, "turning-straight", c.TurningStraight, "length of the straight stub inserted at a direction change, metres")
	flag.StringVar(&c.ListenAddr, "listenaddr", c.ListenAddr, "server listen address")
	flag.BoolVar(&c.UseRateLimit, "ratelimit", c.UseRateLimit, "use rate limit")
	flag.DurationVar(&c.CacheTTL, "cache-ttl", c.CacheTTL, "path cache entry lifetime, 0 disables expiry")
	flag.StringVar(&c.DBPath, "db", c.DBPath, "path cache badger database directory")

	flag.Parse()
	return c
}

// Validate runs go-playground/validator over the struct tags above,
// mirroring pkg/server/mm_rest/handlers.go's validate.Struct usage.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// PlannerConfig projects the six scalar search parameters into the planner
// package's own Config, which knows nothing about flags or HTTP settings.
func (c *Config) PlannerConfig() planner.Config {
	return planner.Config{
		SizeForward:     c.SizeForward,
		SizeBackward:    c.SizeBackward,
		SizeWidth:       c.SizeWidth,
		BackwardPenalty: c.BackwardPenalty,
		TurnPenalty:     c.TurnPenalty,
		TurningStraight: c.TurningStraight,
	}
}
