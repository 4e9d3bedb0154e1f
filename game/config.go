package game

import (
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/telemetry"
)

// Steps-per-update limits for the speed control.
const (
	MinStepsPerUpdate = 1
	MaxStepsPerUpdate = 10
)

// Options configures a new game.
type Options struct {
	Seed     int64
	Headless bool

	// Config to run with. Nil uses config.Cfg().
	Config *config.Config

	// Called with each finished generation's stats
	StatsCallback func(telemetry.GenerationStats)

	// Called when a live agent sets a new all-time best score
	OnNewBest func(score int)

	LogStats       bool
	OutputDir      string
	StepsPerUpdate int

	// Stop conditions, 0 = unlimited
	MaxTicks       int64
	MaxGenerations int
}

func clampSteps(n int) int {
	if n < MinStepsPerUpdate {
		return MinStepsPerUpdate
	}
	if n > MaxStepsPerUpdate {
		return MaxStepsPerUpdate
	}
	return n
}
