package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/telemetry"
)

func TestParamVectorDefaultsWithinBounds(t *testing.T) {
	pv := NewParamVector()
	for _, spec := range pv.Specs {
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestParamVectorNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: roundtrip %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestApplyToConfigClampsAndRounds(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{1000, -5, 12.6, 40, 0})

	if cfg.Evolution.PopulationSize != 300 {
		t.Errorf("PopulationSize = %d, want 300", cfg.Evolution.PopulationSize)
	}
	if cfg.Evolution.MutationFactor != 0 {
		t.Errorf("MutationFactor = %v, want 0", cfg.Evolution.MutationFactor)
	}
	if cfg.Evolution.MutationBound != 13 {
		t.Errorf("MutationBound = %d, want 13", cfg.Evolution.MutationBound)
	}
	if cfg.Evolution.ScoreFactor != 40 {
		t.Errorf("ScoreFactor = %v, want 40", cfg.Evolution.ScoreFactor)
	}
	if cfg.Evolution.InitialWeightBound != 1 {
		t.Errorf("InitialWeightBound = %d, want 1", cfg.Evolution.InitialWeightBound)
	}
	if err := cfg.Refresh(); err != nil {
		t.Errorf("applied config is invalid: %v", err)
	}
}

func TestComputeFitnessUsesTail(t *testing.T) {
	var gens []telemetry.GenerationStats
	for i := 1; i <= 8; i++ {
		gens = append(gens, telemetry.GenerationStats{Generation: i, DistanceMax: float64(i * 100)})
	}
	// Last five: 400..800, mean 600
	if got := computeFitness(gens); got != -600 {
		t.Errorf("computeFitness = %v, want -600", got)
	}
	if got := computeFitness(nil); got != 0 {
		t.Errorf("computeFitness(nil) = %v, want 0", got)
	}
}
