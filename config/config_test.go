package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Physics.Gravity != 80 {
		t.Errorf("expected gravity 80, got %v", cfg.Physics.Gravity)
	}
	if cfg.Evolution.PopulationSize != 100 {
		t.Errorf("expected population 100, got %d", cfg.Evolution.PopulationSize)
	}
	if len(cfg.Evolution.CrossoverSwap) != 2 {
		t.Errorf("expected 2 crossover indices, got %v", cfg.Evolution.CrossoverSwap)
	}

	want := 200.0 / 60.0
	if cfg.Derived.ScrollSpeed != want {
		t.Errorf("expected derived scroll speed %v, got %v", want, cfg.Derived.ScrollSpeed)
	}
	if cfg.Derived.PlayfieldH != 720 {
		t.Errorf("expected playfield height 720, got %v", cfg.Derived.PlayfieldH)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "evolution:\n  population_size: 8\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Evolution.PopulationSize != 8 {
		t.Errorf("expected overlay population 8, got %d", cfg.Evolution.PopulationSize)
	}
	// Untouched fields keep their defaults
	if cfg.Evolution.ScoreFactor != 10 {
		t.Errorf("expected default score factor 10, got %v", cfg.Evolution.ScoreFactor)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero population", func(c *Config) { c.Evolution.PopulationSize = 0 }, "population_size"},
		{"min gap above max gap", func(c *Config) { c.Obstacles.MinGap = 300 }, "min_gap"},
		{"gap does not fit", func(c *Config) { c.Obstacles.MaxGap = 700 }, "must fit screen.height"},
		{"mutation factor above 100", func(c *Config) { c.Evolution.MutationFactor = 101 }, "mutation_factor"},
		{"swap index out of range", func(c *Config) { c.Evolution.CrossoverSwap = []int{3} }, "out of range"},
		{"swap index repeated", func(c *Config) { c.Evolution.CrossoverSwap = []int{1, 1} }, "listed twice"},
		{"zero tick rate", func(c *Config) { c.Physics.MaxTickRate = 0 }, "max_tick_rate"},
		{"no lookahead", func(c *Config) { c.Obstacles.Lookahead = 0 }, "lookahead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Evolution.PopulationSize = 0
	cfg.Obstacles.MinGap = 300

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "population_size") || !strings.Contains(msg, "min_gap") {
		t.Errorf("expected both violations reported, got %v", msg)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	cp.Evolution.CrossoverSwap[0] = 0
	cp.Evolution.PopulationSize = 4

	if cfg.Evolution.CrossoverSwap[0] != 1 {
		t.Errorf("clone shares crossover slice with original")
	}
	if cfg.Evolution.PopulationSize != 100 {
		t.Errorf("clone mutated original population size")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Evolution.PopulationSize = 12
	path := filepath.Join(t.TempDir(), "out.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Evolution.PopulationSize != 12 {
		t.Errorf("expected population 12, got %d", loaded.Evolution.PopulationSize)
	}
}
