package telemetry

import "testing"

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	c.StartGeneration(3, 1000, 2)

	c.RecordDeath(100, 0, 100, false)
	c.RecordDeath(700, 1, 710, false)
	c.RecordDeath(1300, 2, 1320, true)

	s := c.Flush(1300)

	if s.Generation != 3 {
		t.Errorf("Generation = %d, want 3", s.Generation)
	}
	if s.Ticks != 300 {
		t.Errorf("Ticks = %d, want 300", s.Ticks)
	}
	if s.Population != 3 {
		t.Errorf("Population = %d, want 3", s.Population)
	}
	if s.Retired != 1 {
		t.Errorf("Retired = %d, want 1", s.Retired)
	}
	if s.Mutations != 2 {
		t.Errorf("Mutations = %d, want 2", s.Mutations)
	}
	if s.BestScore != 2 || s.AllTimeBest != 2 {
		t.Errorf("BestScore/AllTimeBest = %d/%d, want 2/2", s.BestScore, s.AllTimeBest)
	}
	if s.FitnessMax != 1320 {
		t.Errorf("FitnessMax = %v, want 1320", s.FitnessMax)
	}
	if s.DistanceMax != 1300 {
		t.Errorf("DistanceMax = %v, want 1300", s.DistanceMax)
	}
	if s.ScoreMean != 1 {
		t.Errorf("ScoreMean = %v, want 1", s.ScoreMean)
	}
}

func TestCollectorAllTimeBestSurvivesGenerations(t *testing.T) {
	c := NewCollector()
	c.StartGeneration(1, 0, 0)
	c.RecordDeath(500, 5, 550, false)
	c.Flush(10)

	c.StartGeneration(2, 10, 0)
	c.RecordDeath(200, 1, 210, false)
	s := c.Flush(20)

	if s.BestScore != 1 {
		t.Errorf("BestScore = %d, want 1", s.BestScore)
	}
	if s.AllTimeBest != 5 {
		t.Errorf("AllTimeBest = %d, want 5", s.AllTimeBest)
	}
	if s.Population != 1 {
		t.Errorf("Population = %d, want 1 after reset", s.Population)
	}
}

func TestCollectorObserveScore(t *testing.T) {
	c := NewCollector()
	c.StartGeneration(1, 0, 0)

	if !c.ObserveScore(1) {
		t.Error("first point should improve the all-time best")
	}
	if c.ObserveScore(1) {
		t.Error("equal score should not count as an improvement")
	}
	if c.BestScore() != 1 {
		t.Errorf("BestScore = %d, want 1", c.BestScore())
	}
}
