package telemetry

// Collector accumulates agent results within a generation and produces
// GenerationStats.
type Collector struct {
	generation int
	startTick  int64
	mutations  int

	fitness   []float64
	distances []float64
	scores    []float64
	bestScore int
	retired   int

	allTimeBest int
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// StartGeneration resets the per-generation counters.
// mutations is the number of genome components mutated while breeding it.
func (c *Collector) StartGeneration(generation int, tick int64, mutations int) {
	c.generation = generation
	c.startTick = tick
	c.mutations = mutations
	c.fitness = c.fitness[:0]
	c.distances = c.distances[:0]
	c.scores = c.scores[:0]
	c.bestScore = 0
	c.retired = 0
}

// RecordDeath records the final result of one agent.
// retired marks agents ended by the tick cap rather than a collision.
func (c *Collector) RecordDeath(distance float64, score int, fitness float64, retired bool) {
	c.fitness = append(c.fitness, fitness)
	c.distances = append(c.distances, distance)
	c.scores = append(c.scores, float64(score))
	if score > c.bestScore {
		c.bestScore = score
	}
	if score > c.allTimeBest {
		c.allTimeBest = score
	}
	if retired {
		c.retired++
	}
}

// ObserveScore updates the best scores from a live agent.
// It reports whether the all-time best improved.
func (c *Collector) ObserveScore(score int) bool {
	if score > c.bestScore {
		c.bestScore = score
	}
	if score > c.allTimeBest {
		c.allTimeBest = score
		return true
	}
	return false
}

// BestScore returns the best score of the current generation so far.
func (c *Collector) BestScore() int {
	return c.bestScore
}

// AllTimeBest returns the best score across all generations.
func (c *Collector) AllTimeBest() int {
	return c.allTimeBest
}

// Flush produces GenerationStats for the current generation.
// The counters stay untouched until the next StartGeneration.
func (c *Collector) Flush(endTick int64) GenerationStats {
	fit := Summarize(c.fitness)
	dist := Summarize(c.distances)
	score := Summarize(c.scores)

	return GenerationStats{
		Generation: c.generation,
		StartTick:  c.startTick,
		EndTick:    endTick,
		Ticks:      endTick - c.startTick,

		Population: len(c.fitness),
		Retired:    c.retired,
		Mutations:  c.mutations,

		BestScore:    c.bestScore,
		AllTimeBest:  c.allTimeBest,
		ScoreMean:    score.Mean,
		DistanceMax:  dist.Max,
		DistanceMean: dist.Mean,

		FitnessMax:  fit.Max,
		FitnessMean: fit.Mean,
		FitnessStd:  fit.Std,
		FitnessP10:  fit.P10,
		FitnessP50:  fit.P50,
		FitnessP90:  fit.P90,
	}
}
