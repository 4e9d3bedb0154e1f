// Package evolution implements the genetic algorithm that breeds controller
// genomes between generations: seeding, fitness recording, rank selection,
// adjacent-pair crossover and sparse mutation.
package evolution

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
)

// Params holds genetic algorithm parameters.
type Params struct {
	PopulationSize     int
	MutationFactor     float64 // percent chance per component
	MutationBound      int
	DistanceFactor     float64
	ScoreFactor        float64
	InitialWeightBound int
	CrossoverSwap      []int
}

// ParamsFromConfig extracts evolution parameters from the configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	evo := cfg.Evolution
	return Params{
		PopulationSize:     evo.PopulationSize,
		MutationFactor:     evo.MutationFactor,
		MutationBound:      evo.MutationBound,
		DistanceFactor:     evo.DistanceFactor,
		ScoreFactor:        evo.ScoreFactor,
		InitialWeightBound: evo.InitialWeightBound,
		CrossoverSwap:      append([]int(nil), evo.CrossoverSwap...),
	}
}

// ErrEmptyPopulation is returned for a non-positive population size.
var ErrEmptyPopulation = errors.New("evolution: population size must be positive")

// Phase is the engine's position in the generation cycle.
type Phase uint8

const (
	PhaseSeeding Phase = iota
	PhaseEvaluating
	PhaseSelecting
	PhaseReproducing
)

func (p Phase) String() string {
	switch p {
	case PhaseSeeding:
		return "seeding"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseSelecting:
		return "selecting"
	case PhaseReproducing:
		return "reproducing"
	}
	return "unknown"
}

// Member is one agent of a generation.
type Member struct {
	ID     uint32
	Genome neural.Genome
}

// Record is the final result of one agent.
type Record struct {
	ID       uint32
	Genome   neural.Genome
	Distance float64
	Score    int
	Fitness  float64
}

// Engine maintains the population across generations.
type Engine struct {
	params Params
	rng    *rand.Rand
	ids    *IDGenerator

	generation int
	phase      Phase

	// Genomes of the current generation by agent ID
	population map[uint32]neural.Genome

	// Results in recording order; discarded once the next generation exists
	records  []Record
	recorded map[uint32]struct{}

	lastMutations int
}

// NewEngine creates an engine. A non-positive population size is a
// configuration error.
func NewEngine(params Params, rng *rand.Rand) (*Engine, error) {
	if params.PopulationSize <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrEmptyPopulation, params.PopulationSize)
	}
	for _, idx := range params.CrossoverSwap {
		if idx < 0 || idx >= neural.NumInputs {
			return nil, fmt.Errorf("evolution: crossover index %d out of range [0,%d)", idx, neural.NumInputs)
		}
	}
	return &Engine{
		params:     params,
		rng:        rng,
		ids:        NewIDGenerator(),
		phase:      PhaseSeeding,
		population: make(map[uint32]neural.Genome),
		recorded:   make(map[uint32]struct{}),
	}, nil
}

// FirstGeneration seeds a population of random genomes.
func (e *Engine) FirstGeneration() []Member {
	e.phase = PhaseSeeding
	genomes := make([]neural.Genome, e.params.PopulationSize)
	for i := range genomes {
		genomes[i] = RandomGenome(e.rng, e.params.InitialWeightBound)
	}
	e.lastMutations = 0
	return e.install(genomes)
}

// RecordFitness stores the final fitness of an agent and returns it.
// Each agent of the current generation is recorded exactly once; recording
// an unknown or already recorded agent panics.
func (e *Engine) RecordFitness(id uint32, distance float64, score int) float64 {
	genome, ok := e.population[id]
	if !ok {
		panic(fmt.Sprintf("evolution: fitness recorded for unknown agent %d", id))
	}
	if _, dup := e.recorded[id]; dup {
		panic(fmt.Sprintf("evolution: fitness recorded twice for agent %d", id))
	}

	fitness := Fitness(distance, score, e.params.DistanceFactor, e.params.ScoreFactor)
	e.recorded[id] = struct{}{}
	e.records = append(e.records, Record{
		ID:       id,
		Genome:   genome,
		Distance: distance,
		Score:    score,
		Fitness:  fitness,
	})
	return fitness
}

// NextGeneration ranks the recorded agents, breeds and mutates the next
// population and installs it. With no records it falls back to a fresh
// first generation.
func (e *Engine) NextGeneration() []Member {
	e.phase = PhaseSelecting
	ranked := Rank(e.records)
	if len(ranked) == 0 {
		return e.FirstGeneration()
	}

	e.phase = PhaseReproducing
	parents := make([]neural.Genome, len(ranked))
	for i, r := range ranked {
		parents[i] = r.Genome
	}
	children := Reproduce(parents, e.params.PopulationSize, e.params.CrossoverSwap)

	mutations := 0
	for i := range children {
		mutations += Mutate(e.rng, &children[i], e.params.MutationFactor, e.params.MutationBound)
	}
	e.lastMutations = mutations

	e.phase = PhaseSeeding
	return e.install(children)
}

// install replaces the current population and clears the records.
func (e *Engine) install(genomes []neural.Genome) []Member {
	e.population = make(map[uint32]neural.Genome, len(genomes))
	e.records = nil
	e.recorded = make(map[uint32]struct{}, len(genomes))

	members := make([]Member, len(genomes))
	for i, g := range genomes {
		id := e.ids.NextID()
		e.population[id] = g
		members[i] = Member{ID: id, Genome: g}
	}

	e.generation++
	e.phase = PhaseEvaluating
	return members
}

// Genome returns the genome of a current-generation agent.
func (e *Engine) Genome(id uint32) (neural.Genome, bool) {
	g, ok := e.population[id]
	return g, ok
}

// Records returns a copy of the results recorded so far this generation.
func (e *Engine) Records() []Record {
	out := make([]Record, len(e.records))
	copy(out, e.records)
	return out
}

// Pending returns the number of current-generation agents without a record.
func (e *Engine) Pending() int {
	return len(e.population) - len(e.records)
}

// Generation returns the 1-based number of the current generation,
// or 0 before seeding.
func (e *Engine) Generation() int {
	return e.generation
}

// Phase returns the engine's position in the generation cycle.
func (e *Engine) Phase() Phase {
	return e.phase
}

// LastMutations returns how many components mutated when the current
// generation was bred.
func (e *Engine) LastMutations() int {
	return e.lastMutations
}

// Params returns the engine parameters.
func (e *Engine) Params() Params {
	return e.params
}
