package evolution

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/flap/neural"
)

// RandomGenome draws a first-generation genome. Each weight is a uniform
// [0,1) sample scaled by a random integer in [-bound, bound], which spreads
// the initial population over several orders of magnitude.
func RandomGenome(rng *rand.Rand, bound int) neural.Genome {
	var g neural.Genome
	for i := range g {
		g[i] = rng.Float64() * float64(randInt(rng, -bound, bound))
	}
	return g
}

// Fitness scores a finished run.
func Fitness(distance float64, score int, distanceFactor, scoreFactor float64) float64 {
	return distance*distanceFactor + float64(score)*scoreFactor
}

// Rank returns the records stably sorted by ascending fitness.
// Equal fitness keeps recording order. The input is not modified.
func Rank(records []Record) []Record {
	ranked := make([]Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness < ranked[j].Fitness
	})
	return ranked
}

// Crossover builds two children by exchanging the swap components between
// the parents. The first child is a copy of a carrying b's swap components,
// the second a copy of b carrying a's.
func Crossover(a, b neural.Genome, swap []int) (neural.Genome, neural.Genome) {
	c1, c2 := a, b
	for _, idx := range swap {
		c1[idx], c2[idx] = b[idx], a[idx]
	}
	return c1, c2
}

// Reproduce pairs adjacent parents (0,1), (2,3), ... and emits two children
// per pair until size children exist, truncating the last pair's second
// child when needed. With an odd parent count the unpaired last parent, the
// fittest under ascending rank, is carried over as a clone. When there are
// fewer parents than size the pairing pass repeats.
func Reproduce(parents []neural.Genome, size int, swap []int) []neural.Genome {
	children := make([]neural.Genome, 0, size)
	if len(parents) == 0 {
		return children
	}

	n := len(parents)
	for len(children) < size {
		for i := 0; i+1 < n && len(children) < size; i += 2 {
			c1, c2 := Crossover(parents[i], parents[i+1], swap)
			children = append(children, c1)
			if len(children) < size {
				children = append(children, c2)
			}
		}
		if n%2 == 1 && len(children) < size {
			children = append(children, parents[n-1])
		}
	}
	return children
}

// Mutate perturbs each component independently. A component mutates when a
// [0,100) roll lands below factorPct; the offset is an integer in
// [-bound, bound]. Returns the number of mutated components.
func Mutate(rng *rand.Rand, g *neural.Genome, factorPct float64, bound int) int {
	mutated := 0
	for i := range g {
		if rng.Float64()*100 < factorPct {
			g[i] += float64(randInt(rng, -bound, bound))
			mutated++
		}
	}
	return mutated
}

// randInt returns an integer in [lo, hi], both inclusive.
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
