package evolution

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flap/neural"
)

func TestFitness(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		score    int
		df, sf   float64
		want     float64
	}{
		{"distance only", 250, 0, 1, 10, 250},
		{"score weighted", 250, 3, 1, 10, 280},
		{"zero factors", 250, 3, 0, 0, 0},
		{"fractional distance", 12.5, 1, 2, 0.5, 25.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fitness(tt.distance, tt.score, tt.df, tt.sf)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fitness(%v, %v, %v, %v) = %v, want %v", tt.distance, tt.score, tt.df, tt.sf, got, tt.want)
			}
		})
	}
}

func TestRankAscendingStable(t *testing.T) {
	records := []Record{
		{ID: 1, Fitness: 30},
		{ID: 2, Fitness: 10},
		{ID: 3, Fitness: 30},
		{ID: 4, Fitness: 20},
	}

	ranked := Rank(records)

	wantIDs := []uint32{2, 4, 1, 3}
	for i, id := range wantIDs {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d].ID = %d, want %d", i, ranked[i].ID, id)
		}
	}
	if records[0].ID != 1 {
		t.Error("Rank modified its input")
	}
}

func TestCrossover(t *testing.T) {
	a := neural.Genome{1, 2, 3}
	b := neural.Genome{10, 20, 30}

	c1, c2 := Crossover(a, b, []int{1, 2})

	if c1 != (neural.Genome{1, 20, 30}) {
		t.Errorf("c1 = %v, want [1 20 30]", c1)
	}
	if c2 != (neural.Genome{10, 2, 3}) {
		t.Errorf("c2 = %v, want [10 2 3]", c2)
	}
	if a != (neural.Genome{1, 2, 3}) || b != (neural.Genome{10, 20, 30}) {
		t.Error("Crossover modified a parent")
	}
}

func TestCrossoverNoSwapClones(t *testing.T) {
	a := neural.Genome{1, 2, 3}
	b := neural.Genome{4, 5, 6}
	c1, c2 := Crossover(a, b, nil)
	if c1 != a || c2 != b {
		t.Errorf("children = %v, %v, want clones of parents", c1, c2)
	}
}

func TestReproduceSize(t *testing.T) {
	parent := func(v float64) neural.Genome { return neural.Genome{v, v, v} }

	tests := []struct {
		name    string
		parents int
		size    int
	}{
		{"even parents even size", 4, 4},
		{"odd parents", 5, 5},
		{"odd size", 4, 3},
		{"fewer parents", 2, 7},
		{"single parent", 1, 4},
		{"more parents than size", 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parents := make([]neural.Genome, tt.parents)
			for i := range parents {
				parents[i] = parent(float64(i))
			}
			children := Reproduce(parents, tt.size, []int{1, 2})
			if len(children) != tt.size {
				t.Errorf("len(children) = %d, want %d", len(children), tt.size)
			}
		})
	}
}

func TestReproduceOddClonesFittest(t *testing.T) {
	parents := []neural.Genome{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}
	children := Reproduce(parents, 3, []int{1, 2})

	if children[0] != (neural.Genome{1, 2, 2}) {
		t.Errorf("children[0] = %v, want [1 2 2]", children[0])
	}
	if children[1] != (neural.Genome{2, 1, 1}) {
		t.Errorf("children[1] = %v, want [2 1 1]", children[1])
	}
	if children[2] != parents[2] {
		t.Errorf("children[2] = %v, want clone of fittest %v", children[2], parents[2])
	}
}

func TestReproduceEmpty(t *testing.T) {
	if got := Reproduce(nil, 5, []int{1}); len(got) != 0 {
		t.Errorf("Reproduce(nil) = %v, want empty", got)
	}
}

func TestMutateZeroFactor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := neural.Genome{1, 2, 3}
	for i := 0; i < 1000; i++ {
		if n := Mutate(rng, &g, 0, 50); n != 0 {
			t.Fatalf("Mutate with factor 0 mutated %d components", n)
		}
	}
	if g != (neural.Genome{1, 2, 3}) {
		t.Errorf("genome changed to %v", g)
	}
}

func TestMutateWithinBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const bound = 5
	for i := 0; i < 1000; i++ {
		g := neural.Genome{0, 0, 0}
		n := Mutate(rng, &g, 100, bound)
		if n != neural.NumInputs {
			t.Fatalf("Mutate with factor 100 mutated %d components, want %d", n, neural.NumInputs)
		}
		for j, w := range g {
			if w < -bound || w > bound || w != math.Trunc(w) {
				t.Fatalf("component %d = %v, want integer offset in [-%d,%d]", j, w, bound, bound)
			}
		}
	}
}

func TestRandomGenomeBound(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const bound = 100
	for i := 0; i < 1000; i++ {
		g := RandomGenome(rng, bound)
		for j, w := range g {
			if math.Abs(w) > bound {
				t.Fatalf("weight %d = %v exceeds bound %d", j, w, bound)
			}
		}
	}
}

func TestIDGeneratorUnique(t *testing.T) {
	ids := NewIDGenerator()
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		id := ids.NextID()
		if id == 0 {
			t.Fatal("NextID returned 0")
		}
		if seen[id] {
			t.Fatalf("NextID returned duplicate %d", id)
		}
		seen[id] = true
	}
}
