package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one finished generation.
type GenerationStats struct {
	Generation int   `csv:"generation"`
	StartTick  int64 `csv:"-"`
	EndTick    int64 `csv:"end_tick"`
	Ticks      int64 `csv:"ticks"` // Ticks the generation lasted

	Population int `csv:"population"`
	Retired    int `csv:"retired"` // Agents ended by the generation tick cap
	Mutations  int `csv:"mutations"`

	// Scores
	BestScore    int     `csv:"best_score"`
	AllTimeBest  int     `csv:"all_time_best"`
	ScoreMean    float64 `csv:"score_mean"`
	DistanceMax  float64 `csv:"distance_max"`
	DistanceMean float64 `csv:"distance_mean"`

	// Fitness distribution
	FitnessMax  float64 `csv:"fitness_max"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
}

// Summary holds the distribution of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize calculates mean, sample standard deviation, empirical quantiles
// and maximum of values. Returns the zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  floats.Max(sorted),
	}
	// Sample deviation is undefined for a single value
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int64("start_tick", s.StartTick),
		slog.Int64("end_tick", s.EndTick),
		slog.Int64("ticks", s.Ticks),
		slog.Int("population", s.Population),
		slog.Int("retired", s.Retired),
		slog.Int("mutations", s.Mutations),
		slog.Int("best_score", s.BestScore),
		slog.Int("all_time_best", s.AllTimeBest),
		slog.Float64("score_mean", s.ScoreMean),
		slog.Float64("distance_max", s.DistanceMax),
		slog.Float64("distance_mean", s.DistanceMean),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p10", s.FitnessP10),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"ticks", s.Ticks,
		"population", s.Population,
		"retired", s.Retired,
		"mutations", s.Mutations,
		"best_score", s.BestScore,
		"all_time_best", s.AllTimeBest,
		"distance_max", s.DistanceMax,
		"fitness_max", s.FitnessMax,
		"fitness_mean", s.FitnessMean,
		"fitness_p50", s.FitnessP50,
	)
}
