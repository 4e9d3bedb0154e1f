package telemetry

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFitness draws best and mean fitness per generation and saves the
// chart to path. The image format follows the file extension.
func PlotFitness(history []GenerationStats, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("no generations to plot")
	}

	p := plot.New()
	p.Title.Text = "Fitness per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	best := make(plotter.XYs, len(history))
	mean := make(plotter.XYs, len(history))
	for i, s := range history {
		best[i].X = float64(s.Generation)
		best[i].Y = s.FitnessMax
		mean[i].X = float64(s.Generation)
		mean[i].Y = s.FitnessMean
	}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return err
	}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
