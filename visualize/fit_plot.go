// Package visualize renders diagnostic plots for fitted property models.
package visualize

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/property"
)

// curveResolution is the number of points used to trace the fitted curve.
const curveResolution = 200

// SaveFitDiagnostic writes a PNG scatter of the observations overlaid with
// the model's fitted curve across the observed distance range.
func SaveFitDiagnostic(path string, m *property.Model, distances, values []float64) error {
	const op = "visualize.SaveFitDiagnostic"

	if len(distances) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(distances) != len(values) {
		return errors.NewDimensionError(op, len(distances), len(values), 0)
	}

	lo, hi := distances[0], distances[0]
	points := make(plotter.XYs, len(distances))
	for i := range distances {
		points[i].X = distances[i]
		points[i].Y = values[i]
		if distances[i] < lo {
			lo = distances[i]
		}
		if distances[i] > hi {
			hi = distances[i]
		}
	}

	grid := make([]float64, curveResolution)
	step := (hi - lo) / float64(curveResolution-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	fitted, err := m.Predict(grid)
	if err != nil {
		return err
	}
	curve := make(plotter.XYs, len(grid))
	for i := range grid {
		curve[i].X = grid[i]
		curve[i].Y = fitted[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs orbital distance (degree %d)", m.Target(), m.Degree())
	p.X.Label.Text = "orbital distance (AU)"
	p.Y.Label.Text = m.Target().String()

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Wrap(err, "building fit curve")
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 220, G: 60, B: 60, A: 255}

	p.Add(plotter.NewGrid(), scatter, line)
	p.Legend.Add("samples", scatter)
	p.Legend.Add("fit", line)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}
