package visualize

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/groveml/grove/pkg/errors"
)

// LossCurve plots per-epoch training losses and saves the figure to
// path. The output format follows the file extension (.png, .svg,
// .pdf).
func LossCurve(losses []float64, path string) error {
	if len(losses) == 0 {
		return errors.NewValueError("LossCurve", "no losses to plot")
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "loss"

	pts := make(plotter.XYs, len(losses))
	for i, l := range losses {
		pts[i].X = float64(i + 1)
		pts[i].Y = l
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "building loss line")
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// FeatureImportances plots a bar chart of per-feature importance
// scores and saves it to path. Names may be nil, in which case
// features are numbered.
func FeatureImportances(importances []float64, names []string, path string) error {
	if len(importances) == 0 {
		return errors.NewValueError("FeatureImportances", "no importances to plot")
	}
	if names != nil && len(names) != len(importances) {
		return errors.NewDimensionError("FeatureImportances", len(importances), len(names), 0)
	}

	p := plot.New()
	p.Title.Text = "Feature importances"
	p.Y.Label.Text = "importance"

	bars, err := plotter.NewBarChart(plotter.Values(importances), vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	p.Add(bars)

	labels := names
	if labels == nil {
		labels = make([]string, len(importances))
		for i := range labels {
			labels[i] = "f" + strconv.Itoa(i)
		}
	}
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}
