// Package visualize renders QFS search results and redundancy scores with
// gonum/plot. Plots are returned to the caller, which chooses the output
// format through (*plot.Plot).Save or (*plot.Plot).WriterTo.
package visualize

import (
	"strconv"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/YuminosukeSato/qfs/selection"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// SearchTrace plots the evaluated alpha of every search iteration together
// with the [left, right] interval it was taken from.
func SearchTrace(trace []selection.Step) (*plot.Plot, error) {
	if len(trace) == 0 {
		return nil, errors.NewModelError("visualize.SearchTrace", "empty trace", errors.ErrEmptyData)
	}

	alpha := make(plotter.XYs, len(trace))
	left := make(plotter.XYs, len(trace))
	right := make(plotter.XYs, len(trace))
	for i, s := range trace {
		x := float64(s.Iteration)
		alpha[i] = plotter.XY{X: x, Y: s.Alpha}
		left[i] = plotter.XY{X: x, Y: s.Left}
		right[i] = plotter.XY{X: x, Y: s.Right}
	}

	p := plot.New()
	p.Title.Text = "QFS alpha search"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "alpha"
	p.Y.Min, p.Y.Max = 0, 1

	l, pts, err := plotter.NewLinePoints(alpha)
	if err != nil {
		return nil, errors.Wrap(err, "visualize: alpha line")
	}
	l.Color = plotutil.Color(0)
	pts.Color = plotutil.Color(0)
	pts.Shape = plotutil.Shape(0)
	p.Add(l, pts)
	p.Legend.Add("alpha", l, pts)

	for i, bound := range []struct {
		name string
		xys  plotter.XYs
	}{{"left", left}, {"right", right}} {
		bl, err := plotter.NewLine(bound.xys)
		if err != nil {
			return nil, errors.Wrapf(err, "visualize: %s bound", bound.name)
		}
		bl.Color = plotutil.Color(i + 1)
		bl.Dashes = plotutil.Dashes(i + 1)
		p.Add(bl)
		p.Legend.Add(bound.name, bl)
	}
	return p, nil
}

// SelectedCounts plots the number of selected features per iteration against
// the target k.
func SelectedCounts(trace []selection.Step, k int) (*plot.Plot, error) {
	if len(trace) == 0 {
		return nil, errors.NewModelError("visualize.SelectedCounts", "empty trace", errors.ErrEmptyData)
	}

	counts := make(plotter.XYs, len(trace))
	for i, s := range trace {
		counts[i] = plotter.XY{X: float64(s.Iteration), Y: float64(s.Selected)}
	}

	p := plot.New()
	p.Title.Text = "Selected features per iteration"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "selected"

	l, pts, err := plotter.NewLinePoints(counts)
	if err != nil {
		return nil, errors.Wrap(err, "visualize: count line")
	}
	pts.Shape = plotutil.Shape(0)
	p.Add(l, pts)
	p.Legend.Add("selected", l, pts)

	target := plotter.NewFunction(func(float64) float64 { return float64(k) })
	target.Color = plotutil.Color(1)
	target.Dashes = plotutil.Dashes(1)
	target.XMin, target.XMax = 0, float64(trace[len(trace)-1].Iteration)
	p.Add(target)
	p.Legend.Add("k="+strconv.Itoa(k), target)
	return p, nil
}

// RedundancyHeatMap plots a square score matrix, typically the redundancy
// matrix, as a heat map with one cell per feature pair.
func RedundancyHeatMap(redundancy mat.Matrix) (*plot.Plot, error) {
	if redundancy == nil {
		return nil, errors.NewModelError("visualize.RedundancyHeatMap", "empty matrix", errors.ErrEmptyData)
	}
	r, c := redundancy.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("visualize.RedundancyHeatMap", "empty matrix", errors.ErrEmptyData)
	}
	if r != c {
		return nil, errors.NewShapeMismatchError("visualize.RedundancyHeatMap",
			"redundancy must be square", []int{r, c})
	}
	if err := errors.CheckMatrix("visualize.RedundancyHeatMap", redundancy, r, c, 0); err != nil {
		return nil, err
	}

	h := plotter.NewHeatMap(matrixGrid{redundancy}, palette.Heat(12, 1))
	// a constant matrix would give the palette a zero-width range
	if h.Min == h.Max {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = "Redundancy"
	p.X.Label.Text = "feature"
	p.Y.Label.Text = "feature"
	p.Add(h)

	names := make([]string, c)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	p.NominalX(names...)
	p.NominalY(names...)
	p.X.Padding, p.Y.Padding = 0, 0
	return p, nil
}

// matrixGrid adapts a mat.Matrix to plotter.GridXYZ with column c on the
// x axis and row r on the y axis.
type matrixGrid struct {
	m mat.Matrix
}

func (g matrixGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g matrixGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }
