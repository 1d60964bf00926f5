package feature_selection

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotScores は特徴量スコアの棒グラフを作成する
//
// 棒は ranking の順（スコアの降順）に並ぶ。names が nil の場合は
// "f<index>" をラベルに使う。NaN/Inf のスコアは描画できないためエラーになる。
func PlotScores(scores *mat.VecDense, ranking []int, names []string) (*plot.Plot, error) {
	if scores == nil || scores.Len() == 0 {
		return nil, errors.NewValueError("PlotScores", "empty scores")
	}
	n := scores.Len()
	if len(ranking) != n {
		return nil, errors.NewDimensionError("PlotScores", n, len(ranking), 0)
	}
	if names != nil && len(names) != n {
		return nil, errors.NewDimensionError("PlotScores", n, len(names), 0)
	}

	values := make(plotter.Values, n)
	labels := make([]string, n)
	for pos, idx := range ranking {
		if idx < 0 || idx >= n {
			return nil, errors.NewValueError("PlotScores", fmt.Sprintf("ranking index %d out of range", idx))
		}
		values[pos] = scores.AtVec(idx)
		if names != nil {
			labels[pos] = names[idx]
		} else {
			labels[pos] = fmt.Sprintf("f%d", idx)
		}
	}
	if err := errors.CheckNumericalStability("PlotScores", values, 0); err != nil {
		return nil, err
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bar chart")
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Title.Text = "MGFS feature scores"
	p.Y.Label.Text = "score"
	p.Y.Min = 0
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// Plot は学習済みスコアの棒グラフを作成する
func (s *MGFSSelector) Plot(names []string) (*plot.Plot, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("MGFSSelector", "Plot")
	}
	return PlotScores(s.scores_, s.ranking_, names)
}

// WritePlot は p を指定された形式（"svg", "png", "pdf" など）で w に書き出す
func WritePlot(p *plot.Plot, w io.Writer, format string, width, height vg.Length) error {
	if !(width > 0 && height > 0) {
		return errors.NewValidationError("size", "width and height must be positive", fmt.Sprintf("%vx%v", width, height))
	}
	// 描画バックエンドのpanicはエラーとして返す
	return errors.SafeExecute("WritePlot", func() error {
		wt, err := p.WriterTo(width, height, format)
		if err != nil {
			return errors.Wrapf(err, "unsupported plot format %q", format)
		}
		if _, err := wt.WriteTo(w); err != nil {
			return errors.Wrap(err, "failed to write plot")
		}
		return nil
	})
}
