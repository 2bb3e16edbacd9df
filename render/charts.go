package render

import (
	"bytes"
	"math"

	"emperror.dev/errors"
	"github.com/wcharczuk/go-chart/v2"
)

const ErrNotEnoughData = errors.Sentinel("not enough data to draw a chart")

// PieChart renders a pie chart as a PNG image.
// Labels and values must have the same length, and at least one value must be positive.
func PieChart(title string, labels []string, values []int) ([]byte, error) {
	if len(labels) != len(values) {
		return nil, errors.New("labels and values have different lengths")
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 600,
	}

	for i := range values {
		if values[i] <= 0 {
			continue
		}
		pie.Values = append(pie.Values, chart.Value{Label: labels[i], Value: float64(values[i])})
	}
	if len(pie.Values) == 0 {
		return nil, ErrNotEnoughData
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering pie chart")
	}
	return buf.Bytes(), nil
}

// LineChart renders a line chart with one point per label as a PNG image.
// At least two points are needed.
func LineChart(title, xName, yName string, labels []string, values []int) ([]byte, error) {
	if len(labels) != len(values) {
		return nil, errors.New("labels and values have different lengths")
	}
	if len(values) < 2 {
		return nil, ErrNotEnoughData
	}

	var (
		xs    = make([]float64, len(values))
		ys    = make([]float64, len(values))
		ticks = make([]chart.Tick, len(values))
		top   float64
	)
	for i, v := range values {
		xs[i] = float64(i)
		ys[i] = float64(v)
		ticks[i] = chart.Tick{Value: float64(i), Label: labels[i]}
		top = math.Max(top, float64(v))
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name:  xName,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(top*1.1, 1)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: 3,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering line chart")
	}
	return buf.Bytes(), nil
}
