// Package chart renders the projected precipitation series as a PNG line
// chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	minSize = 200
	maxSize = 4096
)

// ErrInvalidSize is returned for dimensions outside [200, 4096].
var ErrInvalidSize = errors.New("chart size out of range")

// Renderer draws line charts with go-chart.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderPNG draws series over the fixed axis. Points with a NaN year or
// total are left out.
func (r *Renderer) RenderPNG(series []domain.SeriesPoint, axis domain.ChartAxis, width, height int) ([]byte, error) {
	return r.renderLine(series, axis, "", width, height)
}

func (r *Renderer) renderLine(series []domain.SeriesPoint, axis domain.ChartAxis, title string, width, height int) ([]byte, error) {
	if width < minSize || width > maxSize || height < minSize || height > maxSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	xs, ys := plotPoints(series)
	yMin, yMax := valueRange(ys)

	line := gochart.ContinuousSeries{
		Name:    axis.SeriesLabel,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: drawing.ColorFromHex("4bc0c0"),
			StrokeWidth: 2,
			DotColor:    drawing.ColorFromHex("4bc0c0"),
			DotWidth:    2,
		},
	}
	switch len(xs) {
	case 0:
		// go-chart needs at least one series with data.
		line.XValues = []float64{axis.Min, axis.Max}
		line.YValues = []float64{yMin, yMin}
		line.Style = gochart.Style{StrokeColor: drawing.ColorTransparent}
	case 1:
		line.XValues = []float64{xs[0], xs[0]}
		line.YValues = []float64{ys[0], ys[0]}
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  axis.XLabel,
			Range: &gochart.ContinuousRange{Min: axis.Min, Max: axis.Max},
			Ticks: yearTicks(axis),
		},
		YAxis: gochart.YAxis{
			Name:  axis.YLabel,
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []gochart.Series{line},
	}
	if len(xs) > 0 {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	r.logger.Debug("chart rendered", "points", len(xs), "width", width, "height", height, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// plotPoints returns the drawable coordinates of series in input order.
func plotPoints(series []domain.SeriesPoint) (xs, ys []float64) {
	xs = make([]float64, 0, len(series))
	ys = make([]float64, 0, len(series))
	for _, p := range series {
		if math.IsNaN(p.Year) || math.IsNaN(p.Total) || math.IsInf(p.Total, 0) {
			continue
		}
		xs = append(xs, p.Year)
		ys = append(ys, p.Total)
	}
	return xs, ys
}

// valueRange pads the span of ys by 5% on each side. A flat or empty series
// gets a unit-wide range around its value.
func valueRange(ys []float64) (lo, hi float64) {
	if len(ys) == 0 {
		return 0, 1
	}
	lo, hi = ys[0], ys[0]
	for _, v := range ys[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo == 0 {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// maxYearTicks bounds the tick slice for very wide year ranges.
const maxYearTicks = 200

// yearTicks places a tick on every step of the axis and labels the ends and
// every tenth step. Ranges wider than maxYearTicks steps switch to a coarser
// 1/2/5 step.
func yearTicks(axis domain.ChartAxis) []gochart.Tick {
	span := axis.Max - axis.Min
	if math.IsNaN(span) || math.IsInf(span, 0) || span < 0 {
		return nil
	}
	step := axis.Step
	if step <= 0 {
		step = 1
	}
	if span/step > maxYearTicks-1 {
		step = niceStep(span / (maxYearTicks - 1))
	}

	n := int(math.Floor(span/step)) + 1
	labelEvery := step * 10
	ticks := make([]gochart.Tick, 0, n)
	for i := range n {
		v := axis.Min + float64(i)*step
		var label string
		if i == 0 || i == n-1 || math.Mod(v, labelEvery) == 0 {
			label = strconv.FormatFloat(v, 'f', -1, 64)
		}
		ticks = append(ticks, gochart.Tick{Value: v, Label: label})
	}
	return ticks
}

// niceStep returns the smallest 1, 2 or 5 times a power of ten that is at
// least x.
func niceStep(x float64) float64 {
	base := math.Pow(10, math.Floor(math.Log10(x)))
	for _, m := range []float64{1, 2, 5} {
		if m*base >= x {
			return m * base
		}
	}
	return 10 * base
}
