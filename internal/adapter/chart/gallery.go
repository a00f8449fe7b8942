package chart

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	histogramBins = 20

	wideWidth     = 1000
	wideHeight    = 500
	compactWidth  = 600
	compactHeight = 400

	totalMMLabel = "Precipitación Total (mm)"
)

var (
	barColor     = drawing.ColorFromHex("9966ff")
	driestColor  = drawing.ColorFromHex("36a2eb")
	wettestColor = drawing.ColorFromHex("4bc0c0")
	boxFill      = drawing.ColorFromHex("c9e7e7")
)

// Gallery renders the static analysis images of a report and writes them
// under a directory, one PNG per gallery id.
type Gallery struct {
	renderer *Renderer
	dir      string
	logger   *slog.Logger
}

// NewGallery creates a Gallery writing into dir.
func NewGallery(renderer *Renderer, dir string, logger *slog.Logger) *Gallery {
	return &Gallery{renderer: renderer, dir: dir, logger: logger}
}

// Render draws every gallery image for report, keyed by gallery id.
func (g *Gallery) Render(report *domain.Report) (map[string][]byte, error) {
	draw := map[string]func(*domain.Report) ([]byte, error){
		"precipitation_trend":        g.trend,
		"annual_variation_rate":      g.variation,
		"extreme_years":              g.extremes,
		"precipitation_distribution": g.distribution,
		"precipitation_variability":  g.variability,
	}

	out := make(map[string][]byte, len(draw))
	for _, id := range domain.GalleryIDs() {
		fn, ok := draw[id]
		if !ok {
			return nil, fmt.Errorf("no renderer for gallery image %q", id)
		}
		img, err := fn(report)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		out[id] = img
	}
	return out, nil
}

// WriteAll renders the gallery and writes each image to the file named by
// its gallery path. It returns the written paths in gallery order.
func (g *Gallery) WriteAll(report *domain.Report) ([]string, error) {
	images, err := g.Render(report)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery dir: %w", err)
	}

	written := make([]string, 0, len(images))
	for _, id := range domain.GalleryIDs() {
		dest := filepath.Join(g.dir, path.Base(domain.GalleryImage(id)))
		if err := os.WriteFile(dest, images[id], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", dest, err)
		}
		written = append(written, dest)
	}
	g.logger.Debug("gallery written", "run_id", report.RunID, "dir", g.dir, "images", len(written))
	return written, nil
}

// Publish writes the gallery for a fresh report. It lets the pipeline
// refresh the images after every run.
func (g *Gallery) Publish(_ context.Context, report *domain.Report) error {
	_, err := g.WriteAll(report)
	return err
}

func (g *Gallery) trend(report *domain.Report) ([]byte, error) {
	axis := domain.ChartAxisFor(report.YearRange)
	axis.YLabel = totalMMLabel
	return g.renderer.renderLine(report.Series, axis, "Precipitación Anual", wideWidth, wideHeight)
}

func (g *Gallery) variation(report *domain.Report) ([]byte, error) {
	points := make([]domain.SeriesPoint, len(report.Variation))
	for i, v := range report.Variation {
		points[i] = domain.SeriesPoint{Year: v.Year, Total: v.Percent}
	}
	axis := domain.ChartAxisFor(report.YearRange)
	axis.YLabel = "Tasa de Variación (%)"
	axis.SeriesLabel = "Tasa de Variación"
	return g.renderer.renderLine(points, axis, "Tasa de Variación Anual de la Precipitación", wideWidth, wideHeight)
}

func (g *Gallery) extremes(report *domain.Report) ([]byte, error) {
	ext := report.Extremes
	if ext == nil {
		return g.placeholder(report, "Extremos de Precipitación")
	}
	bars := []gochart.Value{
		{Label: "Año más seco (" + yearLabel(ext.Driest.Year) + ")", Value: ext.Driest.Total, Style: barStyle(driestColor)},
		{Label: "Año más lluvioso (" + yearLabel(ext.Wettest.Year) + ")", Value: ext.Wettest.Total, Style: barStyle(wettestColor)},
	}
	return renderBars("Extremos de Precipitación", bars, compactWidth, compactHeight)
}

func (g *Gallery) distribution(report *domain.Report) ([]byte, error) {
	bins := domain.Histogram(domain.FiniteTotals(report.Series), histogramBins)
	if len(bins) == 0 {
		return g.placeholder(report, "Distribución de la Precipitación Anual")
	}
	bars := make([]gochart.Value, len(bins))
	for i, b := range bins {
		bars[i] = gochart.Value{
			Label: strconv.FormatFloat(math.Round((b.Lo+b.Hi)/2), 'f', -1, 64),
			Value: float64(b.Count),
			Style: barStyle(barColor),
		}
	}
	return renderBars("Distribución de la Precipitación Anual", bars, wideWidth, wideHeight)
}

func (g *Gallery) variability(report *domain.Report) ([]byte, error) {
	box, ok := domain.Box(domain.FiniteTotals(report.Series))
	if !ok {
		return g.placeholder(report, "Variabilidad de la Precipitación Anual")
	}
	lo, hi := valueRange([]float64{box.Min, box.Max})

	// go-chart has no box plot; an invisible series fixes the ranges and the
	// box is drawn as an element over the plot area.
	frame := gochart.ContinuousSeries{
		XValues: []float64{0, 1},
		YValues: []float64{lo, hi},
		Style:   gochart.Style{StrokeColor: drawing.ColorTransparent},
	}
	ch := gochart.Chart{
		Title:      "Variabilidad de la Precipitación Anual",
		Width:      compactWidth,
		Height:     compactHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
			Ticks: []gochart.Tick{{Value: 0}, {Value: 0.5, Label: "Precipitación Total"}, {Value: 1}},
		},
		YAxis: gochart.YAxis{
			Name:  totalMMLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series:   []gochart.Series{frame},
		Elements: []gochart.Renderable{boxPlot(box, lo, hi)},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render box plot: %w", err)
	}
	return buf.Bytes(), nil
}

// placeholder renders an empty framed chart for reports without numeric
// totals.
func (g *Gallery) placeholder(report *domain.Report, title string) ([]byte, error) {
	return g.renderer.renderLine(nil, domain.ChartAxisFor(report.YearRange), title, compactWidth, compactHeight)
}

func renderBars(title string, bars []gochart.Value, width, height int) ([]byte, error) {
	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.Value
	}
	lo, hi := barRange(values)

	usable := width - 120
	barWidth := max(4, usable*2/(3*len(bars)))
	bc := gochart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: max(2, usable/len(bars)-barWidth),
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// barRange always includes zero so bars grow from the baseline, and pads the
// top by 5%.
func barRange(values []float64) (lo, hi float64) {
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return lo, lo + 1
	}
	return lo, hi + (hi-lo)*0.05
}

// boxPlot draws the five-number summary centred in the plot area, with the
// y axis spanning [lo, hi].
func boxPlot(box domain.BoxStats, lo, hi float64) gochart.Renderable {
	return func(r gochart.Renderer, canvas gochart.Box, _ gochart.Style) {
		y := func(v float64) int {
			return canvas.Bottom - int(math.Round((v-lo)/(hi-lo)*float64(canvas.Height())))
		}
		cx := canvas.Left + canvas.Width()/2
		half := canvas.Width() / 6
		capHalf := half / 2

		r.SetStrokeColor(wettestColor)
		r.SetStrokeWidth(2)
		r.SetFillColor(boxFill)
		r.MoveTo(cx-half, y(box.Q3))
		r.LineTo(cx+half, y(box.Q3))
		r.LineTo(cx+half, y(box.Q1))
		r.LineTo(cx-half, y(box.Q1))
		r.Close()
		r.FillStroke()

		segments := [][4]int{
			{cx - half, y(box.Median), cx + half, y(box.Median)},
			{cx, y(box.Q3), cx, y(box.Max)},
			{cx, y(box.Q1), cx, y(box.Min)},
			{cx - capHalf, y(box.Max), cx + capHalf, y(box.Max)},
			{cx - capHalf, y(box.Min), cx + capHalf, y(box.Min)},
		}
		for _, s := range segments {
			r.MoveTo(s[0], s[1])
			r.LineTo(s[2], s[3])
			r.Stroke()
		}
	}
}

func barStyle(c drawing.Color) gochart.Style {
	return gochart.Style{FillColor: c, StrokeColor: c}
}

func yearLabel(year float64) string {
	return strconv.FormatFloat(year, 'f', -1, 64)
}
