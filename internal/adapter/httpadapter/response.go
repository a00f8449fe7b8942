package httpadapter

import (
	"math"
	"time"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
)

// summaryResponse carries each mean twice: as the two-decimal display string,
// which can be "NaN", and as a number that is null when not finite.
type summaryResponse struct {
	RunID           string           `json:"run_id"`
	Source          string           `json:"source"`
	ComputedAt      time.Time        `json:"computed_at"`
	YearRange       domain.YearRange `json:"year_range"`
	Parsed          int              `json:"parsed"`
	Retained        int              `json:"retained"`
	MeanTotal       string           `json:"mean_total"`
	MeanMedian      string           `json:"mean_median"`
	MeanTotalValue  *float64         `json:"mean_total_value"`
	MeanMedianValue *float64         `json:"mean_median_value"`
}

type pointResponse struct {
	Year  *float64 `json:"year"`
	Total *float64 `json:"total"`
}

type seriesResponse struct {
	RunID  string           `json:"run_id"`
	Axis   domain.ChartAxis `json:"axis"`
	Points []pointResponse  `json:"points"`
}

type variationResponse struct {
	Year    *float64 `json:"year"`
	Percent *float64 `json:"percent"`
}

type insightsResponse struct {
	RunID     string              `json:"run_id"`
	Driest    *pointResponse      `json:"driest"`
	Wettest   *pointResponse      `json:"wettest"`
	Variation []variationResponse `json:"variation"`
}

type galleryResponse struct {
	ID  string `json:"id"`
	Src string `json:"src"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func newSummaryResponse(r *domain.Report) summaryResponse {
	return summaryResponse{
		RunID:           r.RunID,
		Source:          r.Source,
		ComputedAt:      r.ComputedAt,
		YearRange:       r.YearRange,
		Parsed:          r.Parsed,
		Retained:        len(r.Retained),
		MeanTotal:       domain.FormatFixed2(r.Summary.MeanTotal),
		MeanMedian:      domain.FormatFixed2(r.Summary.MeanMedian),
		MeanTotalValue:  nullable(r.Summary.MeanTotal),
		MeanMedianValue: nullable(r.Summary.MeanMedian),
	}
}

func newSeriesResponse(r *domain.Report) seriesResponse {
	points := make([]pointResponse, len(r.Series))
	for i, p := range r.Series {
		points[i] = newPoint(p)
	}
	return seriesResponse{
		RunID:  r.RunID,
		Axis:   domain.ChartAxisFor(r.YearRange),
		Points: points,
	}
}

func newInsightsResponse(r *domain.Report) insightsResponse {
	resp := insightsResponse{
		RunID:     r.RunID,
		Variation: make([]variationResponse, len(r.Variation)),
	}
	if r.Extremes != nil {
		driest, wettest := newPoint(r.Extremes.Driest), newPoint(r.Extremes.Wettest)
		resp.Driest, resp.Wettest = &driest, &wettest
	}
	for i, v := range r.Variation {
		resp.Variation[i] = variationResponse{Year: nullable(v.Year), Percent: nullable(v.Percent)}
	}
	return resp
}

func newPoint(p domain.SeriesPoint) pointResponse {
	return pointResponse{Year: nullable(p.Year), Total: nullable(p.Total)}
}

// nullable returns nil for values JSON cannot carry.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
