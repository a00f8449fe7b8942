package chart

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galleryReport() *domain.Report {
	payload := "year,total_precipitation,median_precipitation\n" +
		"2006,640.2,1.1\n" +
		"2007,812.5,1.4\n" +
		"2008,NaN,1.2\n" +
		"2009,590.0,0.9\n" +
		"2010,701.3,1.2\n"
	return &domain.Report{
		RunID:     "run-gallery",
		YearRange: domain.DefaultYearRange,
		Analysis:  domain.Analyze(payload, domain.DefaultYearRange),
	}
}

func testGallery(dir string) *Gallery {
	r := testRenderer()
	return NewGallery(r, dir, r.logger)
}

func TestGallery_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	written, err := testGallery(dir).WriteAll(galleryReport())
	require.NoError(t, err)
	require.Len(t, written, len(domain.GalleryIDs()))

	for i, id := range domain.GalleryIDs() {
		want := filepath.Join(dir, filepath.Base(domain.GalleryImage(id)))
		assert.Equal(t, want, written[i])

		data, err := os.ReadFile(want)
		require.NoError(t, err, id)
		_, err = png.Decode(bytes.NewReader(data))
		require.NoError(t, err, id)
	}
}

func TestGallery_RenderWithoutNumericData(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.Report
	}{
		{"empty", &domain.Report{YearRange: domain.DefaultYearRange}},
		{"all NaN", &domain.Report{
			YearRange: domain.DefaultYearRange,
			Analysis: domain.Analysis{
				Series: []domain.SeriesPoint{{Year: 2006, Total: math.NaN()}},
			},
		}},
		{"single year", &domain.Report{
			YearRange: domain.DefaultYearRange,
			Analysis:  domain.Analyze("h\n2050,600,1", domain.DefaultYearRange),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images, err := testGallery(t.TempDir()).Render(tt.report)
			require.NoError(t, err)
			assert.Len(t, images, len(domain.GalleryIDs()))
			for id, img := range images {
				_, err := png.Decode(bytes.NewReader(img))
				require.NoError(t, err, id)
			}
		})
	}
}

func TestGallery_Publish(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testGallery(dir).Publish(context.Background(), galleryReport()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(domain.GalleryIDs()))
}

func TestBarRange(t *testing.T) {
	lo, hi := barRange([]float64{100, 200})
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 210.0, hi, 1e-9)

	lo, hi = barRange([]float64{0, 0})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, _ = barRange([]float64{-5, 10})
	assert.Equal(t, -5.0, lo)
}
