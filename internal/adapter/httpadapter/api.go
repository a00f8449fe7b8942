package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/precip-summary-service/internal/adapter/xlsx"
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/couchcryptid/precip-summary-service/internal/observability"
	"github.com/couchcryptid/precip-summary-service/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

const (
	defaultChartWidth  = 800
	defaultChartHeight = 400
)

// ReportStore holds the latest report and can recompute it on demand.
// Refresh returns pipeline.ErrRunInProgress instead of waiting for a busy
// pipeline.
type ReportStore interface {
	Current() (*domain.Report, error)
	Refresh(ctx context.Context) (*domain.Report, error)
	CheckReadiness(ctx context.Context) error
}

// ChartRenderer draws the chart for a report.
type ChartRenderer interface {
	RenderReport(report *domain.Report, width, height int) ([]byte, error)
}

// API serves the summary, series, insights, exports, chart and gallery lookups.
type API struct {
	reports  ReportStore
	charts   ChartRenderer
	metrics  *observability.Metrics
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAPI creates the /api/v1 handlers.
func NewAPI(reports ReportStore, charts ChartRenderer, metrics *observability.Metrics, logger *slog.Logger) *API {
	return &API{
		reports:  reports,
		charts:   charts,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "api")),
	}
}

// Routes returns the API router.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", a.GetSummary)
	r.Get("/summary.txt", a.GetSummaryText)
	r.Get("/series", a.GetSeries)
	r.Get("/insights", a.GetInsights)
	r.Get("/export", a.GetExport)
	r.Get("/chart.png", a.GetChart)
	r.Get("/gallery", a.ListGallery)
	r.Get("/gallery/{id}", a.GetGalleryImage)
	r.Post("/refresh", a.Refresh)

	return r
}

type exportQuery struct {
	Format string `validate:"oneof=csv xlsx"`
}

type chartQuery struct {
	Width  int `validate:"min=200,max=4096"`
	Height int `validate:"min=200,max=4096"`
}

// GetSummary handles GET /api/v1/summary.
func (a *API) GetSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := a.current(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, newSummaryResponse(report))
}

// GetSummaryText handles GET /api/v1/summary.txt.
func (a *API) GetSummaryText(w http.ResponseWriter, r *http.Request) {
	report, ok := a.current(w, r)
	if !ok {
		return
	}
	render.PlainText(w, r, domain.SummaryText(report.Summary))
}

// GetSeries handles GET /api/v1/series.
func (a *API) GetSeries(w http.ResponseWriter, r *http.Request) {
	report, ok := a.current(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, newSeriesResponse(report))
}

// GetInsights handles GET /api/v1/insights.
func (a *API) GetInsights(w http.ResponseWriter, r *http.Request) {
	report, ok := a.current(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, newInsightsResponse(report))
}

// GetExport handles GET /api/v1/export?format=csv|xlsx.
func (a *API) GetExport(w http.ResponseWriter, r *http.Request) {
	q := exportQuery{Format: strings.ToLower(r.URL.Query().Get("format"))}
	if q.Format == "" {
		q.Format = "csv"
	}
	if err := a.validate.Struct(q); err != nil {
		a.badRequest(w, r, validationMessage(err))
		return
	}

	report, ok := a.current(w, r)
	if !ok {
		return
	}

	var (
		body        []byte
		filename    string
		contentType string
	)
	switch q.Format {
	case "xlsx":
		var err error
		body, err = xlsx.WriteReport(report)
		if err != nil {
			a.internalError(w, r, "build workbook", err)
			return
		}
		filename, contentType = xlsx.Filename, xlsx.ContentType
	default:
		body = domain.ExportCSV(report.Summary)
		filename, contentType = domain.ExportFilename, domain.ExportContentType
	}

	a.metrics.Exports.WithLabelValues(q.Format).Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

// GetChart handles GET /api/v1/chart.png?width=&height=.
func (a *API) GetChart(w http.ResponseWriter, r *http.Request) {
	q := chartQuery{Width: defaultChartWidth, Height: defaultChartHeight}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &q.Width}, {"height", &q.Height}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.badRequest(w, r, p.name+" must be an integer")
			return
		}
		*p.dst = n
	}
	if err := a.validate.Struct(q); err != nil {
		a.badRequest(w, r, validationMessage(err))
		return
	}

	report, ok := a.current(w, r)
	if !ok {
		return
	}

	png, err := a.charts.RenderReport(report, q.Width, q.Height)
	if err != nil {
		a.internalError(w, r, "render chart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

// ListGallery handles GET /api/v1/gallery.
func (a *API) ListGallery(w http.ResponseWriter, r *http.Request) {
	ids := domain.GalleryIDs()
	images := make([]galleryResponse, len(ids))
	for i, id := range ids {
		images[i] = galleryResponse{ID: id, Src: domain.GalleryImage(id)}
	}
	render.JSON(w, r, images)
}

// GetGalleryImage handles GET /api/v1/gallery/{id}. Unknown ids resolve to
// an empty src rather than an error.
func (a *API) GetGalleryImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	render.JSON(w, r, galleryResponse{ID: id, Src: domain.GalleryImage(id)})
}

// Refresh handles POST /api/v1/refresh.
func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	report, err := a.reports.Refresh(r.Context())
	if errors.Is(err, pipeline.ErrRunInProgress) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, errorResponse{Status: "conflict", Error: err.Error()})
		return
	}
	if err != nil {
		a.unavailable(w, r, err)
		return
	}
	a.logger.InfoContext(r.Context(), "report refreshed",
		slog.String("run_id", report.RunID),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.JSON(w, r, newSummaryResponse(report))
}

func (a *API) current(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	report, err := a.reports.Current()
	if err != nil {
		a.unavailable(w, r, err)
		return nil, false
	}
	return report, true
}

func (a *API) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.WarnContext(r.Context(), "report unavailable",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.Status(r, http.StatusServiceUnavailable)
	render.JSON(w, r, errorResponse{Status: "unavailable", Error: err.Error()})
}

func (a *API) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Status: "bad request", Error: msg})
}

func (a *API) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	a.logger.ErrorContext(r.Context(), op+" failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, errorResponse{Status: "error", Error: op + " failed"})
}

// validationMessage turns validator errors into a single readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
