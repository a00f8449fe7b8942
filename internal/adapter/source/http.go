package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxPayloadBytes caps how much of a response body is read.
const maxPayloadBytes = 32 << 20

// ErrPayloadTooLarge is returned when a response body exceeds the size cap.
var ErrPayloadTooLarge = errors.New("payload too large")

// HTTP fetches the payload with a GET request.
type HTTP struct {
	url        string
	httpClient *http.Client
	maxBytes   int64
	logger     *slog.Logger
}

// NewHTTP creates an HTTP source for url with the given request timeout.
func NewHTTP(url string, timeout time.Duration, logger *slog.Logger) *HTTP {
	return &HTTP{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBytes: maxPayloadBytes,
		logger:   logger,
	}
}

func (h *HTTP) Name() string { return h.url }

func (h *HTTP) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get %s: status %d: %s", h.url, resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, fmt.Errorf("get %s: %w: more than %d bytes", h.url, ErrPayloadTooLarge, h.maxBytes)
	}
	h.logger.Debug("fetched payload", "url", h.url, "bytes", len(data), "duration", time.Since(start))
	return data, nil
}
