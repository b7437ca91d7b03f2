package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blog-showcase/cmd/api/metrics"
	"blog-showcase/cmd/internal/logger"
)

// ImageValidator decides whether an image URL can be shown to readers.
// Implementations must never fail: any problem is reported as false.
type ImageValidator interface {
	IsImageValid(ctx context.Context, rawURL string) bool
}

// ImageValidatorFunc adapts a plain function to ImageValidator.
type ImageValidatorFunc func(ctx context.Context, rawURL string) bool

func (f ImageValidatorFunc) IsImageValid(ctx context.Context, rawURL string) bool {
	return f(ctx, rawURL)
}

// HTTPImageValidator checks images with a HEAD request.
type HTTPImageValidator struct {
	client  *http.Client
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewHTTPImageValidator returns a validator bounded by timeout per request.
// A nil client falls back to http.DefaultClient.
func NewHTTPImageValidator(client *http.Client, timeout time.Duration, m *metrics.Metrics) *HTTPImageValidator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPImageValidator{client: client, timeout: timeout, metrics: m}
}

// IsImageValid reports true only for a 2xx response whose Content-Type is image/*.
func (v *HTTPImageValidator) IsImageValid(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return false
	}

	start := time.Now()
	resp, err := v.client.Do(req)
	v.metrics.ObserveImageValidation(time.Since(start))
	if err != nil {
		logger.DebugWithFields("image validation request failed", logger.Fields{"url": rawURL, "error": err.Error()})
		return false
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	contentType := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Type")))
	return strings.HasPrefix(contentType, "image/")
}
