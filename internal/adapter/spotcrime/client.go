package spotcrime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/crime-report-service/internal/domain"
	"github.com/couchcryptid/crime-report-service/internal/observability"
)

// Client fetches incident records from the SpotCrime crimes endpoint.
type Client struct {
	apiKey     string
	resultKey  string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a SpotCrime client. baseURL is the full crimes.json URL.
func NewClient(baseURL, apiKey, resultKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:    apiKey,
		resultKey: resultKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchIncidents returns the incidents within the query radius.
func (c *Client) FetchIncidents(ctx context.Context, q domain.Query) ([]domain.RawIncident, error) {
	start := time.Now()
	incidents, err := c.fetch(ctx, q)
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	c.metrics.UpstreamRequests.WithLabelValues("success").Inc()
	c.logger.Debug("fetched incidents", "query", q.Key(), "count", len(incidents))
	return incidents, nil
}

func (c *Client) fetch(ctx context.Context, q domain.Query) ([]domain.RawIncident, error) {
	params := url.Values{
		"lat":    {formatCoord(q.Lat)},
		"lon":    {formatCoord(q.Lon)},
		"radius": {formatCoord(q.Radius)},
		"key":    {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crime data request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("crime data API error: status %d: %s", resp.StatusCode, body)
	}

	return DecodeIncidents(resp.Body, c.resultKey)
}

// formatCoord renders a coordinate with six decimals.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
