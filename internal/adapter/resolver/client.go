// Package resolver adapts an external trajectory service to
// domain.TrajectoryResolver.
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

// Client posts orbital elements to a resolver endpoint and decodes the
// verdict.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a resolver client for the given endpoint.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger,
	}
}

type request struct {
	Elements      domain.OrbitalElements `json:"elements"`
	EncounterTime time.Time              `json:"encounter_time"`
}

// Resolve implements domain.TrajectoryResolver. Shape checks on the verdict
// are left to the engine.
func (c *Client) Resolve(ctx context.Context, elements domain.OrbitalElements, encounter time.Time) (domain.TrajectoryResolution, error) {
	start := time.Now()
	res, err := c.post(ctx, request{Elements: elements, EncounterTime: encounter.UTC()})
	c.metrics.ResolverDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.ResolverRequests.WithLabelValues("error").Inc()
		c.logger.Warn("trajectory resolver failed", "error", err)
	case res.Impact:
		c.metrics.ResolverRequests.WithLabelValues("impact").Inc()
	default:
		c.metrics.ResolverRequests.WithLabelValues("near_miss").Inc()
	}
	return res, err
}

func (c *Client) post(ctx context.Context, body request) (domain.TrajectoryResolution, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.TrajectoryResolution{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return domain.TrajectoryResolution{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TrajectoryResolution{}, fmt.Errorf("resolver request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.TrajectoryResolution{}, fmt.Errorf("resolver error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var res domain.TrajectoryResolution
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return domain.TrajectoryResolution{}, fmt.Errorf("decode response: %w", err)
	}
	if res.EncounterTime.IsZero() {
		res.EncounterTime = body.EncounterTime
	}
	return res, nil
}
