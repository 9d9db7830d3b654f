package faqdex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Health reports the aggregated service health. A degraded service replies
// with the same report shape on HTTP 503, so both outcomes decode without
// error; only transport or protocol failures are reported as errors.
func (c *Client) Health(ctx context.Context) (_ HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("faqdex: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("faqdex: GET /health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthStatus{}, decodeAPIError(resp)
	}

	var status HealthStatus
	if err = json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return HealthStatus{}, fmt.Errorf("faqdex: decode response: %w", err)
	}
	return status, nil
}
