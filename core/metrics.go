package core

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const requestCounterPrefix = "requests:"

// RequestCounts aggregates served requests by response class.
type RequestCounts struct {
	Total       int64 `json:"total"`
	Success     int64 `json:"success"`
	ClientError int64 `json:"client_error"`
	ServerError int64 `json:"server_error"`
}

// RequestMetrics keeps best-effort request counters in Redis. A nil client
// disables recording; user data never lives here, only counters.
type RequestMetrics struct {
	client *redis.Client
}

func NewRequestMetrics(client *redis.Client) *RequestMetrics {
	return &RequestMetrics{client: client}
}

// Enabled reports whether a metrics backend is configured.
func (m *RequestMetrics) Enabled() bool {
	return m != nil && m.client != nil
}

// Record increments the counter for the response class of status.
// Failures are ignored; metrics must never affect request handling.
func (m *RequestMetrics) Record(ctx context.Context, status int) {
	if !m.Enabled() {
		return
	}
	m.client.Incr(ctx, requestCounterPrefix+"total")
	m.client.Incr(ctx, requestCounterPrefix+classOf(status))
}

// Snapshot reads the current counter values.
func (m *RequestMetrics) Snapshot(ctx context.Context) (RequestCounts, error) {
	var counts RequestCounts
	if !m.Enabled() {
		return counts, nil
	}
	var err error
	if counts.Total, err = m.readCounter(ctx, "total"); err != nil {
		return RequestCounts{}, err
	}
	if counts.Success, err = m.readCounter(ctx, "success"); err != nil {
		return RequestCounts{}, err
	}
	if counts.ClientError, err = m.readCounter(ctx, "client_error"); err != nil {
		return RequestCounts{}, err
	}
	if counts.ServerError, err = m.readCounter(ctx, "server_error"); err != nil {
		return RequestCounts{}, err
	}
	return counts, nil
}

func (m *RequestMetrics) readCounter(ctx context.Context, name string) (int64, error) {
	v, err := m.client.Get(ctx, requestCounterPrefix+name).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func classOf(status int) string {
	switch {
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "success"
	}
}

// SystemStatus is the aggregate reported by GET /status.
type SystemStatus struct {
	UptimeSeconds int64          `json:"uptime_seconds"`
	Requests      *RequestCounts `json:"requests,omitempty"`
}

// CollectSystemStatus gathers uptime and, when metrics are enabled, the
// request counters. Counter read failures degrade to an uptime-only status.
func CollectSystemStatus(ctx context.Context, metrics *RequestMetrics, startedAt time.Time) SystemStatus {
	var st SystemStatus
	if !startedAt.IsZero() {
		st.UptimeSeconds = int64(time.Since(startedAt).Seconds())
	}
	if metrics.Enabled() {
		if counts, err := metrics.Snapshot(ctx); err == nil {
			st.Requests = &counts
		}
	}
	return st
}
