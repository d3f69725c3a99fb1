package upstream

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultTimeout bounds every upstream round trip.
const DefaultTimeout = 10 * time.Second

// UserAgent identifies the proxy to upstream APIs.
const UserAgent = "portfolio.dev (+https://github.com)"

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "upstream_requests_total",
		Help:      "Upstream API requests by service and status code",
	}, []string{"service", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream API latencies in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service"})
)

func newClient(baseURL string, timeout time.Duration, bearer string) fastshot.ClientHttpMethods {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	b := fastshot.NewClient(baseURL)
	if bearer != "" {
		b.Auth().BearerToken(bearer)
	}
	return b.Config().SetTimeout(timeout).
		Header().Add("User-Agent", UserAgent).
		Header().Add("Accept", "application/json").
		Build()
}

// decode records metrics for a finished request and decodes a 2xx reply into out.
func decode(service string, start time.Time, resp *fastshot.Response, err error, out any) error {
	upstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues(service, "error").Inc()
		return &StatusError{Service: service, Err: err}
	}
	defer resp.Body().Close()

	code := resp.Status().Code()
	upstreamRequests.WithLabelValues(service, strconv.Itoa(code)).Inc()

	if code < 200 || code > 299 {
		return &StatusError{
			Service:     service,
			StatusCode:  code,
			RateLimited: code == http.StatusTooManyRequests || (code == http.StatusForbidden && resp.Header().Get("X-RateLimit-Remaining") == "0"),
		}
	}
	if out == nil {
		return nil
	}
	if err := resp.Body().AsJSON(out); err != nil {
		return &StatusError{Service: service, StatusCode: code, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
