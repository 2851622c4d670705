// Package fetch implements the collector fleet's single outbound HTTP
// operation: fetch(url, options, policy) -> response, with retry,
// exponential backoff, and rate limiting shared by every collector.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/time/rate"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/internal/metrics"
)

// Options carries the per-request shape: method, headers, body, and an
// accept-encoding hint so providers that prefer gzip or zstd get it.
type Options struct {
	Method         string
	Headers        map[string]string
	Body           []byte
	AcceptEncoding string
}

// Policy carries the retry/timeout tuning for one fetch call.
type Policy struct {
	Timeout time.Duration // total timeout across all attempts, default 30s
	Retries int           // default 2
}

// DefaultPolicy is used by callers that don't need custom tuning.
var DefaultPolicy = Policy{Timeout: 30 * time.Second, Retries: 2}

// Response is the decoded result of a fetch: status code, and body
// bytes with any Content-Encoding already transparently decompressed.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// CheckStatus returns a non-nil error if resp carries a non-success
// status. Since Fetch only retries 5xx and returns every other status
// as-is, every caller that doesn't itself special-case 404 (absent)
// needs this same terminal-status check; centralized here instead of
// duplicated per provider package.
func CheckStatus(resp *Response, what string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("fetch: %s: unexpected status %d", what, resp.StatusCode)
}

// Fetcher performs rate-limited, retried HTTP fetches on behalf of
// every collector in the fleet, built on an explicit *http.Transport
// so it never shares mutable state with other code in the process.
type Fetcher struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	metrics        *metrics.Metrics
	errorCollector *agenterrors.ErrorCollector
}

// New creates a Fetcher. limiter may be nil to disable pacing.
func New(m *metrics.Metrics, ec *agenterrors.ErrorCollector, limiter *rate.Limiter) *Fetcher {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	return &Fetcher{
		httpClient:     &http.Client{Transport: transport},
		limiter:        limiter,
		metrics:        m,
		errorCollector: ec,
	}
}

// Fetch performs one logical fetch, retrying retryable failures with
// exponential backoff starting at 1s and doubling per attempt. Any
// HTTP status in [500,600) or transport error is retryable; 4xx is
// terminal. ctx cancellation aborts immediately and releases every
// in-flight connection.
func (f *Fetcher) Fetch(ctx context.Context, collector, url string, opts Options, policy Policy) (*Response, error) {
	if policy.Timeout <= 0 {
		policy.Timeout = DefaultPolicy.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, policy.Timeout)
	defer cancel()

	start := time.Now()
	maxAttempts := policy.Retries + 1

	var (
		resp    *Response
		lastErr error
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if f.metrics != nil {
				f.metrics.FetchRetries.WithLabelValues(collector).Inc()
			}
			if err := sleepWithBackoff(ctx, attempt-1); err != nil {
				lastErr = f.reportCancelled(collector, err)
				break
			}
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				lastErr = f.reportCancelled(collector, err)
				break
			}
		}

		r, err := f.doFetch(ctx, url, opts)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				lastErr = f.reportCancelled(collector, ctx.Err())
				break
			}
			continue
		}

		// 5xx is retryable; every other status (including 4xx) is
		// terminal and returned to the caller as-is — a 404 on a
		// storeclient Get is a valid "absent" answer, not a failure,
		// so fetch itself does not turn 4xx into an error.
		if r.StatusCode >= 500 && r.StatusCode < 600 {
			lastErr = fmt.Errorf("fetch: %s: server error (HTTP %d)", url, r.StatusCode)
			continue
		}

		resp = r
		lastErr = nil
		break
	}

	if f.metrics != nil {
		f.metrics.FetchDuration.WithLabelValues(collector).Observe(time.Since(start).Seconds())
	}

	if lastErr != nil {
		f.report(collector, lastErr)
		return nil, lastErr
	}
	return resp, nil
}

// doFetch performs a single HTTP round trip and decompresses the body
// according to the response's Content-Encoding.
func (f *Fetcher) doFetch(ctx context.Context, url string, opts Options) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("fetch: building request for %s: %w", url, err)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.AcceptEncoding != "" {
		req.Header.Set("Accept-Encoding", opts.AcceptEncoding)
	}

	httpResp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", url, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: reading body: %w", url, err)
	}

	decoded, err := decompress(httpResp.Header.Get("Content-Encoding"), raw)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", url, err)
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: decoded}, nil
}

func decompress(encoding string, raw []byte) ([]byte, error) {
	switch encoding {
	case "gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case "zstd":
		zr, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return raw, nil
	}
}

// sleepWithBackoff sleeps 1s * 2^attempt, aborting early if ctx is done.
func sleepWithBackoff(ctx context.Context, attempt int) error {
	d := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) reportCancelled(collector string, cause error) error {
	return &agenterrors.CollectorError{
		Kind:      agenterrors.KindCancelled,
		Message:   fmt.Sprintf("fetch: %s: %v", collector, cause),
		Collector: collector,
		Timestamp: time.Now().UnixMilli(),
		Err:       cause,
	}
}

func (f *Fetcher) report(collector string, err error) {
	if f.errorCollector == nil {
		return
	}
	var ce *agenterrors.CollectorError
	if errors.As(err, &ce) {
		f.errorCollector.Report(*ce)
		return
	}
	f.errorCollector.Report(agenterrors.CollectorError{
		Kind:      agenterrors.KindTransientNetwork,
		Message:   err.Error(),
		Collector: collector,
		Timestamp: time.Now().UnixMilli(),
		Err:       err,
	})
}
