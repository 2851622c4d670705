package storeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/internal/fetch"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// RemoteStore is the HTTP-fronted production backend: every operation
// is a single request, so Put is atomic by construction.
type RemoteStore struct {
	baseURL string
	token   string
	fetcher *fetch.Fetcher
	policy  fetch.Policy
}

// NewRemoteStore creates a RemoteStore against baseURL, authenticating
// with a bearer token.
func NewRemoteStore(baseURL, token string, fetcher *fetch.Fetcher) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		token:   token,
		fetcher: fetcher,
		policy:  fetch.Policy{Timeout: 10 * time.Second, Retries: 2},
	}
}

func (s *RemoteStore) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.token}
}

// Put performs a single PUT with the TTL encoded as a query parameter,
// so the backend can apply the key and its expiry together.
func (s *RemoteStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	u := s.baseURL + "/v1/kv/" + url.PathEscape(key) + "?ttl_seconds=" + strconv.Itoa(int(ttl.Seconds()))
	resp, err := s.fetcher.Fetch(ctx, "storeclient", u, fetch.Options{
		Method:  http.MethodPut,
		Headers: s.headers(),
		Body:    value,
	}, s.policy)
	if err != nil {
		return &agenterrors.CollectorError{
			Kind:      agenterrors.KindStoreError,
			Message:   fmt.Sprintf("storeclient: remote PUT %s: %v", key, err),
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		}
	}
	if resp.StatusCode >= 400 {
		return &agenterrors.CollectorError{
			Kind:      agenterrors.KindStoreError,
			Message:   fmt.Sprintf("storeclient: remote PUT %s: HTTP %d", key, resp.StatusCode),
			Timestamp: time.Now().UnixMilli(),
		}
	}
	return nil
}

// Get returns the value for key, or ok=false if the backend reports
// 404 (absent or expired).
func (s *RemoteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	u := s.baseURL + "/v1/kv/" + url.PathEscape(key)
	resp, err := s.fetcher.Fetch(ctx, "storeclient", u, fetch.Options{Headers: s.headers()}, s.policy)
	if err != nil {
		return nil, false, &agenterrors.CollectorError{
			Kind:      agenterrors.KindStoreError,
			Message:   fmt.Sprintf("storeclient: remote GET %s: %v", key, err),
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode >= 400 {
		return nil, false, &agenterrors.CollectorError{
			Kind:      agenterrors.KindStoreError,
			Message:   fmt.Sprintf("storeclient: remote GET %s: HTTP %d", key, resp.StatusCode),
			Timestamp: time.Now().UnixMilli(),
		}
	}
	return resp.Body, true, nil
}

type metaPayload struct {
	Status     model.Status `json:"status"`
	LastRun    int64        `json:"last_run"`
	ErrorCount int          `json:"error_count"`
}

// SetMeta POSTs the meta triple in one request. Failures are logged
// and swallowed.
func (s *RemoteStore) SetMeta(ctx context.Context, name string, meta model.CollectorMeta) {
	body, err := json.Marshal(metaPayload{Status: meta.Status, LastRun: meta.LastRunMilli, ErrorCount: meta.ErrorCount})
	if err != nil {
		slog.Warn("storeclient: set_meta marshal failed", "collector", name, "error", err)
		return
	}

	u := s.baseURL + "/v1/meta/" + url.PathEscape(name)
	headers := s.headers()
	headers["Content-Type"] = "application/json"
	resp, err := s.fetcher.Fetch(ctx, "storeclient", u, fetch.Options{
		Method:  http.MethodPost,
		Headers: headers,
		Body:    body,
	}, s.policy)
	if err != nil {
		slog.Warn("storeclient: set_meta failed", "collector", name, "error", err)
		return
	}
	if resp.StatusCode >= 400 {
		slog.Warn("storeclient: set_meta rejected", "collector", name, "status", resp.StatusCode)
	}
}

// Ping reports backend reachability.
func (s *RemoteStore) Ping(ctx context.Context) bool {
	resp, err := s.fetcher.Fetch(ctx, "storeclient", s.baseURL+"/v1/ping", fetch.Options{Headers: s.headers()}, fetch.Policy{Timeout: 5 * time.Second})
	return err == nil && resp.StatusCode < 400
}

type keysPayload struct {
	Keys []string `json:"keys"`
}

// Keys lists every key with the given prefix.
func (s *RemoteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	u := s.baseURL + "/v1/keys?prefix=" + url.QueryEscape(prefix)
	resp, err := s.fetcher.Fetch(ctx, "storeclient", u, fetch.Options{Headers: s.headers()}, s.policy)
	if err != nil {
		return nil, fmt.Errorf("storeclient: remote keys %s: %w", prefix, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("storeclient: remote keys %s: HTTP %d", prefix, resp.StatusCode)
	}

	var payload keysPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("storeclient: decoding keys response: %w", err)
	}
	return payload.Keys, nil
}

// Close is a no-op: RemoteStore holds no connection of its own, only a
// shared *fetch.Fetcher the caller owns independently.
func (s *RemoteStore) Close() error { return nil }
