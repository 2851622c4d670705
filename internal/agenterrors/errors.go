// Package agenterrors implements the collector fleet's error taxonomy
// and the TTL-deduped active-error collector exposed on the health
// endpoint.
package agenterrors

import (
	"sync"
	"time"
)

// Kind is a typed error kind, not a Go type — every CollectorError
// carries exactly one.
type Kind string

// Error kinds, per the propagation policy: TransientNetwork and
// ProviderUnavailable are retried inside fetch and only surface once
// the retry budget is exhausted; ProviderRejected surfaces
// immediately; DecodeError/InvariantViolation drop the offending
// record rather than failing the run, unless the whole payload is
// undecodable; StoreError in put fails the run but is swallowed (with
// a warning) in set_meta; Cancelled is never logged as an error.
const (
	KindTransientNetwork    Kind = "TRANSIENT_NETWORK"
	KindProviderUnavailable Kind = "PROVIDER_UNAVAILABLE"
	KindProviderRejected    Kind = "PROVIDER_REJECTED"
	KindDecodeError         Kind = "DECODE_ERROR"
	KindInvariantViolation  Kind = "INVARIANT_VIOLATION"
	KindStoreError          Kind = "STORE_ERROR"
	KindCancelled           Kind = "CANCELLED"
)

// defaultTTL is the auto-expiry duration for errors not re-reported.
const defaultTTL = 5 * time.Minute

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock uses the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// CollectorError is a typed collector error with kind, collector name,
// and optional wrapped cause.
type CollectorError struct {
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	Collector string `json:"collector"`
	Timestamp int64  `json:"timestamp"`
	Err       error  `json:"-"`
}

// Error implements the error interface.
func (e *CollectorError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As compatibility.
func (e *CollectorError) Unwrap() error {
	return e.Err
}

// Retryable reports whether fetch should retry an error of this kind.
func (k Kind) Retryable() bool {
	switch k {
	case KindTransientNetwork, KindProviderUnavailable:
		return true
	default:
		return false
	}
}

// entry wraps a CollectorError with its last-reported time for expiry
// tracking.
type entry struct {
	err        CollectorError
	lastReport time.Time
}

// ErrorCollector is a thread-safe store for active collector errors.
// Errors are keyed by Kind+Collector and auto-expire after 5 minutes
// if not re-reported.
type ErrorCollector struct {
	mu      sync.Mutex
	clock   Clock
	entries map[string]entry
}

// NewErrorCollector creates an ErrorCollector with the given clock.
func NewErrorCollector(clock Clock) *ErrorCollector {
	return &ErrorCollector{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

func key(kind Kind, collector string) string {
	return string(kind) + "|" + collector
}

// Report stores or refreshes an error. Cancelled errors are dropped —
// they are never logged as errors and never occupy the active set.
func (ec *ErrorCollector) Report(err CollectorError) {
	if err.Kind == KindCancelled {
		return
	}

	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.entries[key(err.Kind, err.Collector)] = entry{
		err:        err,
		lastReport: ec.clock.Now(),
	}
}

// GetActiveErrors returns all errors reported within the TTL window,
// pruning anything older as it goes.
func (ec *ErrorCollector) GetActiveErrors() []CollectorError {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	now := ec.clock.Now()
	result := make([]CollectorError, 0, len(ec.entries))
	for k, e := range ec.entries {
		if now.Sub(e.lastReport) > defaultTTL {
			delete(ec.entries, k)
			continue
		}
		result = append(result, e.err)
	}
	return result
}

// GetActiveKinds returns a deduplicated list of active error kinds.
func (ec *ErrorCollector) GetActiveKinds() []string {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	now := ec.clock.Now()
	seen := make(map[Kind]struct{})
	kinds := make([]string, 0)
	for k, e := range ec.entries {
		if now.Sub(e.lastReport) > defaultTTL {
			delete(ec.entries, k)
			continue
		}
		if _, ok := seen[e.err.Kind]; !ok {
			seen[e.err.Kind] = struct{}{}
			kinds = append(kinds, string(e.err.Kind))
		}
	}
	return kinds
}

// Clear removes all tracked errors.
func (ec *ErrorCollector) Clear() {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.entries = make(map[string]entry)
}
