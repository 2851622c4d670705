package storeclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

func newTestRemoteStore(t *testing.T, handler http.HandlerFunc) *RemoteStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := fetch.New(nil, nil, nil)
	return NewRemoteStore(srv.URL, "test-token", f)
}

func TestRemoteStore_PutGet(t *testing.T) {
	store := map[string]string{}
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			body := make([]byte, r.ContentLength)
			r.Body.Read(body)
			store[r.URL.Path] = string(body)
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			v, ok := store[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(v))
		}
	})

	ctx := context.Background()
	if err := s.Put(ctx, "kaos:seismic:latest", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "kaos:seismic:latest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(v) != "payload" {
		t.Fatalf("unexpected Get result: ok=%v value=%s", ok, v)
	}
}

func TestRemoteStore_GetAbsent(t *testing.T) {
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, ok, err := s.Get(context.Background(), "kaos:missing")
	if err != nil {
		t.Fatalf("expected no error for a 404, got: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a 404 response")
	}
}

func TestRemoteStore_GetServerError(t *testing.T) {
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s.policy.Retries = 0

	_, _, err := s.Get(context.Background(), "kaos:seismic:latest")
	if err == nil {
		t.Fatal("expected an error when the backend keeps failing with 500")
	}
}

func TestRemoteStore_PutRejected(t *testing.T) {
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := s.Put(context.Background(), "kaos:bad", []byte("v"), time.Minute)
	if err == nil {
		t.Fatal("expected an error for a 400 response on Put")
	}
}

func TestRemoteStore_Ping(t *testing.T) {
	ok := true
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if !s.Ping(context.Background()) {
		t.Fatal("expected Ping to succeed")
	}
}

func TestRemoteStore_Keys(t *testing.T) {
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"keys":["kaos:seismic:a","kaos:seismic:b"]}`))
	})

	keys, err := s.Keys(context.Background(), "kaos:seismic:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
}

func TestRemoteStore_Authorization(t *testing.T) {
	var got string
	s := newTestRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNotFound)
	})

	s.Get(context.Background(), "kaos:x")
	if got != "Bearer test-token" {
		t.Fatalf("expected bearer auth header, got %q", got)
	}
}
