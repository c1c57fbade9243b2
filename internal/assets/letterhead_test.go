package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLetterheadFetchCachesAfterFirstHit(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	l := NewLetterhead(srv.URL)
	for i := 0; i < 3; i++ {
		data, err := l.Fetch(context.Background())
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if string(data) != "png-bytes" {
			t.Fatalf("fetch %d returned %q", i, data)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Fatalf("asset source hit %d times, want 1", got)
	}
}

func TestLetterheadFetchFailureIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	l := NewLetterhead(srv.URL)
	if _, err := l.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on 404")
	}

	fail.Store(false)
	data, err := l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if string(data) != "ok" {
		t.Fatalf("got %q", data)
	}
}

func TestLetterheadFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	l := NewLetterhead(srv.URL)
	if _, err := l.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on empty response")
	}
}
