package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchLocalRoots(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()

	if err := os.WriteFile(filepath.Join(low, "h.png"), []byte("low"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(low, "only-low.png"), []byte("only"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(high, "h.png"), []byte("high"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(low)
	m.AddRoot(high)

	tests := []struct {
		ref  string
		want string
	}{
		{"h.png", "high"},
		{"only-low.png", "only"},
		{filepath.Join(low, "h.png"), "low"},
	}
	for _, tt := range tests {
		got, err := m.Fetch(context.Background(), tt.ref)
		if err != nil {
			t.Fatalf("Fetch(%q) error: %v", tt.ref, err)
		}
		if string(got) != tt.want {
			t.Errorf("Fetch(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestFetchMissing(t *testing.T) {
	m := NewManager(t.TempDir())

	for _, ref := range []string{"nope.png", filepath.Join(t.TempDir(), "abs.png")} {
		if _, err := m.Fetch(context.Background(), ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch(%q) error = %v, want ErrNotFound", ref, err)
		}
	}
}

func TestFetchRemote(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Path {
		case "/heightmap.png":
			w.Write([]byte("pixels"))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := NewManager()
	m.SetHTTPClient(srv.Client())
	ctx := context.Background()

	data, err := m.Fetch(ctx, srv.URL+"/heightmap.png")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("Fetch() = %q, want %q", data, "pixels")
	}

	// second fetch is served from cache
	if _, err := m.Fetch(ctx, srv.URL+"/heightmap.png"); err != nil {
		t.Fatalf("cached Fetch error: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 request, got %d", requests)
	}
	if hits, _ := m.Cache().Stats(); hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", hits)
	}

	if _, err := m.Fetch(ctx, srv.URL+"/missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing remote error = %v, want ErrNotFound", err)
	}
	if _, err := m.Fetch(ctx, srv.URL+"/broken"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("broken remote error = %v, want non-NotFound error", err)
	}
}

func TestFetchRemoteCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager()
	m.SetHTTPClient(srv.Client())
	if _, err := m.Fetch(ctx, srv.URL+"/x.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("a"); ok {
		t.Error("empty cache returned a value")
	}
	c.Set("a", []byte{1})
	if data, ok := c.Get("a"); !ok || len(data) != 1 {
		t.Errorf("Get(a) = %v, %v", data, ok)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d, %d, want 1, 1", hits, misses)
	}

	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("cleared cache returned a value")
	}
}
