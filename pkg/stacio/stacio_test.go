package stacio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stacforge/gostac/pkg/cache"
	"github.com/stacforge/gostac/pkg/errors"
)

func TestDefaultFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	io := NewDefault()
	href := filepath.Join(t.TempDir(), "nested", "catalog.json")

	if err := io.WriteText(ctx, href, `{"id": "root"}`); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	text, err := io.ReadText(ctx, href)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != `{"id": "root"}` {
		t.Errorf("ReadText = %q", text)
	}
}

func TestDefaultReadMissingFile(t *testing.T) {
	ctx := context.Background()
	io := NewDefault()

	_, err := io.ReadText(ctx, filepath.Join(t.TempDir(), "absent.json"))
	if errors.GetCode(err) != errors.ErrCodeNotFound {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestDefaultReadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": "remote"}`))
	}))
	defer srv.Close()

	io := NewDefaultWithClient(srv.Client())
	text, err := io.ReadText(context.Background(), srv.URL+"/catalog.json")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != `{"id": "remote"}` {
		t.Errorf("ReadText = %q", text)
	}
}

func TestDefaultRejectsHTTPWrite(t *testing.T) {
	io := NewDefault()
	err := io.WriteText(context.Background(), "https://example.com/catalog.json", "{}")
	if errors.GetCode(err) != errors.ErrCodeIO {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeIO)
	}
}

func TestCachedReadThrough(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	href := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(href, []byte("original"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	io := NewCached(NewDefault(), c, time.Hour)

	text, err := io.ReadText(ctx, href)
	if err != nil || text != "original" {
		t.Fatalf("first read = %q, %v", text, err)
	}

	// Mutate the file behind the cache; the cached text must still be
	// served.
	if err := os.WriteFile(href, []byte("changed on disk"), 0644); err != nil {
		t.Fatalf("mutate file: %v", err)
	}
	text, err = io.ReadText(ctx, href)
	if err != nil || text != "original" {
		t.Errorf("second read = %q, %v; want the cached original", text, err)
	}
}

func TestCachedWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	href := filepath.Join(t.TempDir(), "catalog.json")

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	io := NewCached(NewDefault(), c, time.Hour)

	if err := io.WriteText(ctx, href, "v1"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if text, err := io.ReadText(ctx, href); err != nil || text != "v1" {
		t.Fatalf("read v1 = %q, %v", text, err)
	}

	if err := io.WriteText(ctx, href, "v2"); err != nil {
		t.Fatalf("WriteText v2: %v", err)
	}
	text, err := io.ReadText(ctx, href)
	if err != nil || text != "v2" {
		t.Errorf("read after write = %q, %v; want v2 (entry invalidated)", text, err)
	}
}

func TestCachedDegradesWithoutBackend(t *testing.T) {
	ctx := context.Background()
	href := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(href, []byte("content"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	io := NewCached(NewDefault(), cache.NewNullCache(), time.Hour)
	text, err := io.ReadText(ctx, href)
	if err != nil || text != "content" {
		t.Errorf("read through null cache = %q, %v", text, err)
	}
}
