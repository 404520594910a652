package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lrucache/internal/cache"
)

func scrape(t *testing.T, p *Provider) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestRecorder_ExportsCounters(t *testing.T) {
	p, err := NewProvider()
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	defer p.Shutdown(context.Background())

	rec, err := NewRecorder(p.Meter(), "test")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	c, err := cache.NewSynced[string, int](cache.SyncedConfig{Capacity: 1, Recorder: rec})
	if err != nil {
		t.Fatalf("NewSynced: %v", err)
	}
	defer c.Close()

	_ = c.Set("a", 1)
	_ = c.Set("b", 2)
	c.Get("b")
	c.Get("a")

	if err := RegisterSize(p.Meter(), "test", c.Len, c.Cap()); err != nil {
		t.Fatalf("RegisterSize: %v", err)
	}

	body := scrape(t, p)
	for _, name := range []string{
		"lrucache_hits",
		"lrucache_misses",
		"lrucache_sets",
		"lrucache_evictions",
		"lrucache_entries",
		"lrucache_capacity",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in scrape output", name)
		}
	}
	if !strings.Contains(body, `cache="test"`) {
		t.Errorf("expected cache label in scrape output")
	}
}

func TestProvider_IsolatedRegistries(t *testing.T) {
	p1, err := NewProvider()
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p2, err := NewProvider()
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	rec, err := NewRecorder(p1.Meter(), "only-p1")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	rec.RecordHit()

	if strings.Contains(scrape(t, p2), "only-p1") {
		t.Fatalf("second provider exported the first provider's metrics")
	}
	if !strings.Contains(scrape(t, p1), "only-p1") {
		t.Fatalf("first provider lost its metrics")
	}
}
