package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"lrucache/internal/cache"
	"lrucache/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	conf, err := config.New()
	if err != nil {
		t.Fatalf("config.New() error = %v", err)
	}
	root, err := NewRootCommand(conf, "test")
	if err != nil {
		t.Fatalf("NewRootCommand() error = %v", err)
	}

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}

	for _, want := range []string{
		"[k2 k1]",
		`get k1 = "Hello"`,
		"[k3 k1]",
		"get k2: missing (evicted as LRU)",
		`unbounded get Hi = "Hello"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench", "--capacity=32", "--operations=5000", "--keyspace=256", "--workers=3", "--log-format=json")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if !strings.Contains(out, "operations:          5000") {
		t.Fatalf("unexpected bench output:\n%s", out)
	}
}

func TestBench_InvalidCapacity(t *testing.T) {
	_, err := execute(t, "bench", "--capacity=0", "--operations=10")

	var cfgErr *cache.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *cache.ConfigurationError, got %v", err)
	}
}

func TestRunBench_MatchesReference(t *testing.T) {
	t.Parallel()

	report, err := runBench(context.Background(), benchOptions{
		Capacity:   64,
		Operations: 20000,
		Keyspace:   1024,
		Workers:    4,
		Seed:       7,
	})
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}
	if report.Hits == 0 || report.Hits != report.ReferenceHits {
		t.Fatalf("hits %d, reference %d", report.Hits, report.ReferenceHits)
	}
	s := report.ConcurrentStats
	if s.Hits+s.Misses != 20000 {
		t.Fatalf("shared cache saw %d lookups, want 20000", s.Hits+s.Misses)
	}
	if s.Len > 64 {
		t.Fatalf("shared cache len %d exceeds capacity", s.Len)
	}
}

func TestBenchOptions_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		opts benchOptions
	}{
		{name: "no operations", opts: benchOptions{Capacity: 1, Keyspace: 1, Workers: 1}},
		{name: "no keys", opts: benchOptions{Capacity: 1, Operations: 1, Workers: 1}},
		{name: "no workers", opts: benchOptions{Capacity: 1, Operations: 1, Keyspace: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.opts.validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level, format string
		wantErr       bool
	}{
		{level: "info", format: "text"},
		{level: "DEBUG", format: "json"},
		{level: "warn", format: ""},
		{level: "loud", format: "text", wantErr: true},
		{level: "info", format: "xml", wantErr: true},
	}
	for _, tc := range cases {
		_, err := newLogger(&bytes.Buffer{}, tc.level, tc.format)
		if (err != nil) != tc.wantErr {
			t.Fatalf("newLogger(%q, %q) error = %v, wantErr %v", tc.level, tc.format, err, tc.wantErr)
		}
	}
}
