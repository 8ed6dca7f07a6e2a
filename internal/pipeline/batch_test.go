package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/model"
)

func testURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("http://host%d.example/p/%d?id=%d", i, i, i)
	}
	return urls
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(feature.NewExtractor())

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.Concurrency() != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.Concurrency())
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("nil extractor uses default", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil)
		if bp.extractor == nil {
			t.Fatal("expected default extractor")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil, WithConcurrency(5))

		if bp.Concurrency() != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.Concurrency())
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil, WithConcurrency(0), WithConcurrency(-3))

		if bp.Concurrency() != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, bp.Concurrency())
		}
	})

	t.Run("WithBatchLogger nil keeps a logger", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(nil, WithBatchLogger(nil))
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("matches sequential extraction", func(t *testing.T) {
		t.Parallel()

		ext := feature.NewExtractor()
		urls := append(testURLs(50), "", "not a url", "http://192.168.1.1/ADMIN/x?y=1&z=2")

		got, err := NewBatchProcessor(ext, WithConcurrency(4)).ProcessBatch(context.Background(), urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := ext.ExtractAll(urls)
		if len(got) != len(want) {
			t.Fatalf("expected %d results, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("result[%d] differs from sequential extraction of %q", i, urls[i])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		got, err := NewBatchProcessor(nil).ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no results, got %d", len(got))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewBatchProcessor(nil).ProcessBatch(ctx, testURLs(10))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests streaming results.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	t.Run("calls back once per URL with its index", func(t *testing.T) {
		t.Parallel()

		ext := feature.NewExtractor()
		urls := testURLs(20)

		var mu sync.Mutex
		seen := make(map[int]model.FeatureVector)

		err := NewBatchProcessor(ext).ProcessBatchWithCallback(context.Background(), urls,
			func(vec model.FeatureVector, index int) {
				mu.Lock()
				defer mu.Unlock()
				if _, dup := seen[index]; dup {
					t.Errorf("index %d reported twice", index)
				}
				seen[index] = vec
			})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(seen) != len(urls) {
			t.Fatalf("expected %d callbacks, got %d", len(urls), len(seen))
		}
		for i, u := range urls {
			if seen[i] != ext.Extract(u) {
				t.Errorf("callback for index %d carries the wrong vector", i)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, maxSeen atomic.Int32

		err := NewBatchProcessor(nil, WithConcurrency(2)).ProcessBatchWithCallback(
			context.Background(), testURLs(10),
			func(_ model.FeatureVector, _ int) {
				n := current.Add(1)
				for {
					m := maxSeen.Load()
					if n <= m || maxSeen.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				current.Add(-1)
			})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if maxSeen.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", maxSeen.Load())
		}
	})
}

// TestComputeTable tests the table-building entry point.
func TestComputeTable(t *testing.T) {
	t.Parallel()

	t.Run("one row per URL with default label", func(t *testing.T) {
		t.Parallel()

		ext := feature.NewExtractor()
		urls := []string{"a.com", "not a url"}

		tbl, err := ComputeTable(context.Background(), ext, urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := tbl.Validate(); err != nil {
			t.Fatalf("invalid table: %v", err)
		}
		if tbl.Len() != 2 {
			t.Fatalf("expected 2 rows, got %d", tbl.Len())
		}
		if len(tbl.Columns) != model.NumFeatures+1 {
			t.Errorf("expected %d columns, got %d", model.NumFeatures+1, len(tbl.Columns))
		}
		for i, u := range urls {
			if tbl.URL(i) != u {
				t.Errorf("row %d: url %q, want %q", i, tbl.URL(i), u)
			}
			if tbl.Vector(i) != ext.Extract(u) {
				t.Errorf("row %d: vector mismatch", i)
			}
			if tbl.Label(i) != model.DefaultLabel {
				t.Errorf("row %d: label %v, want %v", i, tbl.Label(i), model.DefaultLabel)
			}
		}
	})

	t.Run("custom label and batch options", func(t *testing.T) {
		t.Parallel()

		tbl, err := ComputeTable(context.Background(), nil, testURLs(3),
			WithLabel(1),
			WithBatchOptions(WithConcurrency(1)),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range tbl.Len() {
			if tbl.Label(i) != 1 {
				t.Errorf("row %d: label %v, want 1", i, tbl.Label(i))
			}
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tbl, err := ComputeTable(ctx, nil, testURLs(3))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if tbl != nil {
			t.Error("expected no table on cancellation")
		}
	})
}
