package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once when
// WithConcurrency is not given.
const DefaultConcurrency = 8

// BatchProcessor computes feature vectors for many URLs concurrently.
// It uses errgroup to bound the number of goroutines.
//
// Results are written into a slice pre-sized to the input, one slot per URL,
// so the output order always matches the input order no matter which
// goroutine finishes first.
type BatchProcessor struct {
	// extractor is shared by all goroutines; it holds no mutable state.
	extractor *feature.Extractor

	// concurrency is the maximum number of URLs in flight.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
// A nil logger keeps slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of URLs processed at once.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around ext.
// A nil ext is replaced by feature.NewExtractor().
func NewBatchProcessor(ext *feature.Extractor, opts ...BatchOption) *BatchProcessor {
	if ext == nil {
		ext = feature.NewExtractor()
	}
	bp := &BatchProcessor{
		extractor:   ext,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Concurrency returns the configured concurrency limit.
func (bp *BatchProcessor) Concurrency() int {
	return bp.concurrency
}

// ProcessBatch computes the feature vector of every URL.
// The i-th vector belongs to urls[i].
//
// Extraction itself never fails, so the only error is the context's: once
// ctx is done no new URL is scheduled and ctx.Err() is returned together
// with the partially filled slice.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]model.FeatureVector, error) {
	bp.logger.Info("starting batch processing",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	results := make([]model.FeatureVector, len(urls))

	err := bp.run(ctx, urls, func(vec model.FeatureVector, index int) {
		results[index] = vec
	})

	bp.logger.Info("batch processing complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessBatchWithCallback computes the feature vector of every URL and
// hands each one to callback together with its index in urls.
//
// The callback runs on the goroutine that computed the vector, so it must be
// safe for concurrent use. Writing to distinct slots of a pre-sized slice is.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	callback func(vec model.FeatureVector, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	return bp.run(ctx, urls, callback)
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	urls []string,
	callback func(vec model.FeatureVector, index int),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, u := range urls {
		// g.Go blocks while the limit is reached, so cancellation is
		// noticed between URLs.
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bp.logger.Debug("extracting features",
				"url", u,
				"index", i+1,
				"total", len(urls),
			)

			callback(bp.extractor.Extract(u), i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
