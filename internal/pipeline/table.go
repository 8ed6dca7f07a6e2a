package pipeline

import (
	"context"

	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/model"
)

type tableOptions struct {
	label float64
	batch []BatchOption
}

// TableOption configures ComputeTable.
type TableOption func(*tableOptions)

// WithLabel sets the phishing column value of every row.
// The default is model.DefaultLabel.
func WithLabel(label float64) TableOption {
	return func(o *tableOptions) {
		o.label = label
	}
}

// WithBatchOptions passes options to the underlying BatchProcessor.
func WithBatchOptions(opts ...BatchOption) TableOption {
	return func(o *tableOptions) {
		o.batch = append(o.batch, opts...)
	}
}

// ComputeTable computes the feature table of urls: one row per URL in input
// order, the 23 features followed by the label. Rows for malformed URLs are
// still present; their features are simply mostly zero.
//
// The only error is a cancelled ctx.
func ComputeTable(ctx context.Context, ext *feature.Extractor, urls []string, opts ...TableOption) (*model.Table, error) {
	o := tableOptions{label: model.DefaultLabel}
	for _, opt := range opts {
		opt(&o)
	}

	vectors, err := NewBatchProcessor(ext, o.batch...).ProcessBatch(ctx, urls)
	if err != nil {
		return nil, err
	}
	return model.NewTable(urls, vectors, o.label), nil
}
