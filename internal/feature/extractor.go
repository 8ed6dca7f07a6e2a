package feature

import (
	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/refdata"
)

// Extractor computes feature vectors against a fixed set of reference data.
// An Extractor holds no mutable state and may be shared by any number of
// goroutines.
type Extractor struct {
	refs *refdata.Sets
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithReference sets the reference data used for domain_top and
// domain_level. A nil value is ignored.
func WithReference(refs *refdata.Sets) Option {
	return func(e *Extractor) {
		if refs != nil {
			e.refs = refs
		}
	}
}

// NewExtractor creates an Extractor. Without options it uses
// refdata.Default().
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.refs == nil {
		e.refs = refdata.Default()
	}
	return e
}

// Reference returns the reference data used by the extractor.
func (e *Extractor) Reference() *refdata.Sets {
	return e.refs
}

// Extract decomposes raw and computes its feature vector.
func (e *Extractor) Extract(raw string) model.FeatureVector {
	return Compute(model.Decompose(raw), e.refs)
}

// ExtractAll computes the feature vectors of urls sequentially, in order.
// See pipeline.BatchProcessor for the concurrent equivalent.
func (e *Extractor) ExtractAll(urls []string) []model.FeatureVector {
	vectors := make([]model.FeatureVector, len(urls))
	for i, u := range urls {
		vectors[i] = e.Extract(u)
	}
	return vectors
}
