// Package pipeline runs the feature engine over batches of URLs.
//
// BatchProcessor maps feature.Extractor over a URL list with a bounded
// number of goroutines (errgroup with SetLimit) and returns the vectors in
// input order. ComputeTable wraps it and assembles a model.Table with the
// label column.
//
// An extraction run in the CLI is a Pipeline of Steps executed in sequence
// over a shared Run: ExtractStep builds the table, WriteStep writes it out
// and PersistStep saves it to the history store. Each step can be left out
// or replaced, and the pipeline stops at the first failing step.
package pipeline
