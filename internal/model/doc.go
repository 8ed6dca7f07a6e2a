// Package model defines the data structures shared by the feature engine,
// the batch adapter and the CLI.
//
// This package contains the following main types:
//   - URLParts: a raw URL split into URL, host, path and query strings
//   - Feature: the identifier of one column of the canonical schema
//   - FeatureVector: the 23 feature values of a single URL
//   - Table: feature vectors assembled into rows with a label column
//
// The schema order defined here is the contract with downstream consumers.
// A trained model reads columns by position, so the order of the Feature
// constants and FeatureNames must stay fixed.
package model
