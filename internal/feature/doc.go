// Package feature implements the URL feature engine.
//
// Compute turns a decomposed URL into the 23 lexical and structural
// features of the canonical schema (see package model). It is a pure
// function of its inputs: no network or filesystem access, no global
// mutable state, no error return. Lookups that could fail on malformed
// input, such as the IP-literal check and the TLD re-parse, yield 0 instead.
//
// Extractor binds Compute to a set of reference data:
//
//	ext := feature.NewExtractor(feature.WithReference(refs))
//	vec := ext.Extract("http://192.168.1.1/ADMIN/x?y=1&z=2")
//
// Without WithReference the built-in refdata.Default() sets are used.
//
// Because extraction is pure, callers may run it on many URLs in parallel
// with no coordination; package pipeline does exactly that.
package feature
