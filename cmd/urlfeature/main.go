// Package main provides the entry point for the urlfeature CLI.
//
// urlfeature turns URLs into fixed-length numeric feature vectors for
// phishing classifiers.
//
// Usage:
//
//	urlfeature extract <url>...
//	urlfeature extract --list urls.txt -o features.csv
//
// See --help for all available options.
package main

func main() {
	Execute()
}
