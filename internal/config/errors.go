package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrNoInput is returned when neither a positional URL nor --list is given.
	ErrNoInput = errors.New("no input specified: provide URLs as arguments or use --list")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrUnknownFormat is returned for an output format that is not supported.
	ErrUnknownFormat = errors.New("unknown output format: use csv, json, xlsx, markdown or summary")

	// ErrXLSXRequiresFile is returned when xlsx output would go to standard output.
	ErrXLSXRequiresFile = errors.New("xlsx output requires a file: use --output")

	// ErrInvalidLabel is returned when the phishing label is NaN or infinite.
	ErrInvalidLabel = errors.New("invalid label: must be a finite number")
)
