// Package config provides the configuration of the urlfeature command:
// input and output options, batch concurrency, reference data selection,
// history database location and the YAML configuration file.
package config
