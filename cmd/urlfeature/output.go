package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlfeature/internal/config"
	"github.com/nao1215/urlfeature/internal/report"
)

// outputFile is the destination of a command's result. A file destination is
// written to a temporary file in the same directory and only renamed into
// place by Commit, so a failed or interrupted run never leaves a partial file.
// Standard output is buffered and only flushed by Commit for the same reason.
type outputFile struct {
	io.Writer

	tmp    *os.File
	path   string
	buf    *bytes.Buffer
	stdout io.Writer
	done   bool
}

// createOutput opens the destination for path. An empty path or "-" selects
// the command's standard output.
func createOutput(cmd *cobra.Command, path string) (*outputFile, error) {
	if path == "" || path == "-" {
		buf := &bytes.Buffer{}
		return &outputFile{Writer: buf, buf: buf, stdout: cmd.OutOrStdout()}, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &outputFile{Writer: tmp, tmp: tmp, path: path}, nil
}

// Commit moves the finished output into place.
func (o *outputFile) Commit() error {
	if o.done {
		return nil
	}
	o.done = true

	if o.buf != nil {
		if _, err := o.buf.WriteTo(o.stdout); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := o.tmp.Close(); err != nil {
		_ = os.Remove(o.tmp.Name())
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(o.tmp.Name(), o.path); err != nil {
		_ = os.Remove(o.tmp.Name())
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Abort discards uncommitted output. It is safe to call after Commit.
func (o *outputFile) Abort() {
	if o.done {
		return
	}
	o.done = true
	if o.buf != nil {
		o.buf.Reset()
		return
	}
	_ = o.tmp.Close()
	_ = os.Remove(o.tmp.Name())
}

// writeOutput runs write against the destination for path and commits the
// result when write succeeds.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	out, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := write(out); err != nil {
		return err
	}
	return out.Commit()
}

// tableWriterOptions are the settings shared by every table format.
type tableWriterOptions struct {
	withURL   bool
	refDigest string
	verbose   bool
}

// newTableWriter returns the report writer for format.
func newTableWriter(format config.Format, w io.Writer, opts tableWriterOptions) (report.Writer, error) {
	switch format {
	case config.FormatCSV:
		return report.NewCSVWriter(w, report.WithCSVURLColumn(opts.withURL)), nil
	case config.FormatJSON:
		return report.NewFullJSONWriter(w, getVersion(), opts.refDigest, report.WithPrettyPrint()), nil
	case config.FormatXLSX:
		return report.NewXLSXWriter(w, report.WithXLSXURLColumn(opts.withURL)), nil
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(w), nil
	case config.FormatSummary:
		return report.NewSimpleWriter(w, report.WithVerbose(opts.verbose)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}

// loadConfigFile merges the configuration file onto cfg. Flags the user
// set explicitly keep their values. A missing file is only an error when
// its path was given with --config.
func loadConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	f, err := config.LoadConfigFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("%w: %s", err, path)
		}
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return f.Apply(cfg, cmd.Flags().Changed)
}
