package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlfeature/internal/config"
	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/table"
)

// NewNormalizeCmd creates the normalize command.
func NewNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <table.csv>",
		Short: "Bring an externally produced feature table into canonical form",
		Long: `Normalize reads a CSV feature table whose columns may be in any order,
may be missing, or may contain extra columns, and rewrites it with the
canonical columns in canonical order.

- Missing feature columns are filled with 0.
- Unknown columns are dropped. A "url" column is kept as the row's source URL.
- Cells that are "?", empty or not a number become 0.
- A missing phishing column is filled with --label.

Examples:
  # Reorder a table exported by another tool
  urlfeature normalize external.csv -o features.csv

  # Read from stdin and convert to JSON
  urlfeature normalize - -f json < external.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runNormalizeCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the table to this file instead of stdout")
	cmd.Flags().StringP(config.FlagFormat, "f", string(config.DefaultFormat),
		"Output format: csv, json, xlsx, markdown or summary")
	cmd.Flags().Float64(config.FlagLabel, config.DefaultLabel,
		"Value of the phishing column when the input has none")
	cmd.Flags().Bool(config.FlagWithURL, false,
		"Keep the url column when the input has one")

	return cmd
}

// runNormalizeCmd executes the normalize command.
func runNormalizeCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	cfg.Inputs = args

	var err error
	flags := cmd.Flags()
	if cfg.OutputPath, err = flags.GetString("output"); err != nil {
		return err
	}
	formatName, err := flags.GetString(config.FlagFormat)
	if err != nil {
		return err
	}
	if cfg.Format, err = config.ParseFormat(formatName); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.Label, err = flags.GetFloat64(config.FlagLabel); err != nil {
		return err
	}
	if cfg.WithURL, err = flags.GetBool(config.FlagWithURL); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	t, err := readTable(cmd, args[0], cfg.Label)
	if err != nil {
		return err
	}
	logger.Info("table normalized", "source", args[0], "rows", t.Len(), "urls", t.URLs != nil)

	return writeOutput(cmd, cfg.OutputPath, func(w io.Writer) error {
		tw, err := newTableWriter(cfg.Format, w, tableWriterOptions{
			withURL: cfg.WithURL && t.URLs != nil,
			verbose: getBoolFlag(cmd, "verbose"),
		})
		if err != nil {
			return err
		}
		_, err = tw.Write(t)
		return err
	})
}

// readTable reads and normalizes a CSV table from path. "-" reads stdin.
func readTable(cmd *cobra.Command, path string, label float64) (*model.Table, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec // user-provided table path
		if err != nil {
			return nil, fmt.Errorf("failed to open table: %w", err)
		}
		defer f.Close()
		r = f
	}

	t, err := table.ReadCSV(r, label)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return t, nil
}
