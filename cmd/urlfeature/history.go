package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlfeature/internal/config"
	"github.com/nao1215/urlfeature/internal/database"
	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/report"
)

// ErrConflictingHistoryFlags is returned when more than one history action is requested.
var ErrConflictingHistoryFlags = errors.New("--run-id, --url and --delete cannot be used together")

// historyTimeFormat is the timestamp layout of history listings.
const historyTimeFormat = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect runs saved with extract --save",
		Long: `History reads the run history database written by "urlfeature extract --save".

Without flags it lists the saved runs, newest first. Each run records where its
URLs came from and a digest of the reference data it was computed with, so
tables from different reference data can be told apart.

Examples:
  # List saved runs
  urlfeature history

  # Re-export run 3 as an Excel workbook
  urlfeature history --run-id 3 -f xlsx -o run3.xlsx

  # Show every saved vector of one URL
  urlfeature history --url "http://paypal.com@secure-login.top/verify"

  # Delete run 3
  urlfeature history --delete 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("run-id", "i", 0,
		"Export the table of this run")
	cmd.Flags().StringP("url", "u", "",
		"List the saved vectors of this URL")
	cmd.Flags().Int64P("delete", "d", 0,
		"Delete this run")
	cmd.Flags().StringP("output", "o", "",
		"Write the result to this file instead of stdout")
	cmd.Flags().StringP(config.FlagFormat, "f", "",
		"Export format for --run-id (csv, json, xlsx, markdown, summary); json for listings")
	cmd.Flags().Bool(config.FlagWithURL, true,
		"Add the source URL as the first column of exported tables")
	cmd.Flags().String(config.FlagDBDir, "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// historyOptions are the parsed flags of the history command.
type historyOptions struct {
	runID    int64
	url      string
	deleteID int64
	output   string
	format   config.Format
	withURL  bool
	dbDir    string
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	opts, err := parseHistoryFlags(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd)

	db, err := database.Open(opts.dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database in %s (save a run with \"extract --save\" first): %w", opts.dbDir, err)
	}
	defer db.Close()
	logger.Debug("database opened", "path", db.Path())

	ctx := cmd.Context()
	switch {
	case opts.deleteID != 0:
		if err := db.DeleteRun(ctx, opts.deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %d\n", opts.deleteID)
		return nil
	case opts.runID != 0:
		return exportRun(ctx, cmd, db, opts)
	case opts.url != "":
		return listURLRecords(ctx, cmd, db, opts)
	default:
		return listRuns(ctx, cmd, db, opts)
	}
}

// parseHistoryFlags reads and validates the history flags.
func parseHistoryFlags(cmd *cobra.Command) (*historyOptions, error) {
	flags := cmd.Flags()
	opts := &historyOptions{dbDir: config.XDGDataDir()}

	var err error
	if opts.runID, err = flags.GetInt64("run-id"); err != nil {
		return nil, err
	}
	if opts.url, err = flags.GetString("url"); err != nil {
		return nil, err
	}
	if opts.deleteID, err = flags.GetInt64("delete"); err != nil {
		return nil, err
	}
	if opts.output, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if opts.withURL, err = flags.GetBool(config.FlagWithURL); err != nil {
		return nil, err
	}

	dbDir, err := flags.GetString(config.FlagDBDir)
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		opts.dbDir = dbDir
	}

	actions := 0
	for _, set := range []bool{opts.runID != 0, opts.url != "", opts.deleteID != 0} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		return nil, ErrConflictingHistoryFlags
	}

	formatName, err := flags.GetString(config.FlagFormat)
	if err != nil {
		return nil, err
	}
	if formatName == "" {
		if opts.runID != 0 {
			opts.format = config.DefaultFormat
		}
		return opts, nil
	}
	if opts.format, err = config.ParseFormat(formatName); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if opts.runID == 0 && opts.format != config.FormatJSON {
		return nil, fmt.Errorf("configuration error: %w: listings support json only", config.ErrUnknownFormat)
	}
	if opts.format.Binary() && (opts.output == "" || opts.output == "-") {
		return nil, fmt.Errorf("configuration error: %w", config.ErrXLSXRequiresFile)
	}
	return opts, nil
}

// exportRun writes the table of a saved run.
func exportRun(ctx context.Context, cmd *cobra.Command, db *database.FeatureDB, opts *historyOptions) error {
	meta, err := db.GetRun(ctx, opts.runID)
	if err != nil {
		return err
	}
	t, err := db.GetRunTable(ctx, opts.runID)
	if err != nil {
		return err
	}

	return writeOutput(cmd, opts.output, func(w io.Writer) error {
		tw, err := newTableWriter(opts.format, w, tableWriterOptions{
			withURL:   opts.withURL && t.URLs != nil,
			refDigest: meta.RefDigest,
			verbose:   getBoolFlag(cmd, "verbose"),
		})
		if err != nil {
			return err
		}
		_, err = tw.Write(t)
		return err
	})
}

// listRuns prints the saved runs, newest first.
func listRuns(ctx context.Context, cmd *cobra.Command, db *database.FeatureDB, opts *historyOptions) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return err
	}

	return writeOutput(cmd, opts.output, func(w io.Writer) error {
		if opts.format == config.FormatJSON {
			_, err := report.NewJSONWriter(w, report.WithPrettyPrint()).WriteValue(runs)
			return err
		}

		if len(runs) == 0 {
			_, err := fmt.Fprintln(w, "No runs saved.")
			return err
		}
		fmt.Fprintf(w, "%-6s  %-19s  %6s  %-12s  %s\n", "ID", "TIMESTAMP", "URLS", "REFERENCE", "SOURCE")
		for _, r := range runs {
			fmt.Fprintf(w, "%-6d  %-19s  %6d  %-12s  %s\n",
				r.ID, formatTimestamp(r.Timestamp), r.URLCount, shortDigest(r.RefDigest), r.Source)
		}
		return nil
	})
}

// listURLRecords prints every saved vector of one URL, newest first.
func listURLRecords(ctx context.Context, cmd *cobra.Command, db *database.FeatureDB, opts *historyOptions) error {
	records, err := db.FindURL(ctx, opts.url)
	if err != nil {
		return err
	}

	return writeOutput(cmd, opts.output, func(w io.Writer) error {
		if opts.format == config.FormatJSON {
			_, err := report.NewJSONWriter(w, report.WithPrettyPrint()).WriteValue(records)
			return err
		}

		if len(records) == 0 {
			_, err := fmt.Fprintf(w, "No saved vectors for %s\n", opts.url)
			return err
		}
		for _, rec := range records {
			fmt.Fprintf(w, "run %d  %s  reference %s\n",
				rec.RunID, formatTimestamp(rec.Timestamp), shortDigest(rec.RefDigest))
			for f := range model.Feature(model.NumFeatures) {
				fmt.Fprintf(w, "  %-34s %g\n", f.String(), rec.Vector.Get(f))
			}
		}
		return nil
	})
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(historyTimeFormat)
}

// shortDigest abbreviates a reference digest for listings.
func shortDigest(d string) string {
	if d == "" {
		return "-"
	}
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
