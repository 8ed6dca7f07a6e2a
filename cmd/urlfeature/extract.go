package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlfeature/internal/config"
	"github.com/nao1215/urlfeature/internal/database"
	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/input"
	"github.com/nao1215/urlfeature/internal/pipeline"
)

// sourceArgs is the run source recorded for URLs given as arguments.
const sourceArgs = "args"

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [url...]",
		Short: "Compute the feature table of a list of URLs",
		Long: `Extract computes the 23 lexical features of every URL and writes one row
per URL, in input order, followed by the phishing label column.

URLs come from the arguments, from a list file (--list) or both. A list file
holds one URL per line; blank lines and lines starting with # are skipped.
Malformed URLs are not errors: they are featurized like any other string.

Examples:
  # Featurize two URLs and print CSV
  urlfeature extract https://example.com/ http://192.168.1.1/login

  # Featurize a Shift_JIS encoded list into an Excel workbook
  urlfeature extract -l urls.txt -e shift_jis -f xlsx -o features.xlsx

  # Label a known phishing feed and keep the URL column
  urlfeature extract -l feed.txt --label 1 --with-url -o phishing.csv

  # Read the list from stdin and save the run to the history database
  cat urls.txt | urlfeature extract -l - --save

  # Extend the built-in benign domain list
  urlfeature extract -r reference.yaml https://intranet.example.com/`,
		Args: cobra.ArbitraryArgs,
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("list", "l", "",
		"File with one URL per line (\"-\" reads stdin)")
	cmd.Flags().StringP(config.FlagEncoding, "e", "",
		"Character encoding of the list file (e.g. shift_jis, gbk; default utf-8)")
	cmd.Flags().StringP("output", "o", "",
		"Write the table to this file instead of stdout")
	cmd.Flags().StringP(config.FlagFormat, "f", string(config.DefaultFormat),
		"Output format: csv, json, xlsx, markdown or summary")
	cmd.Flags().IntP(config.FlagConcurrency, "b", config.DefaultConcurrency,
		"Number of URLs featurized in parallel")
	cmd.Flags().Float64(config.FlagLabel, config.DefaultLabel,
		"Value of the phishing column")
	cmd.Flags().Bool(config.FlagWithURL, false,
		"Add the source URL as the first column")
	cmd.Flags().StringP(config.FlagReference, "r", "",
		"YAML file overriding the benign domain and suspicious TLD lists")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .urlfeature in current or home directory)")
	cmd.Flags().Bool(config.FlagSave, false,
		"Save the run to the history database")
	cmd.Flags().String(config.FlagDBDir, "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildExtractConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runExtract(ctx, cmd, cfg, logger)
}

// buildExtractConfig creates a Config from cobra command flags and the config file.
func buildExtractConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Inputs = args
	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.LogJSON = getBoolFlag(cmd, "log-json")

	var err error
	flags := cmd.Flags()

	if cfg.ListFile, err = flags.GetString("list"); err != nil {
		return nil, err
	}
	if cfg.Encoding, err = flags.GetString(config.FlagEncoding); err != nil {
		return nil, err
	}
	if cfg.OutputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	formatName, err := flags.GetString(config.FlagFormat)
	if err != nil {
		return nil, err
	}
	if cfg.Format, err = config.ParseFormat(formatName); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	if cfg.Concurrency, err = flags.GetInt(config.FlagConcurrency); err != nil {
		return nil, err
	}
	if cfg.Label, err = flags.GetFloat64(config.FlagLabel); err != nil {
		return nil, err
	}
	if cfg.WithURL, err = flags.GetBool(config.FlagWithURL); err != nil {
		return nil, err
	}
	if cfg.ReferenceFile, err = flags.GetString(config.FlagReference); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = flags.GetBool(config.FlagSave); err != nil {
		return nil, err
	}

	dbDir, err := flags.GetString(config.FlagDBDir)
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// collectURLs gathers the URLs of the arguments and the list file, in that
// order, and names the run source for the history database.
func collectURLs(cmd *cobra.Command, cfg *config.Config) ([]string, string, error) {
	urls := append([]string(nil), cfg.Inputs...)
	if cfg.ListFile == "" {
		return urls, sourceArgs, nil
	}

	opts := []input.Option{input.WithEncoding(cfg.Encoding)}
	var (
		listed []string
		err    error
		source = cfg.ListFile
	)
	if cfg.ListFile == "-" {
		listed, err = input.ReadURLs(cmd.InOrStdin(), opts...)
		source = "stdin"
	} else {
		listed, err = input.ReadFile(cfg.ListFile, opts...)
	}
	if err != nil {
		return nil, "", err
	}

	return append(urls, listed...), source, nil
}

// runExtract featurizes the configured URLs and writes the table.
func runExtract(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	urls, source, err := collectURLs(cmd, cfg)
	if err != nil {
		return err
	}

	refs, err := cfg.ReferenceSets()
	if err != nil {
		return err
	}
	digest := refs.Digest()

	logger.Info("starting extraction",
		"urls", len(urls),
		"source", source,
		"format", cfg.Format,
		"concurrency", cfg.Concurrency,
		"reference", digest,
	)

	out, err := createOutput(cmd, cfg.OutputPath)
	if err != nil {
		return err
	}
	defer out.Abort()

	writer, err := newTableWriter(cfg.Format, out, tableWriterOptions{
		withURL:   cfg.WithURL,
		refDigest: digest,
		verbose:   cfg.Verbose,
	})
	if err != nil {
		return err
	}

	ext := feature.NewExtractor(feature.WithReference(refs))
	bp := pipeline.NewBatchProcessor(ext,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(pipeline.NewExtractStep(bp), pipeline.NewWriteStep(writer))

	var db *database.FeatureDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		p.AddStep(pipeline.NewPersistStep(db, digest, logger))
	}

	run := pipeline.NewRun(source, urls)
	run.Label = cfg.Label
	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	if err := out.Commit(); err != nil {
		return err
	}

	logger.Info("extraction complete",
		"rows", run.Table.Len(),
		"bytes", run.BytesWritten,
		"steps", run.PerformedSteps,
	)
	if db != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %d to %s\n", run.RunID, db.Path())
	}
	return nil
}
