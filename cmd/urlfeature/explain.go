package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlfeature/internal/config"
	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/report"
)

// NewExplainCmd creates the explain command.
func NewExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <url>...",
		Short: "Show how each feature of a URL was computed",
		Long: `Explain prints a report per URL with the decomposed URL parts, the
feature values grouped by prefix, a chart of the URL's character composition
and host diagnostics: registrable domain and public suffix (from the Public
Suffix List) and the Unicode form of punycode hosts.

The diagnostics help reading the vector. They never change it: for example a
sub-domain of a benign domain still has domain_top=0, and the report says why.

Examples:
  # Markdown report
  urlfeature explain "http://paypal.com@secure-login.top/verify"

  # Machine-readable report for several URLs
  urlfeature explain -f json https://mail.google.com/ http://192.168.1.1/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExplainCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
	cmd.Flags().StringP(config.FlagFormat, "f", string(config.FormatMarkdown),
		"Report format: markdown or json")
	cmd.Flags().StringP(config.FlagReference, "r", "",
		"YAML file overriding the benign domain and suspicious TLD lists")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .urlfeature in current or home directory)")

	return cmd
}

// runExplainCmd executes the explain command.
func runExplainCmd(cmd *cobra.Command, args []string) error {
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
	if cfg.ReferenceFile, err = flags.GetString(config.FlagReference); err != nil {
		return err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return err
	}
	if err := loadConfigFile(cmd, cfg); err != nil {
		return err
	}

	// The config file's format is meant for tables, so only the flag counts here.
	format, err := config.ParseFormat(formatName)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if format != config.FormatMarkdown && format != config.FormatJSON {
		return fmt.Errorf("configuration error: %w: explain supports markdown and json", config.ErrUnknownFormat)
	}

	refs, err := cfg.ReferenceSets()
	if err != nil {
		return err
	}
	ext := feature.NewExtractor(feature.WithReference(refs))

	explanations := make([]feature.Explanation, len(args))
	for i, raw := range args {
		explanations[i] = ext.Explain(raw)
	}
	setupLogger(cmd).Debug("explained urls", "count", len(explanations), "reference", refs.Digest())

	return writeOutput(cmd, cfg.OutputPath, func(w io.Writer) error {
		if format == config.FormatJSON {
			jw := report.NewJSONWriter(w, report.WithPrettyPrint())
			var v any = explanations
			if len(explanations) == 1 {
				v = explanations[0]
			}
			_, err := jw.WriteValue(v)
			return err
		}

		mw := report.NewMarkdownWriter(w)
		for i, ex := range explanations {
			if i > 0 {
				if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
					return err
				}
			}
			if _, err := mw.WriteExplanation(ex); err != nil {
				return err
			}
		}
		return nil
	})
}
