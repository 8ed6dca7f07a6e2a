package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlfeature/internal/log"
)

// NewRootCmd creates the root command for urlfeature.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlfeature",
		Short: "Lexical feature extraction for phishing URL detection",
		Long: `urlfeature turns raw URL strings into a 23-value numeric feature vector
(length, character counts, domain, path and query statistics) followed by a
phishing label, ready to feed a phishing classifier.

Extraction is purely lexical: no DNS lookups, no HTTP requests. Malformed
input never fails; it yields a vector as well.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewNormalizeCmd())
	cmd.AddCommand(NewExplainCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getBoolFlag retrieves a boolean flag from the command or the root's persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// setupLogger creates the secure logger selected by --verbose and --log-json.
// Logs always go to stderr so they never mix with table output on stdout.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	var w io.Writer = cmd.ErrOrStderr()
	verbose := getBoolFlag(cmd, "verbose")
	if getBoolFlag(cmd, "log-json") {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}
