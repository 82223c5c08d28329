package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "acsearch",
	Short: "Multi-pattern exact string search",
	Long: "Find every occurrence of a set of fixed byte-string patterns in a single pass.\n" +
		"Matches are printed as JSON records {pattern_index, start, end} with byte offsets.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), logLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute runs the root command. Errors other than an empty result are
// printed to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errNoMatch) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(inspectCmd)
}
