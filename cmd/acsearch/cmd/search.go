package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/coregx/acsearch"
)

var (
	countOnly   bool
	prettyPrint bool
)

var searchCmd = &cobra.Command{
	Use:   "search [file]",
	Short: "Print every pattern occurrence as JSON",
	Long: "Search a file (or stdin) for all patterns and print a JSON array of\n" +
		"{pattern_index, start, end} records, ordered by end offset.\n" +
		"Exits 1 when nothing matched.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	addPatternFlags(searchCmd)
	f := searchCmd.Flags()
	f.BoolVarP(&countOnly, "count", "c", false, "print only the number of matches")
	f.BoolVar(&prettyPrint, "pretty", false, "indent the JSON output")
}

func runSearch(cmd *cobra.Command, args []string) error {
	h, err := compile()
	if err != nil {
		return err
	}

	haystack, err := readHaystack(cmd, args)
	if err != nil {
		return err
	}

	s := h.Searcher()
	s.ResetStats()
	out := cmd.OutOrStdout()

	var matches int
	if countOnly {
		matches = s.Count(haystack)
		if _, err := fmt.Fprintln(out, strconv.Itoa(matches)); err != nil {
			return err
		}
	} else {
		data, err := h.SearchJSON(string(haystack))
		if err != nil {
			return err
		}
		if prettyPrint {
			data = pretty.Pretty(data)
		} else {
			data = append(data, '\n')
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
		matches = int(s.Stats().Matches)
	}

	logStats(s)
	if matches == 0 {
		return errNoMatch
	}
	return nil
}

// readHaystack reads the named file, or stdin when no file is given.
func readHaystack(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading haystack: %w", err)
	}
	return data, nil
}

func logStats(s *acsearch.Searcher) {
	st := s.Stats()
	logger.Info("search finished",
		"bytes", st.BytesScanned,
		"matches", st.Matches,
		"prefilter_skipped", st.PrefilterSkips,
		"prefilter_candidates", st.PrefilterCandidates,
		"prefilter_confirmed", st.PrefilterConfirmed,
	)
}
